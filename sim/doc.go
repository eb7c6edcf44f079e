// Package sim implements a discrete-event stochastic simulator for open
// queueing networks of arbitrary topology.
//
// A model is a set of stations (Source, Process, Delay, Dispose and the
// Decide family) wired together by successor links. The Simulator owns the
// clock and the event calendar; every station advances the model by
// scheduling future events and by handing clients to its successors
// synchronously at the current clock. A run terminates when the calendar is
// empty: all sources exhausted, all pipelines drained.
package sim
