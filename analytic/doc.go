// Package analytic provides closed-form queueing results: Erlang B, Erlang
// C, an extended Erlang C with impatience and finite capacity, and the
// Allen-Cunneen approximation for general arrival and service processes.
// The simulation tests use these as oracles.
package analytic
