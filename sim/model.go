package sim

import (
	"fmt"
	"strings"
)

// Model bundles a simulator with the stations of the common single-queue
// topologies, so experiments and the CLI can reach the recorders by name.
type Model struct {
	Simulator *Simulator
	Source    *Source
	Process   *Process
	Dispose   *Dispose

	// RetryDecide and RetryDelay are set only by ImpatienceRetryModel.
	RetryDecide *Decide
	RetryDelay  *Delay

	MeanI float64
	MeanS float64
	C     int
}

// Run executes the model to completion.
func (m *Model) Run() error {
	return m.Simulator.Run()
}

// MMCModel builds the classic M/M/c line: exponential arrivals into a
// c-server exponential process into a dispose.
func MMCModel(meanI, meanS float64, c int, count int64, seed uint64, recordValues bool) *Model {
	sim := NewSimulator(seed)
	src := NewSource(sim, "source", count, NewExp(sim.RNG, meanI))
	proc := NewProcess(sim, "process", ProcessConfig{
		C:            c,
		GetS:         NewExp(sim.RNG, meanS),
		RecordValues: recordValues,
	})
	dsp := NewDispose(sim, "dispose")
	src.SetNext(proc)
	proc.SetNext(dsp)
	return &Model{Simulator: sim, Source: src, Process: proc, Dispose: dsp, MeanI: meanI, MeanS: meanS, C: c}
}

// MMCModelPriorities is MMCModel with a priority discipline on the queue.
func MMCModelPriorities(meanI, meanS float64, c int, count int64, seed uint64, priority PriorityFunc) *Model {
	sim := NewSimulator(seed)
	src := NewSource(sim, "source", count, NewExp(sim.RNG, meanI))
	proc := NewProcess(sim, "process", ProcessConfig{
		C:           c,
		GetS:        NewExp(sim.RNG, meanS),
		GetPriority: priority,
	})
	dsp := NewDispose(sim, "dispose")
	src.SetNext(proc)
	proc.SetNext(dsp)
	return &Model{Simulator: sim, Source: src, Process: proc, Dispose: dsp, MeanI: meanI, MeanS: meanS, C: c}
}

// ImpatienceRetryModel builds an M/M/c line with exponential patience
// meanWT. Cancelled clients retry with probability retryProbability after an
// exponential pause of meanRetryDelay; otherwise they are disposed. With a
// zero retry probability, cancellations go straight to the dispose.
func ImpatienceRetryModel(meanI, meanS, meanWT, retryProbability, meanRetryDelay float64, c int, count int64, seed uint64) *Model {
	sim := NewSimulator(seed)
	src := NewSource(sim, "source", count, NewExp(sim.RNG, meanI))
	proc := NewProcess(sim, "process", ProcessConfig{
		C:     c,
		GetS:  NewExp(sim.RNG, meanS),
		GetNu: NewExp(sim.RNG, meanWT),
	})
	dsp := NewDispose(sim, "dispose")
	src.SetNext(proc)
	proc.SetNext(dsp)

	m := &Model{Simulator: sim, Source: src, Process: proc, Dispose: dsp, MeanI: meanI, MeanS: meanS, C: c}
	if retryProbability > 0 {
		retry := NewDecide(sim, "retry_decide")
		hold := NewDelay(sim, "retry_delay", NewExp(sim.RNG, meanRetryDelay))
		retry.AddNext(hold, retryProbability)
		if retryProbability < 1 {
			retry.AddNext(dsp, 1-retryProbability)
		}
		hold.SetNext(proc)
		proc.SetNextCancel(retry)
		m.RetryDecide = retry
		m.RetryDelay = hold
	} else {
		proc.SetNextCancel(dsp)
	}
	return m
}

// MMCResults renders the recorder summaries of a single-queue model the way
// the CLI prints them.
func MMCResults(m *Model) string {
	var b strings.Builder
	p := m.Process
	fmt.Fprintf(&b, "source.inter_arrival       %s\n", m.Source.Statistic.Info())
	fmt.Fprintf(&b, "process.station_waiting    %s\n", p.StationWaiting.Info())
	fmt.Fprintf(&b, "process.station_service    %s\n", p.StationService.Info())
	if p.StationPostProcessing.Count() > 0 {
		fmt.Fprintf(&b, "process.post_processing    %s\n", p.StationPostProcessing.Info())
	}
	fmt.Fprintf(&b, "process.station_residence  %s\n", p.StationResidence.Info())
	fmt.Fprintf(&b, "process.queue_length       %s\n", p.QueueLength.Info())
	fmt.Fprintf(&b, "process.wip                %s\n", p.WIP.Info())
	fmt.Fprintf(&b, "process.workload           %s\n", p.Workload.Info())
	fmt.Fprintf(&b, "process.outcomes           %s\n", p.Success.Info())
	fmt.Fprintf(&b, "dispose.inter_departure    %s\n", m.Dispose.Statistic.Info())
	fmt.Fprintf(&b, "dispose.client_waiting     %s\n", m.Dispose.ClientWaiting.Info())
	fmt.Fprintf(&b, "dispose.client_service     %s\n", m.Dispose.ClientService.Info())
	fmt.Fprintf(&b, "dispose.client_residence   %s\n", m.Dispose.ClientResidence.Info())
	fmt.Fprintf(&b, "dispose.count              %d\n", m.Dispose.Count())
	return b.String()
}
