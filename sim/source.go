package sim

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"
)

// Source generates a finite stream of clients. Each arrival event emits one
// client (or a batch, if a batch sampler is set) and schedules the next
// arrival until the configured count is exhausted. The first arrival fires
// one inter-arrival draw after time zero.
type Source struct {
	baseStation
	count       int64
	remaining   int64
	getI        Sampler
	getB        Sampler
	clientType  string
	lastArrival float64

	// Statistic records the realised inter-arrival gaps.
	Statistic *DiscreteStatistic
}

// NewSource returns a source emitting count clients with inter-arrival times
// drawn from getI.
func NewSource(sim *Simulator, name string, count int64, getI Sampler) *Source {
	s := &Source{
		baseStation: baseStation{sim: sim, name: name},
		count:       count,
		remaining:   count,
		getI:        getI,
		Statistic:   NewDiscreteStatistic(),
	}
	sim.register(s)
	return s
}

// SetBatchSize makes each arrival emit a batch whose size is a fresh draw
// from getB, rounded to the nearest integer with a floor of one.
func (s *Source) SetBatchSize(getB Sampler) { s.getB = getB }

// SetClientType tags every emitted client with typeName.
func (s *Source) SetClientType(typeName string) { s.clientType = typeName }

// Count returns how many clients the source has emitted so far.
func (s *Source) Count() int64 { return s.count - s.remaining }

// Init schedules the first arrival.
func (s *Source) Init() {
	if s.remaining > 0 {
		s.sim.Schedule(&sourceArrival{source: s}, clip(s.getI.Next()))
	}
}

// Receive panics: clients cannot be routed into a source.
func (s *Source) Receive(c *Client) {
	panic("sim: source " + s.name + " cannot receive clients")
}

func (s *Source) SanityCheck() error {
	if s.getI == nil {
		return errors.New("no inter-arrival sampler")
	}
	if s.next == nil {
		return errors.New("no successor")
	}
	if s.count <= 0 {
		return errors.New("client count must be positive")
	}
	return nil
}

type sourceArrival struct {
	source *Source
}

func (ev *sourceArrival) Execute(sim *Simulator) {
	s := ev.source
	k := int64(1)
	if s.getB != nil {
		k = int64(math.Round(s.getB.Next()))
		if k < 1 {
			k = 1
		}
	}
	if k > s.remaining {
		k = s.remaining
	}
	s.Statistic.Record(sim.Clock - s.lastArrival)
	s.lastArrival = sim.Clock
	s.remaining -= k
	logrus.Debugf("t=%f source %s emits %d client(s), %d remaining", sim.Clock, s.name, k, s.remaining)
	for i := int64(0); i < k; i++ {
		s.forward(sim.NewClient(s.clientType))
	}
	if s.remaining > 0 {
		sim.Schedule(ev, clip(s.getI.Next()))
	}
}
