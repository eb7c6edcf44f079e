package sim

import (
	"container/heap"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

// Initer is run once before the first event fires. Sources implement it to
// schedule their first arrival.
type Initer interface {
	Init()
}

// validator is implemented by stations whose configuration can be checked
// before a run starts.
type validator interface {
	SanityCheck() error
}

// Simulator owns the clock, the random source and the event calendar. One
// Simulator drives one model; it is not safe for concurrent use, so parallel
// experiments each build their own (see RunStudy).
type Simulator struct {
	// Clock is the current simulation time. It never decreases.
	Clock float64

	// RNG is the model's single random source. Every sampler in the model
	// draws from it, so a fixed seed reproduces the run exactly.
	RNG *rand.Rand

	// EventCount is the number of events executed so far.
	EventCount int64

	// RunTime is the wall-clock duration of the last Run.
	RunTime time.Duration

	queue        EventQueue
	seq          uint64
	initObjects  []Initer
	stations     []Station
	nextClientID int64
}

// NewSimulator returns a simulator with its clock at zero and a random
// source seeded with seed.
func NewSimulator(seed uint64) *Simulator {
	return &Simulator{
		RNG:   rand.New(rand.NewSource(seed)),
		queue: make(EventQueue, 0, 64),
	}
}

// Schedule places ev on the calendar delay time units from now and returns
// the calendar entry, which can later be passed to Cancel. A negative delay
// is clipped to zero; a NaN delay panics.
func (sim *Simulator) Schedule(ev Event, delay float64) *ScheduledEvent {
	if math.IsNaN(delay) {
		panic("sim: scheduled delay is NaN")
	}
	if delay < 0 {
		delay = 0
	}
	se := &ScheduledEvent{
		time:  sim.Clock + delay,
		seq:   sim.seq,
		event: ev,
	}
	sim.seq++
	heap.Push(&sim.queue, se)
	return se
}

// Cancel marks a calendar entry as removed. The entry is skipped when it
// reaches the head of the calendar; cancelling an already-executed or
// already-cancelled entry is a no-op.
func (sim *Simulator) Cancel(se *ScheduledEvent) {
	se.removed = true
}

// register records a station for the pre-run sanity pass and, if the station
// needs one, an init call.
func (sim *Simulator) register(st Station) {
	sim.stations = append(sim.stations, st)
	if in, ok := st.(Initer); ok {
		sim.RegisterInit(in)
	}
}

// RegisterInit adds an object whose Init runs once at the start of Run,
// before any event fires.
func (sim *Simulator) RegisterInit(in Initer) {
	sim.initObjects = append(sim.initObjects, in)
}

// NewClient mints a client with a fresh ID, created at the current clock.
func (sim *Simulator) NewClient(typeName string) *Client {
	sim.nextClientID++
	return &Client{
		ID:        sim.nextClientID,
		TypeName:  typeName,
		CreatedAt: sim.Clock,
	}
}

// Run validates every registered station, fires the registered init hooks
// and then executes calendar entries in (time, insertion) order until the
// calendar is empty. It returns an error only from the validation pass;
// invariant violations during the run panic.
func (sim *Simulator) Run() error {
	for _, st := range sim.stations {
		if v, ok := st.(validator); ok {
			if err := v.SanityCheck(); err != nil {
				return fmt.Errorf("station %s: %w", st.Name(), err)
			}
		}
	}

	start := time.Now()
	for _, in := range sim.initObjects {
		in.Init()
	}

	logrus.Infof("run started: %d stations, %d initial events", len(sim.stations), sim.queue.Len())
	for sim.queue.Len() > 0 {
		se := heap.Pop(&sim.queue).(*ScheduledEvent)
		if se.removed {
			continue
		}
		if se.time < sim.Clock {
			panic(fmt.Sprintf("sim: clock would move backwards from %f to %f", sim.Clock, se.time))
		}
		sim.Clock = se.time
		logrus.Tracef("t=%f executing %T", sim.Clock, se.event)
		se.event.Execute(sim)
		sim.EventCount++
	}
	sim.RunTime = time.Since(start)
	logrus.Infof("run finished: t=%f, %d events in %s", sim.Clock, sim.EventCount, sim.RunTime)
	return nil
}
