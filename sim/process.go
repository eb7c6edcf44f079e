package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// PriorityFunc scores a waiting client; the highest score is served first.
// waited is how long the client has been in the queue at selection time.
type PriorityFunc func(c *Client, waited float64) float64

// Outcome labels used by the per-process outcome counter.
const (
	OutcomeSuccess = "success"
	OutcomeCancel  = "cancel"
	OutcomeBlocked = "blocked"
)

// ProcessConfig collects the knobs of a service station. Only GetS is
// mandatory; zero values of C and B default to one.
type ProcessConfig struct {
	// C is the number of homogeneous servers.
	C int
	// B is the service batch size. Service starts only when B clients wait.
	B int
	// GetS draws service times.
	GetS Sampler
	// GetNu draws patience times. A client whose patience expires before
	// service starts leaves through the cancel successor.
	GetNu Sampler
	// GetS2 draws post-processing times. The server stays occupied for the
	// draw after the served clients have moved on.
	GetS2 Sampler
	// K caps the number of clients in the station (queue plus in service).
	// Zero means unbounded. Arrivals beyond the cap leave through the
	// cancel successor as blocked.
	K int
	// LIFO selects last-in-first-out queueing instead of FIFO.
	LIFO bool
	// GetPriority, when set, overrides the queue discipline: the waiting
	// client with the highest score is served first, earliest-enqueued
	// winning ties.
	GetPriority PriorityFunc
	// GetSClientType and GetNuClientType override GetS and GetNu per client
	// type name.
	GetSClientType  map[string]Sampler
	GetNuClientType map[string]Sampler
	// RecordValues retains the full traces of the time-weighted recorders.
	RecordValues bool
}

// waitingClient is a queue entry. The enqueue time and the patience event
// handle live here rather than on the client, so a client can traverse the
// same process twice without stale state.
type waitingClient struct {
	client     *Client
	enqueuedAt float64
	cancel     *ScheduledEvent
}

// Process is the service station: a queue in front of C servers, with
// optional capacity bound, patience, batching, priorities and
// post-processing. Served clients leave through the primary successor,
// cancelled and blocked clients through the cancel successor.
type Process struct {
	baseStation
	cfg        ProcessConfig
	nextCancel Station

	queue     []*waitingClient
	busy      int
	inService int

	StationWaiting        *DiscreteStatistic
	StationService        *DiscreteStatistic
	StationPostProcessing *DiscreteStatistic
	StationResidence      *DiscreteStatistic
	Success               *CounterStatistic
	QueueLength           *TimeStatistic
	WIP                   *TimeStatistic
	Workload              *TimeStatistic
}

// NewProcess returns a process station configured by cfg.
func NewProcess(sim *Simulator, name string, cfg ProcessConfig) *Process {
	if cfg.C == 0 {
		cfg.C = 1
	}
	if cfg.B == 0 {
		cfg.B = 1
	}
	p := &Process{
		baseStation:           baseStation{sim: sim, name: name},
		cfg:                   cfg,
		StationWaiting:        NewDiscreteStatistic(),
		StationService:        NewDiscreteStatistic(),
		StationPostProcessing: NewDiscreteStatistic(),
		StationResidence:      NewDiscreteStatistic(),
		Success:               NewCounterStatistic(),
		QueueLength:           NewTimeStatistic(cfg.RecordValues),
		WIP:                   NewTimeStatistic(cfg.RecordValues),
		Workload:              NewTimeStatistic(cfg.RecordValues),
	}
	p.QueueLength.Record(sim.Clock, 0)
	p.WIP.Record(sim.Clock, 0)
	p.Workload.Record(sim.Clock, 0)
	sim.register(p)
	return p
}

// SetNextCancel wires the successor for cancelled and blocked clients.
func (p *Process) SetNextCancel(st Station) { p.nextCancel = st }

// QueueLen returns the number of waiting clients.
func (p *Process) QueueLen() int { return len(p.queue) }

// Pending returns the number of clients in the station, waiting or in
// service. Routing conditions such as join-the-shortest-queue use it.
func (p *Process) Pending() int { return len(p.queue) + p.inService }

func (p *Process) SanityCheck() error {
	if p.cfg.GetS == nil {
		return errors.New("no service sampler")
	}
	if p.cfg.C < 1 {
		return errors.New("server count must be positive")
	}
	if p.cfg.B < 1 {
		return errors.New("batch size must be positive")
	}
	if p.cfg.K < 0 {
		return errors.New("capacity must not be negative")
	}
	if p.next == nil {
		return errors.New("no successor")
	}
	hasPatience := p.cfg.GetNu != nil || len(p.cfg.GetNuClientType) > 0
	if (hasPatience || p.cfg.K > 0) && p.nextCancel == nil {
		return errors.New("patience or capacity configured but no cancel successor")
	}
	return nil
}

// Receive enqueues a client, arming its patience timer, or turns it away
// when the station is at capacity.
func (p *Process) Receive(c *Client) {
	now := p.sim.Clock
	if p.cfg.K > 0 && len(p.queue)+p.inService >= p.cfg.K {
		logrus.Debugf("t=%f process %s blocks client %d", now, p.name, c.ID)
		p.Success.Record(OutcomeBlocked)
		p.forwardCancel(c)
		return
	}
	wc := &waitingClient{client: c, enqueuedAt: now}
	if nu := p.patienceSampler(c); nu != nil {
		wc.cancel = p.sim.Schedule(&patienceExpired{process: p, entry: wc}, clip(nu.Next()))
	}
	p.queue = append(p.queue, wc)
	p.QueueLength.Record(now, float64(len(p.queue)))
	p.WIP.Record(now, float64(len(p.queue)+p.inService))
	p.tryStartService()
}

func (p *Process) patienceSampler(c *Client) Sampler {
	if s, ok := p.cfg.GetNuClientType[c.TypeName]; ok {
		return s
	}
	return p.cfg.GetNu
}

func (p *Process) serviceSampler(c *Client) Sampler {
	if s, ok := p.cfg.GetSClientType[c.TypeName]; ok {
		return s
	}
	return p.cfg.GetS
}

// tryStartService starts as many services as free servers and waiting
// batches allow. It is safe to call at any point; if nothing can start it
// does nothing.
func (p *Process) tryStartService() {
	now := p.sim.Clock
	for p.busy < p.cfg.C && len(p.queue) >= p.cfg.B {
		batch := make([]*waitingClient, 0, p.cfg.B)
		for i := 0; i < p.cfg.B; i++ {
			wc := p.takeNext()
			if wc.cancel != nil {
				p.sim.Cancel(wc.cancel)
				wc.cancel = nil
			}
			waited := now - wc.enqueuedAt
			p.StationWaiting.Record(waited)
			wc.client.Waiting += waited
			batch = append(batch, wc)
		}
		p.busy++
		if p.busy > p.cfg.C {
			panic(fmt.Sprintf("sim: process %s has %d busy servers of %d", p.name, p.busy, p.cfg.C))
		}
		p.inService += len(batch)
		s := clip(p.serviceSampler(batch[0].client).Next())
		p.sim.Schedule(&serviceDone{process: p, batch: batch, serviceTime: s}, s)
		logrus.Tracef("t=%f process %s starts service of %d client(s) for %f", now, p.name, len(batch), s)
		p.QueueLength.Record(now, float64(len(p.queue)))
		p.Workload.Record(now, float64(p.busy)/float64(p.cfg.C))
	}
}

// takeNext removes and returns the next client to serve under the configured
// discipline. Priority scoring overrides LIFO when both are set.
func (p *Process) takeNext() *waitingClient {
	now := p.sim.Clock
	idx := 0
	switch {
	case p.cfg.GetPriority != nil:
		best := math.Inf(-1)
		for i, wc := range p.queue {
			score := p.cfg.GetPriority(wc.client, now-wc.enqueuedAt)
			if math.IsNaN(score) || math.IsInf(score, 0) {
				panic(fmt.Sprintf("sim: process %s priority for client %d is %f", p.name, wc.client.ID, score))
			}
			if score > best {
				best = score
				idx = i
			}
		}
	case p.cfg.LIFO:
		idx = len(p.queue) - 1
	}
	wc := p.queue[idx]
	p.queue = append(p.queue[:idx], p.queue[idx+1:]...)
	return wc
}

// removeWaiting drops a specific entry from the queue. Only patience events
// call it; the entry must be present because a started service cancels the
// patience event synchronously.
func (p *Process) removeWaiting(entry *waitingClient) {
	for i, wc := range p.queue {
		if wc == entry {
			p.queue = append(p.queue[:i], p.queue[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("sim: process %s patience fired for client %d not in queue", p.name, entry.client.ID))
}

func (p *Process) forwardCancel(c *Client) {
	if p.nextCancel == nil {
		panic("sim: process " + p.name + " has no cancel successor")
	}
	p.nextCancel.Receive(c)
}

// releaseServer frees one server and immediately looks for more work.
func (p *Process) releaseServer() {
	p.busy--
	if p.busy < 0 {
		panic("sim: process " + p.name + " released an idle server")
	}
	p.Workload.Record(p.sim.Clock, float64(p.busy)/float64(p.cfg.C))
	p.tryStartService()
}

type serviceDone struct {
	process     *Process
	batch       []*waitingClient
	serviceTime float64
}

func (ev *serviceDone) Execute(sim *Simulator) {
	p := ev.process
	now := sim.Clock
	p.inService -= len(ev.batch)
	p.WIP.Record(now, float64(len(p.queue)+p.inService))
	for _, wc := range ev.batch {
		wc.client.Service += ev.serviceTime
		p.StationService.Record(ev.serviceTime)
		p.StationResidence.Record(now - wc.enqueuedAt)
		p.Success.Record(OutcomeSuccess)
	}
	for _, wc := range ev.batch {
		p.forward(wc.client)
	}
	if p.cfg.GetS2 != nil {
		s2 := clip(p.cfg.GetS2.Next())
		p.StationPostProcessing.Record(s2)
		for _, wc := range ev.batch {
			wc.client.PostProcessing += s2
		}
		sim.Schedule(&postProcessingDone{process: p}, s2)
		return
	}
	p.releaseServer()
}

type postProcessingDone struct {
	process *Process
}

func (ev *postProcessingDone) Execute(sim *Simulator) {
	ev.process.releaseServer()
}

type patienceExpired struct {
	process *Process
	entry   *waitingClient
}

func (ev *patienceExpired) Execute(sim *Simulator) {
	p := ev.process
	now := sim.Clock
	p.removeWaiting(ev.entry)
	waited := now - ev.entry.enqueuedAt
	p.StationWaiting.Record(waited)
	ev.entry.client.Waiting += waited
	p.Success.Record(OutcomeCancel)
	p.QueueLength.Record(now, float64(len(p.queue)))
	p.WIP.Record(now, float64(len(p.queue)+p.inService))
	logrus.Debugf("t=%f process %s cancels client %d after %f", now, p.name, ev.entry.client.ID, waited)
	p.forwardCancel(ev.entry.client)
}
