package sim

import "errors"

// Delay holds each client for an independent draw from its sampler. There is
// no queue and no capacity; clients pass through without touching their
// waiting or service ledgers.
type Delay struct {
	baseStation
	getD Sampler
	wip  int

	WIP              *TimeStatistic
	StationResidence *DiscreteStatistic
}

// NewDelay returns a pure-hold station with hold times drawn from getD.
func NewDelay(sim *Simulator, name string, getD Sampler) *Delay {
	d := &Delay{
		baseStation:      baseStation{sim: sim, name: name},
		getD:             getD,
		WIP:              NewTimeStatistic(false),
		StationResidence: NewDiscreteStatistic(),
	}
	d.WIP.Record(sim.Clock, 0)
	sim.register(d)
	return d
}

func (d *Delay) SanityCheck() error {
	if d.getD == nil {
		return errors.New("no delay sampler")
	}
	if d.next == nil {
		return errors.New("no successor")
	}
	return nil
}

func (d *Delay) Receive(c *Client) {
	d.wip++
	d.WIP.Record(d.sim.Clock, float64(d.wip))
	held := clip(d.getD.Next())
	d.sim.Schedule(&delayDone{delay: d, client: c, held: held}, held)
}

type delayDone struct {
	delay  *Delay
	client *Client
	held   float64
}

func (ev *delayDone) Execute(sim *Simulator) {
	d := ev.delay
	d.wip--
	d.WIP.Record(sim.Clock, float64(d.wip))
	d.StationResidence.Record(ev.held)
	d.forward(ev.client)
}
