package sim

// Dispose is the terminal station. It closes each arriving client's ledger
// into per-run totals and records the gap since the previous departure.
type Dispose struct {
	baseStation
	count         int64
	lastDeparture float64

	// Statistic records inter-departure gaps.
	Statistic       *DiscreteStatistic
	ClientWaiting   *DiscreteStatistic
	ClientService   *DiscreteStatistic
	ClientResidence *DiscreteStatistic
}

// NewDispose returns a terminal station.
func NewDispose(sim *Simulator, name string) *Dispose {
	d := &Dispose{
		baseStation:     baseStation{sim: sim, name: name},
		Statistic:       NewDiscreteStatistic(),
		ClientWaiting:   NewDiscreteStatistic(),
		ClientService:   NewDiscreteStatistic(),
		ClientResidence: NewDiscreteStatistic(),
	}
	sim.register(d)
	return d
}

// Count returns the number of disposed clients.
func (d *Dispose) Count() int64 { return d.count }

func (d *Dispose) Receive(c *Client) {
	now := d.sim.Clock
	d.Statistic.Record(now - d.lastDeparture)
	d.lastDeparture = now
	d.ClientWaiting.Record(c.Waiting)
	d.ClientService.Record(c.Service)
	d.ClientResidence.Record(c.Residence(now))
	d.count++
}
