package sim

import (
	"errors"
	"fmt"
	"strconv"
)

// Decide routes each client to one of its exits with probability
// proportional to the exit's rate. Rates need not sum to one.
type Decide struct {
	baseStation
	exits   []decideExit
	rateSum float64

	// Options counts how often each exit was chosen, keyed by 1-based
	// exit index.
	Options *CounterStatistic
}

type decideExit struct {
	station Station
	rate    float64
}

// NewDecide returns a rate-proportional router with no exits yet.
func NewDecide(sim *Simulator, name string) *Decide {
	d := &Decide{
		baseStation: baseStation{sim: sim, name: name},
		Options:     NewCounterStatistic(),
	}
	sim.register(d)
	return d
}

// AddNext registers an exit with the given rate. A non-positive rate is a
// configuration bug and panics.
func (d *Decide) AddNext(st Station, rate float64) {
	if rate <= 0 {
		panic(fmt.Sprintf("sim: decide %s exit rate must be positive, got %f", d.name, rate))
	}
	d.exits = append(d.exits, decideExit{station: st, rate: rate})
	d.rateSum += rate
}

func (d *Decide) SanityCheck() error {
	if len(d.exits) == 0 {
		return errors.New("no exits")
	}
	return nil
}

func (d *Decide) Receive(c *Client) {
	u := d.sim.RNG.Float64() * d.rateSum
	acc := 0.0
	for i, exit := range d.exits {
		acc += exit.rate
		if u <= acc || i == len(d.exits)-1 {
			d.Options.Record(strconv.Itoa(i + 1))
			exit.station.Receive(c)
			return
		}
	}
}
