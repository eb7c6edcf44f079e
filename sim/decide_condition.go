package sim

import (
	"errors"
	"fmt"
	"strconv"
)

// DecideCondition routes each client to the exit whose index the condition
// function returns. Conditions can inspect the client or the network state,
// which is how policies like join-the-shortest-queue are expressed.
type DecideCondition struct {
	baseStation
	exits     []Station
	condition func(c *Client) int

	// Options counts how often each exit was chosen, keyed by 1-based
	// exit index.
	Options *CounterStatistic
}

// NewDecideCondition returns a condition router with no exits yet.
func NewDecideCondition(sim *Simulator, name string) *DecideCondition {
	d := &DecideCondition{
		baseStation: baseStation{sim: sim, name: name},
		Options:     NewCounterStatistic(),
	}
	sim.register(d)
	return d
}

// AddNext appends an exit. The condition selects exits by append order.
func (d *DecideCondition) AddNext(st Station) {
	d.exits = append(d.exits, st)
}

// SetCondition installs the routing function.
func (d *DecideCondition) SetCondition(f func(c *Client) int) {
	d.condition = f
}

func (d *DecideCondition) SanityCheck() error {
	if len(d.exits) == 0 {
		return errors.New("no exits")
	}
	if d.condition == nil {
		return errors.New("no condition")
	}
	return nil
}

func (d *DecideCondition) Receive(c *Client) {
	i := d.condition(c)
	if i < 0 || i >= len(d.exits) {
		panic(fmt.Sprintf("sim: decide %s condition chose exit %d of %d", d.name, i, len(d.exits)))
	}
	d.Options.Record(strconv.Itoa(i + 1))
	d.exits[i].Receive(c)
}
