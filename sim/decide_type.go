package sim

import (
	"errors"
	"fmt"
)

// DecideType routes each client by its type name. Types without an explicit
// exit fall back to the default exit; with no default either, routing is a
// model bug and panics.
type DecideType struct {
	baseStation
	exits       map[string]Station
	defaultExit Station

	// Options counts how often each type was routed.
	Options *CounterStatistic
}

// NewDecideType returns a type router with no exits yet.
func NewDecideType(sim *Simulator, name string) *DecideType {
	d := &DecideType{
		baseStation: baseStation{sim: sim, name: name},
		exits:       make(map[string]Station),
		Options:     NewCounterStatistic(),
	}
	sim.register(d)
	return d
}

// SetNextType wires the exit for clients of the given type.
func (d *DecideType) SetNextType(typeName string, st Station) {
	d.exits[typeName] = st
}

// SetNextDefault wires the fallback exit.
func (d *DecideType) SetNextDefault(st Station) {
	d.defaultExit = st
}

func (d *DecideType) SanityCheck() error {
	if len(d.exits) == 0 && d.defaultExit == nil {
		return errors.New("no exits")
	}
	return nil
}

func (d *DecideType) Receive(c *Client) {
	if st, ok := d.exits[c.TypeName]; ok {
		d.Options.Record(c.TypeName)
		st.Receive(c)
		return
	}
	if d.defaultExit == nil {
		panic(fmt.Sprintf("sim: decide %s has no exit for type %q and no default", d.name, c.TypeName))
	}
	d.Options.Record("default")
	d.defaultExit.Receive(c)
}
