package sim

// scripted replays a fixed list of draws, repeating the last one.
type scripted struct {
	values []float64
	i      int
}

func newScripted(values ...float64) *scripted {
	return &scripted{values: values}
}

func (s *scripted) Next() float64 {
	v := s.values[s.i]
	if s.i < len(s.values)-1 {
		s.i++
	}
	return v
}

// capture is a terminal test station that records arriving clients and the
// clock at which they arrived.
type capture struct {
	sim     *Simulator
	name    string
	clients []*Client
	times   []float64
}

func newCapture(sim *Simulator, name string) *capture {
	return &capture{sim: sim, name: name}
}

func (c *capture) Name() string { return c.name }

func (c *capture) Receive(cl *Client) {
	c.clients = append(c.clients, cl)
	c.times = append(c.times, c.sim.Clock)
}

// funcEvent adapts a plain function to the Event interface.
type funcEvent func(sim *Simulator)

func (f funcEvent) Execute(sim *Simulator) { f(sim) }
