package sim

// Client is the entity that flows through the network. Stations update the
// time ledger as the client passes through them; the ledger survives the
// whole journey so Dispose can report end-to-end figures.
type Client struct {
	ID        int64
	TypeName  string
	CreatedAt float64

	// Waiting accumulates time spent in queues before service or cancellation.
	Waiting float64
	// Service accumulates time spent in service.
	Service float64
	// PostProcessing accumulates server wrap-up time after the client has
	// already moved on. It occupies a server but is not part of Residence.
	PostProcessing float64
}

// Residence returns how long the client has been in the system at time now.
func (c *Client) Residence(now float64) float64 {
	return now - c.CreatedAt
}
