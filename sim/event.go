package sim

// Event is a unit of work on the simulation calendar. Execute is invoked by
// the simulator with the clock already advanced to the event's firing time.
type Event interface {
	Execute(sim *Simulator)
}

// ScheduledEvent is a calendar entry: an Event plus its firing time and
// insertion sequence. The sequence number breaks ties between events
// scheduled for the same instant, so simultaneous events fire in the order
// they were scheduled.
//
// A cancelled entry stays in the heap with its removed flag set and is
// skipped on dequeue, which is cheaper than a heap deletion.
type ScheduledEvent struct {
	time    float64
	seq     uint64
	removed bool
	event   Event
}

// Time returns the scheduled firing time.
func (se *ScheduledEvent) Time() float64 { return se.time }

// Removed reports whether the entry has been cancelled.
func (se *ScheduledEvent) Removed() bool { return se.removed }

// EventQueue implements heap.Interface over calendar entries, ordered by
// (time, sequence).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []*ScheduledEvent

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].time != eq[j].time {
		return eq[i].time < eq[j].time
	}
	return eq[i].seq < eq[j].seq
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(*ScheduledEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[:n-1]
	return item
}
