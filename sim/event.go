package sim

// Event is anything the kernel can schedule and later execute at a
// specific virtual time. Implementations must be side-effect-free to
// construct; all mutation happens inside Execute.
type Event interface {
	Timestamp() int64
	Execute(*Simulator)
}

// scheduledEvent pairs an Event with the insertion sequence assigned to
// it at Schedule time. Sequence is the sole tie-breaker for events with
// equal timestamps (§4.1): it is never derived from map iteration, wall
// clock, or pointer identity.
type scheduledEvent struct {
	event    Event
	sequence uint64
}

// eventQueue is a min-heap ordered by (Timestamp, sequence). It
// implements container/heap.Interface directly.
type eventQueue []scheduledEvent

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	ti, tj := q[i].event.Timestamp(), q[j].event.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return q[i].sequence < q[j].sequence
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(scheduledEvent))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
