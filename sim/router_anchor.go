package sim

import "math"

// AnchorRouter implements cgr_anchor (§4.3): it repeatedly runs Dijkstra,
// excluding the first hop of each returned route ("anchoring" it) before
// the next iteration, and returns the first route whose capacity
// suffices for the packet. Within a single call this retry loop rarely
// does anything, since dijkstra already filters contacts whose remaining
// capacity is too small before a route can even be built; the loop exists
// for the exclusion sets callers carry in across calls. Node is the
// caller that actually drives divergence across a run: it remembers,
// per destination, the first hop each AnchorRouter decision picked and
// feeds that set back in as RouteQuery.ExcludedContacts on the next
// packet to the same destination, so repeated decisions spread across
// feasible routes instead of always choosing the single best one.
type AnchorRouter struct{}

// Route implements Router for AnchorRouter.
func (AnchorRouter) Route(q RouteQuery) (*Route, bool) {
	excluded := make(map[ContactID]bool, len(q.ExcludedContacts))
	for k := range q.ExcludedContacts {
		excluded[k] = true
	}

	for {
		iterQ := q
		iterQ.ExcludedContacts = excluded

		r, ok := dijkstra(iterQ, math.MaxInt64)
		if !ok {
			return nil, false
		}
		fillCapacity(r, q.Capacity)
		if r.RouteCapacity >= q.PacketSize {
			return r, true
		}
		// Anchor this route's first hop and retry for the next-best one.
		excluded[r.NextHop] = true
	}
}
