package sim

import "math"

// BasicRouter implements cgr_basic (§4.3): a single unwindowed Dijkstra
// search returning its best route, or no route if the destination is
// unreachable under the current exclusion sets and capacities.
type BasicRouter struct{}

// Route implements Router for BasicRouter.
func (BasicRouter) Route(q RouteQuery) (*Route, bool) {
	r, ok := dijkstra(q, math.MaxInt64)
	if !ok {
		return nil, false
	}
	fillCapacity(r, q.Capacity)
	return r, true
}
