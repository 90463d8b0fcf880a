package sim

import "math"

// DefaultLookaheadWindow is the fixed window ShortestRouter uses before
// it has observed any best-delivery times of its own (§4.3).
const DefaultLookaheadWindow int64 = 100000

// ShortestRouter implements scgr (§4.3): Dijkstra restricted to a
// lookahead window of contacts starting within W ms of the current
// time, falling back to an unwindowed search when the windowed one
// finds nothing. W starts at the initial window given to
// NewShortestRouter and is subsequently recomputed as
// 1.2 * mean(observed BDT) - current_time from every BDT this router has
// returned so far (falling back to the initial window whenever that
// figure is not positive).
//
// ShortestRouter carries state across calls (the running BDT mean) and
// so, unlike BasicRouter, is not safe to share between nodes that should
// observe independent traffic patterns; construct one per node.
type ShortestRouter struct {
	window   int64
	sumBDT   int64
	countBDT int64
}

// NewShortestRouter creates a ShortestRouter with the given initial
// window. Pass DefaultLookaheadWindow for the usual starting point.
func NewShortestRouter(initialWindow int64) *ShortestRouter {
	return &ShortestRouter{window: initialWindow}
}

// Route implements Router for ShortestRouter.
func (r *ShortestRouter) Route(q RouteQuery) (*Route, bool) {
	w := r.currentWindow(q.CurrentTime)
	route, ok := dijkstra(q, q.CurrentTime+w)
	if !ok {
		route, ok = dijkstra(q, math.MaxInt64)
		if !ok {
			return nil, false
		}
	}
	fillCapacity(route, q.Capacity)
	r.observe(route.BestDeliveryTime)
	return route, true
}

func (r *ShortestRouter) currentWindow(currentTime int64) int64 {
	if r.countBDT == 0 {
		return r.window
	}
	meanBDT := float64(r.sumBDT) / float64(r.countBDT)
	w := int64(1.2*meanBDT) - currentTime
	if w <= 0 {
		return r.window
	}
	return w
}

func (r *ShortestRouter) observe(bdt int64) {
	r.sumBDT += bdt
	r.countBDT++
}
