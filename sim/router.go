package sim

import (
	"container/heap"
	"math"

	"github.com/dtnsim/dtnsim/sim/internal/stablehash"
)

// CapacityView exposes the planning-time remaining capacity of a
// plan-entry contact, looked up by identity. Simulator implements this
// over its live ActiveContact registry, so the router always sees the
// same remaining-capacity figures the forwarding Node debits when it
// accepts a route (§5).
type CapacityView interface {
	RemainingCapacity(id ContactID) int64
}

// RouteQuery bundles everything a Router needs to answer one routing
// question (§4.3). It is built fresh by the calling Node for each
// routing decision; Router implementations must not retain it.
type RouteQuery struct {
	Graph            *ContactGraph
	Capacity         CapacityView
	Source           NodeID
	Destination      NodeID
	CurrentTime      int64
	PacketSize       int64
	ExcludedNodes    map[NodeID]bool
	ExcludedContacts map[ContactID]bool
}

// Router decides the next hop (if any) for a packet. Node holds one
// Router value selected at construction, a swappable-strategy interface
// the same shape as the ranking tuple it ultimately returns.
type Router interface {
	Route(q RouteQuery) (*Route, bool)
}

// dijkstraDist is the lexicographic distance triple used to order the
// priority queue (§4.3): (earliest delivery time, hop count, forwarding
// time to this vertex's contact).
type dijkstraDist struct {
	edt int64
	hop int
	fwd int64
}

func (a dijkstraDist) less(b dijkstraDist) bool {
	if a.edt != b.edt {
		return a.edt < b.edt
	}
	if a.hop != b.hop {
		return a.hop < b.hop
	}
	return a.fwd < b.fwd
}

// labeled pairs a vertex's search distance with the departure time CGR
// assumed for the FIRST hop of the best-known path reaching it. The two
// are tracked separately because the ranking tuple's third component
// (forwarding_time_to_first_hop, §4.3) must survive unchanged as the
// search extends the path across further hops, while fwd above is
// reset at every hop for the priority-queue ordering itself.
type labeled struct {
	d         dijkstraDist
	firstFwd  int64
	predFirst bool // true once firstFwd has been pinned by an actual hop
}

type pqEntry struct {
	v       *gvertex
	d       dijkstraDist
	tieHash uint64
}

type dijkstraPQ []pqEntry

func (pq dijkstraPQ) Len() int { return len(pq) }
func (pq dijkstraPQ) Less(i, j int) bool {
	if pq[i].d.less(pq[j].d) {
		return true
	}
	if pq[j].d.less(pq[i].d) {
		return false
	}
	return pq[i].tieHash < pq[j].tieHash
}
func (pq dijkstraPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *dijkstraPQ) Push(x any)   { *pq = append(*pq, x.(pqEntry)) }
func (pq *dijkstraPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

func vertexTieHash(v *gvertex) uint64 {
	switch v.kind {
	case vertexContact:
		return stablehash.String(string(v.contact.ID()))
	default:
		return stablehash.String(string(v.node))
	}
}

// dijkstra runs the time-aware shortest-path search described in §4.3.
// maxFromTime implements the scgr lookahead window: contacts whose
// FromTime exceeds it are never relaxed into. Pass math.MaxInt64 to
// disable the window (cgr_basic, cgr_anchor, and scgr's unwindowed
// fallback all call it that way).
func dijkstra(q RouteQuery, maxFromTime int64) (*Route, bool) {
	src := q.Graph.SourceNominal(q.Source)
	dst := q.Graph.DestNominal(q.Destination)
	if src == nil || dst == nil {
		return nil, false
	}

	labels := make(map[int64]labeled)
	prev := make(map[int64]*gvertex)
	visited := make(map[int64]bool)

	start := dijkstraDist{edt: q.CurrentTime, hop: 0, fwd: q.CurrentTime}
	labels[src.gid] = labeled{d: start}

	pq := &dijkstraPQ{}
	heap.Init(pq)
	heap.Push(pq, pqEntry{v: src, d: start, tieHash: vertexTieHash(src)})

	for pq.Len() > 0 {
		top := heap.Pop(pq).(pqEntry)
		u := top.v
		if visited[u.gid] {
			continue
		}
		visited[u.gid] = true
		lu := labels[u.gid]

		if u.kind == vertexDestNominal && u.node == q.Destination {
			return reconstructRoute(prev, u, lu), true
		}

		for _, v := range q.Graph.Successors(u) {
			if visited[v.gid] {
				continue
			}

			var cand dijkstraDist
			var firstFwd int64

			if v.kind == vertexContact {
				c := v.contact
				if q.ExcludedContacts[c.ID()] || q.ExcludedNodes[c.From] {
					continue
				}
				if c.FromTime > maxFromTime {
					continue
				}
				if c.ToTime <= lu.d.edt {
					// Window already closed by the time we'd arrive; not
					// necessarily true of later-sorted successors too, so
					// we skip rather than break (§4.3 marks the early-exit
					// optimization as permissive, not required).
					continue
				}
				var edtV int64
				if lu.d.edt < c.FromTime {
					edtV = c.FromTime + c.Delay
				} else {
					edtV = lu.d.edt + c.Delay
				}
				if edtV >= c.ToTime {
					continue
				}
				if q.Capacity.RemainingCapacity(c.ID()) < q.PacketSize {
					continue
				}
				departure := lu.d.edt
				if departure < c.FromTime {
					departure = c.FromTime
				}
				cand = dijkstraDist{edt: edtV, hop: lu.d.hop + 1, fwd: departure}
				if u.kind == vertexSourceNominal {
					firstFwd = departure
				} else {
					firstFwd = lu.firstFwd
				}
			} else {
				// Destination-nominal: arriving is instantaneous once the
				// last contact's own delay has already been folded into
				// lu.d.edt; hop count and forwarding time pass through.
				cand = dijkstraDist{edt: lu.d.edt, hop: lu.d.hop, fwd: lu.d.fwd}
				firstFwd = lu.firstFwd
			}

			if existing, seen := labels[v.gid]; !seen || cand.less(existing.d) {
				labels[v.gid] = labeled{d: cand, firstFwd: firstFwd, predFirst: true}
				prev[v.gid] = u
				heap.Push(pq, pqEntry{v: v, d: cand, tieHash: vertexTieHash(v)})
			}
		}
	}
	return nil, false
}

// reconstructRoute walks prev pointers from the destination-nominal
// vertex back to the source-nominal vertex, collecting the contact
// vertices traversed in order.
func reconstructRoute(prev map[int64]*gvertex, dst *gvertex, finalLabel labeled) *Route {
	var contacts []Contact
	cur := dst
	for {
		p, ok := prev[cur.gid]
		if !ok {
			break
		}
		if c, isContact := cur.Contact(); isContact {
			contacts = append(contacts, c)
		}
		cur = p
	}
	if len(contacts) == 0 {
		return nil
	}
	// contacts were collected dest->source; reverse to source->dest.
	for i, j := 0, len(contacts)-1; i < j; i, j = i+1, j-1 {
		contacts[i], contacts[j] = contacts[j], contacts[i]
	}

	return &Route{
		Contacts:            contacts,
		BestDeliveryTime:    finalLabel.d.edt,
		HopCount:            len(contacts),
		ForwardingTimeFirst: finalLabel.firstFwd,
		NextHop:             contacts[0].ID(),
	}
}

// fillCapacity annotates r.RouteCapacity as the minimum remaining
// capacity across all of r's contacts, per §3 ("min over contacts of a
// conservative remaining_capacity estimate").
func fillCapacity(r *Route, cap CapacityView) {
	if r == nil {
		return
	}
	min := int64(math.MaxInt64)
	for _, c := range r.Contacts {
		if rc := cap.RemainingCapacity(c.ID()); rc < min {
			min = rc
		}
	}
	r.RouteCapacity = min
}
