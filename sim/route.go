package sim

import "github.com/dtnsim/dtnsim/sim/internal/stablehash"

// Route is an ordered list of plan-entry contacts carrying a packet from
// its source to its destination, annotated with the planning-time
// figures CGR computed for it (§3).
type Route struct {
	Contacts            []Contact
	BestDeliveryTime    int64
	HopCount            int
	RouteCapacity       int64
	ForwardingTimeFirst int64 // departure time CGR assumed for the first hop
	NextHop             ContactID
}

// rankKey is the tuple used to compare two candidate routes for ranking
// and tie-breaking (§4.3): (BDT, hop_count, forwarding_time_to_first_hop,
// stable_hash_of_node_sequence).
func (r *Route) rankKey() (int64, int, int64, uint64) {
	seq := make([]string, 0, len(r.Contacts)+1)
	for i, c := range r.Contacts {
		if i == 0 {
			seq = append(seq, string(c.From))
		}
		seq = append(seq, string(c.To))
	}
	return r.BestDeliveryTime, r.HopCount, r.ForwardingTimeFirst, stablehash.Strings(seq)
}

// less reports whether r ranks strictly ahead of other under the full
// tie-break tuple.
func (r *Route) less(other *Route) bool {
	a1, a2, a3, a4 := r.rankKey()
	b1, b2, b3, b4 := other.rankKey()
	if a1 != b1 {
		return a1 < b1
	}
	if a2 != b2 {
		return a2 < b2
	}
	if a3 != b3 {
		return a3 < b3
	}
	return a4 < b4
}
