package sim

import "fmt"

// NodeID identifies a node in the contact plan. A distinct type (not a
// plain string alias) so node ids and contact ids can never be mixed up
// at a call site by accident.
type NodeID string

// ContactID identifies a single plan-entry contact. It is derived from
// the contact's (from_node, to_node, from_time) triple, which is unique
// within a well-formed ContactPlan (two contacts between the same ordered
// pair of nodes cannot start at the same instant).
type ContactID string

func contactID(from, to NodeID, fromTime int64) ContactID {
	return ContactID(fmt.Sprintf("%s->%s@%d", from, to, fromTime))
}

// Hop records one leg of a packet's forwarding trace.
type Hop struct {
	Contact   ContactID
	Departure int64
	Arrival   int64
}

// Packet is a DTN bundle: an atomically forwarded unit of data. Packets
// are created by generators or manual injection, mutated only by the
// node that currently owns them (or by the Contact performing a
// handover), and destroyed on delivery or at simulation end.
type Packet struct {
	ID           uint64
	Size         int64 // bytes
	Source       NodeID
	Destination  NodeID
	CreationTime int64 // ms
	Owner        NodeID
	Trace        []Hop

	// LastRoute is the most recent route CGR selected for this packet,
	// recorded at the forwarding Node's request (§4.5 step 3). Nil until
	// the packet has been routed at least once.
	LastRoute *Route

	// ReturnToSender, when set, suppresses the hotspot anti-loop
	// exclusion rule (§4.5) for this packet's next routing decision.
	ReturnToSender bool
}

// Less gives packets a total order on ID, used wherever a deterministic
// tie-break between packets is needed (e.g. FIFO dequeue is already
// total via queue position, but external sorts of packet sets rely on
// this).
func (p *Packet) Less(other *Packet) bool {
	return p.ID < other.ID
}

// packetIDAllocator assigns monotonically increasing packet identifiers.
// Owned by a Simulator so that two simulators never share an id sequence.
type packetIDAllocator struct {
	next uint64
}

func (a *packetIDAllocator) allocate() uint64 {
	id := a.next
	a.next++
	return id
}
