package trace

// RoutingRecord captures a single routing policy decision made by a node
// for one packet.
type RoutingRecord struct {
	PacketID    uint64
	Clock       int64
	Node        string
	Destination string
	Found       bool
	NextHop     string // ContactID chosen, "" if not found
	HopCount    int
	EDT         int64 // earliest delivery time of the chosen route, 0 if not found
}

// DeliveryRecord captures a packet reaching its destination.
type DeliveryRecord struct {
	PacketID uint64
	Clock    int64
	Hops     int
}
