package sim

import "github.com/dtnsim/dtnsim/sim/trace"

// Limbo is a node's FIFO of packets the router could not schedule.
// Packets here are not automatically retried by the core (§3); they are
// counted in final statistics and may be inspected by external
// collaborators via Packets.
type Limbo struct {
	queue []*Packet
}

// Enqueue appends a packet to the limbo.
func (l *Limbo) Enqueue(p *Packet) { l.queue = append(l.queue, p) }

// Len reports how many packets are currently in limbo.
func (l *Limbo) Len() int { return len(l.queue) }

// Packets returns the limbo's contents in FIFO order. The returned slice
// is a copy; callers must not assume it tracks future Enqueue calls.
func (l *Limbo) Packets() []*Packet {
	out := make([]*Packet, len(l.queue))
	copy(out, l.queue)
	return out
}

// Node receives packets, consults its Router against the shared
// ContactGraph, and either enqueues them onto an outbound ActiveContact
// or into its Limbo (§4.5). Every outbound contact referenced by a node
// must have From == that node's id; this is checked at registration.
//
// Thread-safety: not safe for concurrent use. Node methods are only
// ever called from the simulator's single event-loop goroutine.
type Node struct {
	ID       NodeID
	Router   Router
	Graph    *ContactGraph
	Hotspot  bool
	Limbo    Limbo
	outbound map[ContactID]*ActiveContact
	sim      *Simulator
	anchors  map[NodeID]map[ContactID]bool // per-destination, AnchorRouter only
}

// NewNode creates a Node bound to a routing graph and router flavor.
// The returned Node must be registered with a Simulator via
// Simulator.RegisterNode before any packets are injected or received.
func NewNode(id NodeID, router Router, graph *ContactGraph) *Node {
	return &Node{
		ID:       id,
		Router:   router,
		Graph:    graph,
		outbound: make(map[ContactID]*ActiveContact),
	}
}

// AddOutboundContact registers c as one of this node's outbound runtime
// contacts. Panics if c.Plan.From is not this node's id (§3 invariant).
func (n *Node) AddOutboundContact(c *ActiveContact) {
	if c.Plan.From != n.ID {
		invariantViolation("outbound contact " + string(c.Plan.ID()) + " does not originate at node " + string(n.ID))
	}
	n.outbound[c.Plan.ID()] = c
}

// Inject hands a freshly created packet to the node as its source,
// notifying monitors and then running the same accept-or-route-or-limbo
// logic used for forwarded packets (§4.5).
func (n *Node) Inject(p *Packet, time int64) {
	p.Owner = n.ID
	n.sim.monitors.packetInjected(p, time)
	n.forward(p, time, "")
}

// Receive accepts a packet handed off by an upstream Contact.
func (n *Node) Receive(p *Packet, time int64) {
	prevOwner := p.Owner
	p.Owner = n.ID
	n.forward(p, time, prevOwner)
}

// forward implements §4.5's shared inject/receive logic. prevOwner is
// the node the packet was just delivered from, or "" for a fresh
// injection at the packet's source; it feeds the hotspot anti-loop rule.
func (n *Node) forward(p *Packet, time int64, prevOwner NodeID) {
	if p.Destination == n.ID {
		n.sim.monitors.packetDelivered(p, time)
		n.sim.trace.RecordDelivery(trace.DeliveryRecord{
			PacketID: p.ID,
			Clock:    time,
			Hops:     len(p.Trace),
		})
		return
	}

	excludedNodes := n.hotspotExclusions(p, prevOwner)

	q := RouteQuery{
		Graph:            n.Graph,
		Capacity:         n.sim,
		Source:           n.ID,
		Destination:      p.Destination,
		CurrentTime:      time,
		PacketSize:       p.Size,
		ExcludedNodes:    excludedNodes,
		ExcludedContacts: n.anchorExclusions(p.Destination),
	}

	route, found := n.Router.Route(q)
	if !found && len(q.ExcludedContacts) > 0 {
		// Every first hop this node has anchored for this destination is
		// now infeasible together; anchoring is meant to spread traffic
		// across feasible routes, not to wedge routing shut, so forget
		// them and retry unconstrained once.
		n.clearAnchors(p.Destination)
		q.ExcludedContacts = nil
		route, found = n.Router.Route(q)
	}
	n.sim.monitors.routingDecision(n.ID, p, found, time)

	rec := trace.RoutingRecord{
		PacketID:    p.ID,
		Clock:       time,
		Node:        string(n.ID),
		Destination: string(p.Destination),
		Found:       found,
	}
	if found {
		rec.NextHop = string(route.NextHop)
		rec.HopCount = route.HopCount
		rec.EDT = route.BestDeliveryTime
	}
	n.sim.trace.RecordRouting(rec)

	if !found {
		n.Limbo.Enqueue(p)
		n.sim.stats.packetsEnqueuedInLimbos++
		n.sim.monitors.packetEnqueuedLimbo(p, time)
		return
	}

	n.sim.monitors.packetRouted(p, route, time)
	p.LastRoute = route
	n.recordAnchor(p.Destination, route.NextHop)

	firstHop, ok := n.outbound[route.NextHop]
	if !ok {
		invariantViolation("route selected contact " + string(route.NextHop) + " not registered on node " + string(n.ID))
	}
	n.sim.debitCapacity(route.NextHop, p.Size)
	firstHop.Enqueue(p)
}

// anchorExclusions returns the first hops this node has already used for
// dest, if it routes with AnchorRouter; nil for every other flavor, and
// nil until a first route to dest has actually been chosen. This is what
// makes cgr_anchor diverge from cgr_basic across a live run: consecutive
// packets to the same destination are pushed onto different feasible
// routes instead of always taking the single best one (§4.3).
func (n *Node) anchorExclusions(dest NodeID) map[ContactID]bool {
	if _, ok := n.Router.(AnchorRouter); !ok {
		return nil
	}
	return n.anchors[dest]
}

// recordAnchor adds hop to the set of first hops already used for dest,
// for AnchorRouter nodes only.
func (n *Node) recordAnchor(dest NodeID, hop ContactID) {
	if _, ok := n.Router.(AnchorRouter); !ok {
		return
	}
	if n.anchors == nil {
		n.anchors = make(map[NodeID]map[ContactID]bool)
	}
	if n.anchors[dest] == nil {
		n.anchors[dest] = make(map[ContactID]bool)
	}
	n.anchors[dest][hop] = true
}

// clearAnchors forgets every anchored first hop for dest.
func (n *Node) clearAnchors(dest NodeID) {
	delete(n.anchors, dest)
}

// hotspotExclusions implements the hotspot anti-loop rule (§4.5): a
// packet that arrives at a hotspot directly from another hotspot,
// without a return-to-sender flag, has every hotspot other than the
// packet's original sender excluded from its next routing decision.
func (n *Node) hotspotExclusions(p *Packet, prevOwner NodeID) map[NodeID]bool {
	if !n.Hotspot || prevOwner == "" || p.ReturnToSender {
		return nil
	}
	if !n.sim.isHotspot(prevOwner) {
		return nil
	}
	excluded := make(map[NodeID]bool)
	for _, h := range n.sim.hotspotList() {
		if h != p.Source {
			excluded[h] = true
		}
	}
	return excluded
}
