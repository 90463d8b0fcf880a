package sim

// Monitor receives lifecycle callbacks from the simulation (§4.7).
// Implementations must not mutate simulator state; they are read-only
// observers. Embed MonitorBase to pick up no-op defaults for the
// callbacks an observer doesn't care about, so a monitor only has to
// implement the subset of decisions it wants to record.
type Monitor interface {
	OnPacketGenerated(p *Packet, time int64)
	OnPacketInjected(p *Packet, time int64)
	OnPacketRouted(p *Packet, route *Route, time int64)
	OnPacketDelivered(p *Packet, time int64)
	OnPacketEnqueuedLimbo(p *Packet, time int64)
	OnContactStarted(c *ActiveContact, time int64)
	OnContactEnded(c *ActiveContact, time int64)
	OnRoutingDecision(sourceNode NodeID, p *Packet, found bool, time int64)
}

// MonitorBase gives Monitor implementations no-op defaults for every
// callback; embedders override only the ones they need.
type MonitorBase struct{}

func (MonitorBase) OnPacketGenerated(*Packet, int64)                   {}
func (MonitorBase) OnPacketInjected(*Packet, int64)                    {}
func (MonitorBase) OnPacketRouted(*Packet, *Route, int64)              {}
func (MonitorBase) OnPacketDelivered(*Packet, int64)                   {}
func (MonitorBase) OnPacketEnqueuedLimbo(*Packet, int64)               {}
func (MonitorBase) OnContactStarted(*ActiveContact, int64)             {}
func (MonitorBase) OnContactEnded(*ActiveContact, int64)               {}
func (MonitorBase) OnRoutingDecision(NodeID, *Packet, bool, int64)     {}

// monitorNotifier relays callbacks to every registered Monitor in
// registration order (§4.7). It is owned by the Simulator, never a
// package-level global, so multiple simulations can coexist (§9).
type monitorNotifier struct {
	monitors []Monitor
}

func (n *monitorNotifier) register(m Monitor) {
	n.monitors = append(n.monitors, m)
}

func (n *monitorNotifier) packetGenerated(p *Packet, t int64) {
	for _, m := range n.monitors {
		m.OnPacketGenerated(p, t)
	}
}

func (n *monitorNotifier) packetInjected(p *Packet, t int64) {
	for _, m := range n.monitors {
		m.OnPacketInjected(p, t)
	}
}

func (n *monitorNotifier) packetRouted(p *Packet, r *Route, t int64) {
	for _, m := range n.monitors {
		m.OnPacketRouted(p, r, t)
	}
}

func (n *monitorNotifier) packetDelivered(p *Packet, t int64) {
	for _, m := range n.monitors {
		m.OnPacketDelivered(p, t)
	}
}

func (n *monitorNotifier) packetEnqueuedLimbo(p *Packet, t int64) {
	for _, m := range n.monitors {
		m.OnPacketEnqueuedLimbo(p, t)
	}
}

func (n *monitorNotifier) contactStarted(c *ActiveContact, t int64) {
	for _, m := range n.monitors {
		m.OnContactStarted(c, t)
	}
}

func (n *monitorNotifier) contactEnded(c *ActiveContact, t int64) {
	for _, m := range n.monitors {
		m.OnContactEnded(c, t)
	}
}

func (n *monitorNotifier) routingDecision(src NodeID, p *Packet, found bool, t int64) {
	for _, m := range n.monitors {
		m.OnRoutingDecision(src, p, found, t)
	}
}
