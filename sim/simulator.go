package sim

import (
	"container/heap"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/dtnsim/dtnsim/sim/trace"
)

// Generator is anything that injects events into the simulation over
// time: PacketGenerators and, implicitly, ActiveContacts (§9's unified
// "generator" capability). Start is called once per registered
// generator, in registration order, before the event loop runs.
type Generator interface {
	Start(sim *Simulator)
}

// Simulator is the single-threaded, cooperative discrete-event kernel
// (§4.1, §5). It owns the event queue, the node and contact registries
// used to resolve identity-based references (§9's "central registry"
// design note), and the monitor fan-out. Simulator is an explicit owned
// value passed by reference, never an ambient global, so multiple
// simulations can coexist in the same process.
//
// Thread-safety: not safe for concurrent use. All scheduling and
// execution happens on a single goroutine.
type Simulator struct {
	Clock int64

	queue    eventQueue
	sequence uint64

	nodes    map[NodeID]*Node
	contacts map[ContactID]*ActiveContact
	hotspots map[NodeID]bool

	generators []Generator
	monitors   monitorNotifier

	packetIDs packetIDAllocator
	stats     runStats

	// trace is nil unless EnableTrace was called with a non-none level,
	// a zero-overhead-when-disabled field.
	trace *trace.DecisionTrace
}

// EnableTrace turns on decision tracing for the run at the given level.
// Must be called before Run; calling it with trace.LevelNone (or not
// calling it at all) leaves tracing off at zero cost.
func (s *Simulator) EnableTrace(cfg trace.Config) {
	s.trace = trace.New(cfg)
}

// Trace returns the run's decision trace, or nil if tracing was never
// enabled.
func (s *Simulator) Trace() *trace.DecisionTrace {
	return s.trace
}

// NewSimulator creates an empty Simulator ready for registration.
func NewSimulator() *Simulator {
	return &Simulator{
		nodes:    make(map[NodeID]*Node),
		contacts: make(map[ContactID]*ActiveContact),
		hotspots: make(map[NodeID]bool),
	}
}

// Schedule enqueues ev to run at its own Timestamp(). Returns
// ErrScheduleInPast if that time is strictly before the current clock;
// events scheduled for exactly the current clock are accepted (they
// simply run after whatever is already queued at that time, per
// insertion order). Two events scheduled for the same time, by the same
// or different callers, are both accepted and ordered by insertion
// sequence alone (§4.1).
func (s *Simulator) Schedule(ev Event) error {
	if ev.Timestamp() < s.Clock {
		return ErrScheduleInPast
	}
	heap.Push(&s.queue, scheduledEvent{event: ev, sequence: s.sequence})
	s.sequence++
	return nil
}

// RegisterNode adds a node to the simulator's identity registry and
// binds it so its outbound contacts, limbo, and routing can resolve
// other nodes and contacts by id.
func (s *Simulator) RegisterNode(n *Node) {
	n.sim = s
	s.nodes[n.ID] = n
	if n.Hotspot {
		s.hotspots[n.ID] = true
	}
}

// RegisterContact adds a runtime contact to the simulator's identity
// registry (used by the router's CapacityView and by packet arrival
// resolution) and schedules its activation generator.
func (s *Simulator) RegisterContact(c *ActiveContact) {
	s.contacts[c.Plan.ID()] = c
	s.generators = append(s.generators, c)
}

// RegisterGenerator adds a PacketGenerator (or any other Generator) to
// be started once Run begins. Registering the same generator value
// twice panics with ErrDuplicateGenerator itself as the panic value,
// since it is a pre-run configuration mistake (§7).
func (s *Simulator) RegisterGenerator(g Generator) {
	for _, existing := range s.generators {
		if existing == g {
			panic(ErrDuplicateGenerator)
		}
	}
	s.generators = append(s.generators, g)
}

// RegisterMonitor adds an observer that will receive lifecycle callbacks
// in registration order (§4.7).
func (s *Simulator) RegisterMonitor(m Monitor) {
	s.monitors.register(m)
}

// NextPacketID allocates the next monotonically increasing packet
// identifier (§3). Generators call this when constructing a Packet.
func (s *Simulator) NextPacketID() uint64 {
	return s.packetIDs.allocate()
}

// node resolves a node id through the central registry (§9).
func (s *Simulator) node(id NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// isHotspot reports whether id was registered as a hotspot node.
func (s *Simulator) isHotspot(id NodeID) bool { return s.hotspots[id] }

// hotspotList returns every registered hotspot node id, in a
// deterministic order derived from RegisterNode call order is NOT used;
// callers need a stable iteration order regardless of map internals, so
// this sorts lexicographically.
func (s *Simulator) hotspotList() []NodeID {
	out := make([]NodeID, 0, len(s.hotspots))
	for id := range s.hotspots {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RemainingCapacity implements CapacityView over the live contact
// registry, so the router always sees the exact figure the runtime
// Contact will transmit against (§5).
func (s *Simulator) RemainingCapacity(id ContactID) int64 {
	c, ok := s.contacts[id]
	if !ok {
		invariantViolation("capacity query for unknown contact " + string(id))
	}
	return c.RemainingCapacity
}

// debitCapacity performs the single planning-time debit described in
// §4.5 step 3 / §5: the forwarding Node is the only place capacity is
// ever moved out of RemainingCapacity (see contact.go's
// contactDrainEvent.Execute for why the runtime drain step never debits
// it again, only moves it on from Reserved to Utilization once the
// packet actually transmits).
func (s *Simulator) debitCapacity(id ContactID, size int64) {
	c, ok := s.contacts[id]
	if !ok {
		invariantViolation("debit against unknown contact " + string(id))
	}
	c.reserve(size)
}

func (s *Simulator) notifyContactStarted(c *ActiveContact) {
	s.monitors.contactStarted(c, s.Clock)
}

func (s *Simulator) notifyContactEnded(c *ActiveContact) {
	s.monitors.contactEnded(c, s.Clock)
}

func (s *Simulator) notifyCapacityExhausted(c *ActiveContact, p *Packet) {
	logrus.Debugf("[tick %07d] capacity exhausted on %s for packet %d", s.Clock, c.Plan.ID(), p.ID)
}

// Run drains the event queue until either it is empty or the next
// event's timestamp is >= untilMs (§4.1's half-open horizon). For every
// registered generator, Start is invoked once, in registration order,
// before the first event is popped.
func (s *Simulator) Run(untilMs int64) {
	for _, g := range s.generators {
		g.Start(s)
	}

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.event.Timestamp() >= untilMs {
			break
		}
		item := heap.Pop(&s.queue).(scheduledEvent)
		s.Clock = item.event.Timestamp()
		logrus.Debugf("[tick %07d] executing %T", s.Clock, item.event)
		item.event.Execute(s)
	}
}

// Summary computes the final statistics block (§6). Call after Run.
func (s *Simulator) Summary() Summary {
	perContact := make(map[ContactID]int64, len(s.contacts))
	var totalUtil int64
	for id, c := range s.contacts {
		perContact[id] = c.Utilization
		totalUtil += c.Utilization
	}
	avg := 0.0
	if len(s.contacts) > 0 {
		avg = float64(totalUtil) / float64(len(s.contacts))
	}
	return Summary{
		TotalPacketsGenerated:          s.stats.packetsGenerated,
		TotalPacketsEnqueuedInLimbos:   s.stats.packetsEnqueuedInLimbos,
		TotalPacketsEnqueuedInContacts: s.stats.packetsEnqueuedInContacts,
		AverageContactUtilization:      avg,
		PerContactUtilization:          perContact,
	}
}

// RecordPacketGenerated is called by PacketGenerators at the moment a
// packet is created, before injection, to keep §6's generated-count
// statistic accurate independent of what happens to the packet next.
func (s *Simulator) RecordPacketGenerated(p *Packet, time int64) {
	s.stats.packetsGenerated++
	s.monitors.packetGenerated(p, time)
}
