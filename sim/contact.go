package sim

import "github.com/sirupsen/logrus"

// Contact is an immutable plan-entry contact: a half-open time window
// [FromTime, ToTime) during which From can transmit to To at Datarate
// bytes/ms with a fixed propagation Delay in ms.
type Contact struct {
	From     NodeID
	To       NodeID
	FromTime int64
	ToTime   int64
	Datarate int64 // bytes per ms, > 0
	Delay    int64 // ms, > 0
}

// ID returns the contact's stable identity, used as a graph vertex key
// and in excluded-contact sets.
func (c Contact) ID() ContactID {
	return contactID(c.From, c.To, c.FromTime)
}

// Duration returns the contact's window length in ms.
func (c Contact) Duration() int64 {
	return c.ToTime - c.FromTime
}

// Capacity returns the total bytes transmittable over the contact's full
// window: Datarate * Duration.
func (c Contact) Capacity() int64 {
	return c.Datarate * c.Duration()
}

// Validate checks the plan-entry invariants from §3: FromTime < ToTime,
// Datarate > 0, Delay > 0 (zero delay is forbidden, it would let a
// packet loop through zero-duration forwarding chains).
func (c Contact) Validate() error {
	if c.FromTime >= c.ToTime {
		return ErrInvalidContact
	}
	if c.Datarate <= 0 {
		return ErrInvalidContact
	}
	if c.Delay <= 0 {
		return ErrInvalidContact
	}
	return nil
}

// transmissionDuration returns ceil(size / datarate), the number of ms
// needed to put size bytes on the wire at this contact's datarate.
func (c Contact) transmissionDuration(size int64) int64 {
	if size == 0 {
		return 0
	}
	return (size + c.Datarate - 1) / c.Datarate
}

// ActiveContact is the runtime, mutable counterpart of a Contact: a FIFO
// transmission queue plus remaining-capacity bookkeeping that the CGR
// router also reads at planning time. Created once at simulation setup,
// activated once by the kernel at FromTime, drained until ToTime, then
// terminal.
//
// Thread-safety: not safe for concurrent use. All mutation happens on
// the simulator's single event-loop goroutine.
// ActiveContact's three capacity counters always satisfy
// RemainingCapacity + Reserved + Utilization == Plan.Capacity():
// RemainingCapacity is capacity not yet committed to any packet,
// Reserved is capacity debited to an accepted packet that has not yet
// crossed the wire (queued, or permanently stranded at window close),
// and Utilization is capacity that has actually been transmitted.
type ActiveContact struct {
	Plan              Contact
	RemainingCapacity int64
	Reserved          int64
	Utilization       int64
	queue             []*Packet
	overflow          []*Packet // packets that could not finish before ToTime
	started           bool
	ended             bool
	sim               *Simulator
}

// NewActiveContact creates a runtime contact from its immutable plan
// entry, with remaining capacity initialized to the full window capacity.
func NewActiveContact(plan Contact) *ActiveContact {
	return &ActiveContact{
		Plan:              plan,
		RemainingCapacity: plan.Capacity(),
	}
}

// reserve moves size bytes from RemainingCapacity to Reserved at the
// moment a Node accepts a route through this contact (§4.5 step 3).
func (c *ActiveContact) reserve(size int64) {
	c.RemainingCapacity -= size
	c.Reserved += size
}

// Enqueue appends a packet to the contact's FIFO transmission queue.
// Callers (Node) are responsible for having already debited the
// contact's planning-time remaining capacity before calling this. If the
// contact is already active and idle (its next scheduled drain step is
// not imminent, e.g. it was waiting empty-queued until window close),
// Enqueue wakes it with an immediate drain step so the packet isn't
// stranded until ToTime.
func (c *ActiveContact) Enqueue(p *Packet) {
	wasEmpty := len(c.queue) == 0
	c.queue = append(c.queue, p)
	if wasEmpty && c.started && !c.ended && c.sim != nil {
		now := c.sim.Clock
		if now < c.Plan.ToTime {
			_ = c.sim.Schedule(&contactDrainEvent{time: now, contact: c})
		}
	}
}

// QueueLen reports how many packets are currently waiting to transmit.
func (c *ActiveContact) QueueLen() int { return len(c.queue) }

// Start registers the contact's activation event with the simulator,
// implementing the Generator capability (§9).
func (c *ActiveContact) Start(sim *Simulator) {
	c.sim = sim
	if c.Plan.FromTime < sim.Clock {
		// A contact that starts before the simulation's current time
		// (e.g. FromTime == 0 in a simulator already past tick 0) never
		// activates; nothing to schedule.
		return
	}
	sim.Schedule(&contactDrainEvent{time: c.Plan.FromTime, contact: c})
}

// contactDrainEvent represents one iteration of the contact's drain
// loop (§4.4): dequeue, check capacity and timing, transmit, reschedule.
// It follows the same self-rescheduling shape as every other generator
// event in this package: Execute conditionally schedules the next step
// of the same logical process.
type contactDrainEvent struct {
	time    int64
	contact *ActiveContact
}

func (e *contactDrainEvent) Timestamp() int64 { return e.time }

func (e *contactDrainEvent) Execute(sim *Simulator) {
	c := e.contact
	if !c.started {
		c.started = true
		sim.notifyContactStarted(c)
	}

	now := e.time
	if now >= c.Plan.ToTime {
		c.finalize(sim)
		return
	}
	if len(c.queue) == 0 {
		// Nothing to send right now; re-check at the window close so the
		// contact is finalized even if nothing is ever enqueued.
		sim.Schedule(&contactDrainEvent{time: c.Plan.ToTime, contact: c})
		return
	}

	p := c.queue[0]
	// No capacity check here: the head packet's bytes were already
	// reserved out of RemainingCapacity when the forwarding Node accepted
	// its route (§4.5 step 3), so room for it is already guaranteed. The
	// only reason this packet can still fail to cross the wire is running
	// out of window time, checked next.
	tau := c.Plan.transmissionDuration(p.Size)
	if now+tau > c.Plan.ToTime {
		logrus.Debugf("contact %s cannot complete packet %d before window close", c.Plan.ID(), p.ID)
		c.queue = c.queue[1:]
		c.overflow = append(c.overflow, p)
		sim.notifyCapacityExhausted(c, p)
		c.finalize(sim)
		return
	}

	c.queue = c.queue[1:]
	c.Reserved -= p.Size
	c.Utilization += p.Size

	// Open question #1 (see DESIGN.md / SPEC_FULL.md §Open Questions):
	// delay is used in routing arithmetic but intentionally NOT added
	// here to the scheduled arrival time.
	arrival := now + tau
	p.Trace = append(p.Trace, Hop{Contact: c.Plan.ID(), Departure: now, Arrival: arrival})

	sim.Schedule(&packetArrivalEvent{time: arrival, packet: p, toNode: c.Plan.To})
	sim.Schedule(&contactDrainEvent{time: now + tau, contact: c})
}

// finalize marks the contact terminal and reports every packet stranded
// by it: still waiting in its FIFO at window close, or already pulled
// off the FIFO but unable to finish transmitting before ToTime (§4.4).
// Both kinds keep their reserved capacity debited forever; neither ever
// reaches Utilization.
func (c *ActiveContact) finalize(sim *Simulator) {
	if c.ended {
		return
	}
	c.ended = true
	stranded := len(c.queue) + len(c.overflow)
	if stranded > 0 {
		sim.stats.packetsEnqueuedInContacts += stranded
	}
	sim.notifyContactEnded(c)
}

// packetArrivalEvent delivers a packet to its next-hop node.
type packetArrivalEvent struct {
	time   int64
	packet *Packet
	toNode NodeID
}

func (e *packetArrivalEvent) Timestamp() int64 { return e.time }

func (e *packetArrivalEvent) Execute(sim *Simulator) {
	node, ok := sim.node(e.toNode)
	if !ok {
		invariantViolation("packet routed to unknown node " + string(e.toNode))
	}
	node.Receive(e.packet, e.time)
}
