package sim

import "github.com/dtnsim/dtnsim/sim/internal/rng"

// PacketGenerator is the shared capability for anything that injects
// packets into the simulation over time (§4.6, §9). Both variants below
// implement Generator (Start) by scheduling their own events: the
// continuous one reschedules itself after each packet, the same way
// ActiveContact does, while the batch one schedules every entry up front.
type PacketGenerator interface {
	Generator
}

// ContinuousPacketGenerator emits one packet from every source in
// Sources to every destination in Destinations, every Size/Datarate ms,
// from StartTime (inclusive) to EndTime (exclusive) (§4.6). The total
// packet count per (src, dst) pair is floor((EndTime-StartTime) /
// (Size/Datarate)), computed with exact integer arithmetic as
// (EndTime-StartTime)*Datarate/Size to avoid floating-point drift (§6).
type ContinuousPacketGenerator struct {
	Sources      []NodeID
	Destinations []NodeID
	Size         int64 // bytes per packet
	Datarate     int64 // bytes/ms
	StartTime    int64
	EndTime      int64

	// Jitter, when non-nil, perturbs each scheduled packet's time by a
	// uniform draw in [-MaxMs, MaxMs] from a dedicated RNG stream, without
	// changing the total packet count. Nil by default: the uniform
	// interval formula above is exact unless a caller opts in.
	Jitter *JitterConfig
}

// JitterConfig configures optional, seeded timing noise on a generator's
// packet schedule.
type JitterConfig struct {
	RNG   *rng.Partitioned
	MaxMs int64
}

func (j *JitterConfig) draw() int64 {
	if j == nil || j.MaxMs <= 0 {
		return 0
	}
	r := j.RNG.For(rng.SubsystemJitter)
	return r.Int63n(2*j.MaxMs+1) - j.MaxMs
}

// Start schedules the first packet of every (source, destination) pair,
// if any packets are due at all.
func (g *ContinuousPacketGenerator) Start(sim *Simulator) {
	n := g.packetsPerPair()
	if n <= 0 {
		return
	}
	for _, src := range g.Sources {
		for _, dst := range g.Destinations {
			ev := &continuousGenEvent{
				time:  g.StartTime,
				gen:   g,
				src:   src,
				dst:   dst,
				index: 0,
				total: n,
			}
			_ = sim.Schedule(ev)
		}
	}
}

// packetsPerPair returns floor((EndTime-StartTime)/(Size/Datarate)).
func (g *ContinuousPacketGenerator) packetsPerPair() int64 {
	if g.Size <= 0 || g.Datarate <= 0 || g.EndTime <= g.StartTime {
		return 0
	}
	return (g.EndTime - g.StartTime) * g.Datarate / g.Size
}

// timeOf returns the scheduled time of the i-th packet (0-indexed) in a
// (source, destination) pair's stream, jittered if configured. notBefore
// clamps the result so a large negative jitter draw can never schedule a
// packet earlier than the event currently firing.
func (g *ContinuousPacketGenerator) timeOf(i, notBefore int64) int64 {
	t := g.StartTime + (i*g.Size)/g.Datarate + g.Jitter.draw()
	if t < notBefore {
		t = notBefore
	}
	return t
}

type continuousGenEvent struct {
	time  int64
	gen   *ContinuousPacketGenerator
	src   NodeID
	dst   NodeID
	index int64
	total int64
}

func (e *continuousGenEvent) Timestamp() int64 { return e.time }

func (e *continuousGenEvent) Execute(sim *Simulator) {
	p := &Packet{
		ID:           sim.NextPacketID(),
		Size:         e.gen.Size,
		Source:       e.src,
		Destination:  e.dst,
		CreationTime: e.time,
		Owner:        e.src,
	}
	sim.RecordPacketGenerated(p, e.time)

	node, ok := sim.node(e.src)
	if !ok {
		invariantViolation("generator source node not registered: " + string(e.src))
	}
	node.Inject(p, e.time)

	next := e.index + 1
	if next < e.total {
		_ = sim.Schedule(&continuousGenEvent{
			time:  e.gen.timeOf(next, e.time),
			gen:   e.gen,
			src:   e.src,
			dst:   e.dst,
			index: next,
			total: e.total,
		})
	}
}

// BatchEntry schedules Count identically-sized packets from Source to
// Destination, all injected at Time.
type BatchEntry struct {
	Time        int64
	Count       int
	Source      NodeID
	Destination NodeID
	Size        int64
}

// BatchPacketGenerator emits fixed counts of packets at fixed times
// (§4.6), used e.g. for capacity-saturation scenarios.
type BatchPacketGenerator struct {
	Entries []BatchEntry
}

// Start schedules one event per batch entry.
func (g *BatchPacketGenerator) Start(sim *Simulator) {
	for _, e := range g.Entries {
		_ = sim.Schedule(&batchGenEvent{time: e.Time, entry: e})
	}
}

type batchGenEvent struct {
	time  int64
	entry BatchEntry
}

func (e *batchGenEvent) Timestamp() int64 { return e.time }

func (e *batchGenEvent) Execute(sim *Simulator) {
	node, ok := sim.node(e.entry.Source)
	if !ok {
		invariantViolation("generator source node not registered: " + string(e.entry.Source))
	}
	for i := 0; i < e.entry.Count; i++ {
		p := &Packet{
			ID:           sim.NextPacketID(),
			Size:         e.entry.Size,
			Source:       e.entry.Source,
			Destination:  e.entry.Destination,
			CreationTime: e.time,
			Owner:        e.entry.Source,
		}
		sim.RecordPacketGenerated(p, e.time)
		node.Inject(p, e.time)
	}
}
