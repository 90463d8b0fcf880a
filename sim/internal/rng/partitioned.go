// Package rng provides deterministic, subsystem-isolated random streams.
package rng

import (
	"hash/fnv"
	"math/rand"
)

// Partitioned hands out one *rand.Rand per named subsystem, each derived
// deterministically from a single master seed so a run is fully
// reproducible regardless of which subsystems happen to draw from their
// stream in which order.
type Partitioned struct {
	masterSeed int64
	streams    map[string]*rand.Rand
}

// New creates a Partitioned RNG rooted at masterSeed.
func New(masterSeed int64) *Partitioned {
	return &Partitioned{
		masterSeed: masterSeed,
		streams:    make(map[string]*rand.Rand),
	}
}

// For returns the RNG for the given subsystem name, creating it on first
// use. Repeated calls with the same name return the same stream.
func (p *Partitioned) For(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	r := rand.New(rand.NewSource(p.deriveSeed(name)))
	p.streams[name] = r
	return r
}

// deriveSeed XORs the master seed with an FNV-1a hash of the subsystem
// name, so derivation is order-independent: the seed for "jitter" does not
// depend on whether "router" was drawn from first.
func (p *Partitioned) deriveSeed(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return p.masterSeed ^ int64(h.Sum64())
}

// Subsystem name constants used by the generator's optional jitter stream.
const SubsystemJitter = "jitter"
