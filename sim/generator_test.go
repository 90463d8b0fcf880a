package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnsim/dtnsim/sim/internal/rng"
)

func TestContinuousPacketGenerator_PacketsPerPair_ExactFormula(t *testing.T) {
	g := &ContinuousPacketGenerator{Size: 100_000, Datarate: 10, StartTime: 0, EndTime: 1_000_000}
	// floor((1_000_000 - 0) / (100_000 / 10)) = floor(1_000_000 / 10_000) = 100
	assert.Equal(t, int64(100), g.packetsPerPair())
}

func TestContinuousPacketGenerator_PacketsPerPair_ZeroOnDegenerateInput(t *testing.T) {
	assert.Equal(t, int64(0), (&ContinuousPacketGenerator{Size: 0, Datarate: 10, StartTime: 0, EndTime: 100}).packetsPerPair())
	assert.Equal(t, int64(0), (&ContinuousPacketGenerator{Size: 10, Datarate: 0, StartTime: 0, EndTime: 100}).packetsPerPair())
	assert.Equal(t, int64(0), (&ContinuousPacketGenerator{Size: 10, Datarate: 10, StartTime: 100, EndTime: 0}).packetsPerPair())
}

func TestContinuousPacketGenerator_InjectsExpectedCountPerPair(t *testing.T) {
	plan := ContactPlan{Contacts: []Contact{
		{From: "a", To: "c", FromTime: 0, ToTime: 2_000_000, Datarate: 100_000, Delay: 1},
	}}.Normalize()
	graph := NewContactGraph(plan)
	s := NewSimulator()

	a := NewNode("a", BasicRouter{}, graph)
	c := NewNode("c", BasicRouter{}, graph)
	s.RegisterNode(a)
	s.RegisterNode(c)
	ac := NewActiveContact(plan.Contacts[0])
	s.RegisterContact(ac)
	a.AddOutboundContact(ac)

	var delivered int
	s.RegisterMonitor(&countingMonitor{delivered: &delivered})

	s.RegisterGenerator(&ContinuousPacketGenerator{
		Sources:      []NodeID{"a"},
		Destinations: []NodeID{"c"},
		Size:         100_000,
		Datarate:     10,
		StartTime:    0,
		EndTime:      1_000_000,
	})

	s.Run(2_000_000)

	assert.Equal(t, 100, delivered)
}

type countingMonitor struct {
	MonitorBase
	delivered *int
}

func (m *countingMonitor) OnPacketDelivered(*Packet, int64) { *m.delivered++ }

func TestBatchPacketGenerator_InjectsExactCounts(t *testing.T) {
	plan := ContactPlan{Contacts: []Contact{
		{From: "a", To: "b", FromTime: 0, ToTime: 1000, Datarate: 10, Delay: 1},
	}}.Normalize()
	graph := NewContactGraph(plan)
	s := NewSimulator()
	a := NewNode("a", BasicRouter{}, graph)
	b := NewNode("b", BasicRouter{}, graph)
	s.RegisterNode(a)
	s.RegisterNode(b)
	ac := NewActiveContact(plan.Contacts[0])
	s.RegisterContact(ac)
	a.AddOutboundContact(ac)

	s.RegisterGenerator(&BatchPacketGenerator{Entries: []BatchEntry{
		{Time: 0, Count: 3, Source: "a", Destination: "b", Size: 10},
	}})

	var generated int
	s.RegisterMonitor(&generatedCounter{count: &generated})

	s.Run(1000)
	require.Equal(t, 3, generated)
	assert.Equal(t, 3, int(s.stats.packetsGenerated))
}

type generatedCounter struct {
	MonitorBase
	count *int
}

func (m *generatedCounter) OnPacketGenerated(*Packet, int64) { *m.count++ }

func TestJitterConfig_Draw_Bounded(t *testing.T) {
	j := &JitterConfig{RNG: rng.New(42), MaxMs: 50}
	for i := 0; i < 100; i++ {
		d := j.draw()
		assert.True(t, d >= -50 && d <= 50)
	}
}

func TestJitterConfig_Draw_NilIsAlwaysZero(t *testing.T) {
	var j *JitterConfig
	assert.Equal(t, int64(0), j.draw())
}
