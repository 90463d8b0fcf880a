package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvent struct {
	at  int64
	log *[]string
	tag string
}

func (e *recordingEvent) Timestamp() int64 { return e.at }
func (e *recordingEvent) Execute(s *Simulator) {
	*e.log = append(*e.log, e.tag)
}

func TestSimulator_Schedule_OrdersByTimeThenSequence(t *testing.T) {
	s := NewSimulator()
	var log []string

	require.NoError(t, s.Schedule(&recordingEvent{at: 10, log: &log, tag: "b"}))
	require.NoError(t, s.Schedule(&recordingEvent{at: 5, log: &log, tag: "a"}))
	require.NoError(t, s.Schedule(&recordingEvent{at: 5, log: &log, tag: "a2"}))
	require.NoError(t, s.Schedule(&recordingEvent{at: 20, log: &log, tag: "c"}))

	s.Run(1000)

	assert.Equal(t, []string{"a", "a2", "b", "c"}, log)
}

func TestSimulator_Schedule_RejectsPastEvents(t *testing.T) {
	s := NewSimulator()
	var log []string
	require.NoError(t, s.Schedule(&recordingEvent{at: 100, log: &log}))
	s.Run(101)
	assert.Equal(t, int64(100), s.Clock)

	err := s.Schedule(&recordingEvent{at: 50, log: &log})
	assert.ErrorIs(t, err, ErrScheduleInPast)
}

func TestSimulator_Schedule_AcceptsEventAtCurrentClock(t *testing.T) {
	s := NewSimulator()
	var log []string
	require.NoError(t, s.Schedule(&recordingEvent{at: 0, log: &log, tag: "first"}))
	s.Run(1)
	require.NoError(t, s.Schedule(&recordingEvent{at: 0, log: &log, tag: "second"}))
}

func TestSimulator_Run_HorizonIsHalfOpen(t *testing.T) {
	s := NewSimulator()
	var log []string
	require.NoError(t, s.Schedule(&recordingEvent{at: 100, log: &log, tag: "at-horizon"}))
	require.NoError(t, s.Schedule(&recordingEvent{at: 99, log: &log, tag: "before-horizon"}))

	s.Run(100)

	assert.Equal(t, []string{"before-horizon"}, log)
	assert.Equal(t, int64(99), s.Clock)
}

func TestSimulator_RegisterGenerator_PanicsOnDuplicate(t *testing.T) {
	s := NewSimulator()
	g := &ContinuousPacketGenerator{}
	s.RegisterGenerator(g)
	assert.PanicsWithValue(t, ErrDuplicateGenerator, func() {
		s.RegisterGenerator(g)
	})
}

func TestSimulator_RemainingCapacity_UnknownContactPanics(t *testing.T) {
	s := NewSimulator()
	assert.Panics(t, func() {
		s.RemainingCapacity("nonexistent")
	})
}

func TestSimulator_HotspotList_SortedRegardlessOfRegistrationOrder(t *testing.T) {
	s := NewSimulator()
	for _, id := range []NodeID{"z", "a", "m"} {
		n := NewNode(id, BasicRouter{}, nil)
		n.Hotspot = true
		s.RegisterNode(n)
	}
	assert.Equal(t, []NodeID{"a", "m", "z"}, s.hotspotList())
}

func TestSimulator_Summary_ComputesAverageUtilization(t *testing.T) {
	s := NewSimulator()
	c1 := NewActiveContact(Contact{From: "a", To: "b", FromTime: 0, ToTime: 100, Datarate: 10, Delay: 1})
	c2 := NewActiveContact(Contact{From: "b", To: "c", FromTime: 0, ToTime: 100, Datarate: 10, Delay: 1})
	c1.Utilization = 200
	c2.Utilization = 0
	s.RegisterContact(c1)
	s.RegisterContact(c2)

	summary := s.Summary()
	assert.Equal(t, 100.0, summary.AverageContactUtilization)
	assert.Equal(t, int64(200), summary.PerContactUtilization[c1.Plan.ID()])
}
