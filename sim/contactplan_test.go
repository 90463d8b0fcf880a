package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactPlan_Normalize_FillsDefaults(t *testing.T) {
	plan := ContactPlan{
		DefaultDatarate: 10,
		DefaultDelay:    2,
		Contacts: []Contact{
			{From: "a", To: "b", FromTime: 0, ToTime: 100},
			{From: "b", To: "c", FromTime: 0, ToTime: 100, Datarate: 5, Delay: 1},
		},
	}
	norm := plan.Normalize()
	assert.Equal(t, int64(10), norm.Contacts[0].Datarate)
	assert.Equal(t, int64(2), norm.Contacts[0].Delay)
	assert.Equal(t, int64(5), norm.Contacts[1].Datarate)
	assert.Equal(t, int64(1), norm.Contacts[1].Delay)

	// original untouched
	assert.Equal(t, int64(0), plan.Contacts[0].Datarate)
}

func TestContactPlan_NodeIDs_SortedAndDeduplicated(t *testing.T) {
	plan := ContactPlan{Contacts: []Contact{
		{From: "b", To: "a", FromTime: 0, ToTime: 1},
		{From: "a", To: "c", FromTime: 0, ToTime: 1},
	}}
	assert.Equal(t, []NodeID{"a", "b", "c"}, plan.NodeIDs())
}

func TestContactPlan_Sorted_OrdersByFromTimeThenNodes(t *testing.T) {
	plan := ContactPlan{Contacts: []Contact{
		{From: "b", To: "a", FromTime: 10, ToTime: 20},
		{From: "a", To: "b", FromTime: 0, ToTime: 10},
		{From: "a", To: "c", FromTime: 0, ToTime: 5},
	}}
	sorted := plan.Sorted()
	assert.Equal(t, NodeID("a"), sorted[0].From)
	assert.Equal(t, NodeID("b"), sorted[0].To)
	assert.Equal(t, NodeID("a"), sorted[1].From)
	assert.Equal(t, NodeID("c"), sorted[1].To)
	assert.Equal(t, NodeID("b"), sorted[2].From)
}

func TestContactPlan_Outbound_FiltersByFromNode(t *testing.T) {
	plan := ContactPlan{Contacts: []Contact{
		{From: "a", To: "b", FromTime: 0, ToTime: 10},
		{From: "a", To: "c", FromTime: 5, ToTime: 10},
		{From: "b", To: "c", FromTime: 0, ToTime: 10},
	}}
	out := plan.Outbound("a")
	assert.Len(t, out, 2)
	for _, c := range out {
		assert.Equal(t, NodeID("a"), c.From)
	}
}

func TestContactPlan_Validate_PropagatesFirstError(t *testing.T) {
	plan := ContactPlan{Contacts: []Contact{
		{From: "a", To: "b", FromTime: 0, ToTime: 10, Datarate: 1, Delay: 1},
		{From: "b", To: "c", FromTime: 10, ToTime: 5, Datarate: 1, Delay: 1},
	}}
	assert.ErrorIs(t, plan.Validate(), ErrInvalidContact)
}
