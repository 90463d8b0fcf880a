package sim

import (
	"fmt"
	"sort"
)

// ContactPlan is the human-oriented description of a future communication
// topology: a set of plan-entry contacts plus defaults applied to any
// contact that omits datarate or delay. ContactPlan is produced by an
// external, already-validated source (JSON ingestion is a non-goal of
// this core); Normalize and Validate exist so library callers building a
// plan programmatically (e.g. in tests) get the same guarantees.
type ContactPlan struct {
	Contacts        []Contact
	DefaultDatarate int64 // bytes/ms, used when a contact entry specifies 0
	DefaultDelay    int64 // ms, used when a contact entry specifies 0
}

// Normalize returns a copy of the plan with zero-valued Datarate/Delay
// fields filled in from the plan's defaults. It does not mutate the
// receiver: callers get a fully resolved copy back, resolve-before-
// construct, rather than a plan with implicit defaults baked in later.
func (p ContactPlan) Normalize() ContactPlan {
	out := ContactPlan{
		DefaultDatarate: p.DefaultDatarate,
		DefaultDelay:    p.DefaultDelay,
		Contacts:        make([]Contact, len(p.Contacts)),
	}
	for i, c := range p.Contacts {
		if c.Datarate == 0 {
			c.Datarate = p.DefaultDatarate
		}
		if c.Delay == 0 {
			c.Delay = p.DefaultDelay
		}
		out.Contacts[i] = c
	}
	return out
}

// Validate checks every contact's invariants (§3) and returns the first
// violation found, wrapped with enough context to locate the offending
// entry.
func (p ContactPlan) Validate() error {
	for _, c := range p.Contacts {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("contact %s: %w", c.ID(), err)
		}
	}
	return nil
}

// NodeIDs returns the set of node ids mentioned by the plan (as either
// endpoint of any contact), in deterministic ascending order.
func (p ContactPlan) NodeIDs() []NodeID {
	seen := make(map[NodeID]struct{})
	for _, c := range p.Contacts {
		seen[c.From] = struct{}{}
		seen[c.To] = struct{}{}
	}
	ids := make([]NodeID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Outbound returns every contact with the given From node, in the plan's
// deterministic sort order.
func (p ContactPlan) Outbound(node NodeID) []Contact {
	var out []Contact
	for _, c := range p.Sorted() {
		if c.From == node {
			out = append(out, c)
		}
	}
	return out
}

// Sorted returns all contacts ordered by (FromTime, FromNode, ToNode,
// ToTime), the canonical deterministic enumeration order required by §3.
func (p ContactPlan) Sorted() []Contact {
	out := make([]Contact, len(p.Contacts))
	copy(out, p.Contacts)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FromTime != b.FromTime {
			return a.FromTime < b.FromTime
		}
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.ToTime < b.ToTime
	})
	return out
}
