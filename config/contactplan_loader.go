package config

import "github.com/dtnsim/dtnsim/sim"

// ContactEntry is the already-validated, language-neutral shape an
// external loader (JSON, a test fixture, a generator script) is expected
// to produce for one contact plan entry. Parsing an external file format
// into this shape is a non-goal here; ContactEntry only exists so this
// package has something concrete to map into sim.Contact.
type ContactEntry struct {
	From     string
	To       string
	FromTime int64
	ToTime   int64
	Datarate int64 // 0 means "use plan default"
	Delay    int64 // 0 means "use plan default"
}

// BuildContactPlan maps already-validated entries into a sim.ContactPlan,
// normalized against the given defaults. It performs no parsing of its
// own; callers are responsible for having validated entries before
// calling this.
func BuildContactPlan(entries []ContactEntry, defaultDatarate, defaultDelay int64) sim.ContactPlan {
	plan := sim.ContactPlan{
		DefaultDatarate: defaultDatarate,
		DefaultDelay:    defaultDelay,
		Contacts:        make([]sim.Contact, len(entries)),
	}
	for i, e := range entries {
		plan.Contacts[i] = sim.Contact{
			From:     sim.NodeID(e.From),
			To:       sim.NodeID(e.To),
			FromTime: e.FromTime,
			ToTime:   e.ToTime,
			Datarate: e.Datarate,
			Delay:    e.Delay,
		}
	}
	return plan.Normalize()
}
