// Package trace provides decision-trace recording for post-run routing
// analysis. It has no dependency on the sim package; it stores pure data.
package trace

// Level controls the verbosity of decision tracing.
type Level string

const (
	// LevelNone disables tracing. A Simulator with tracing disabled keeps
	// a nil *DecisionTrace, so recording a decision costs a single nil
	// check, never an allocation.
	LevelNone Level = "none"
	// LevelDecisions captures every routing decision and delivery.
	LevelDecisions Level = "decisions"
)

var validLevels = map[Level]bool{
	LevelNone:      true,
	LevelDecisions: true,
	"":             true,
}

// IsValid reports whether level is a recognized trace level string.
func IsValid(level string) bool {
	return validLevels[Level(level)]
}

// Config controls trace collection behavior for a run.
type Config struct {
	Level Level
}

// DecisionTrace collects routing decisions and deliveries during a run.
type DecisionTrace struct {
	Config     Config
	Routings   []RoutingRecord
	Deliveries []DeliveryRecord
}

// New creates a DecisionTrace ready for recording, or nil if cfg.Level is
// LevelNone (the zero-overhead-when-disabled path).
func New(cfg Config) *DecisionTrace {
	if cfg.Level == LevelNone || cfg.Level == "" {
		return nil
	}
	return &DecisionTrace{
		Config:     cfg,
		Routings:   make([]RoutingRecord, 0),
		Deliveries: make([]DeliveryRecord, 0),
	}
}

// RecordRouting appends a routing decision record. Safe to call on a nil
// receiver, so callers never need to guard with a level check of their own.
func (t *DecisionTrace) RecordRouting(r RoutingRecord) {
	if t == nil {
		return
	}
	t.Routings = append(t.Routings, r)
}

// RecordDelivery appends a delivery record. Safe to call on a nil receiver.
func (t *DecisionTrace) RecordDelivery(r DeliveryRecord) {
	if t == nil {
		return
	}
	t.Deliveries = append(t.Deliveries, r)
}
