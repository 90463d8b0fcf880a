package sim

import "errors"

// Pre-run and kernel error sentinels. Use errors.Is to test for these;
// callers that construct a ContactPlan or drive a Simulator from
// untrusted input should check against this set before calling Run.
var (
	// ErrInvalidContact is returned when a plan-entry contact violates
	// one of its invariants (from_time < to_time, datarate > 0, delay > 0).
	ErrInvalidContact = errors.New("sim: invalid contact")

	// ErrDuplicateGenerator is the value Simulator.RegisterGenerator
	// panics with when the same generator value is registered more than
	// once.
	ErrDuplicateGenerator = errors.New("sim: duplicate generator registration")

	// ErrScheduleInPast is returned by Simulator.Schedule when asked to
	// enqueue an event strictly before the current simulation clock.
	ErrScheduleInPast = errors.New("sim: event scheduled in the past")
)

// invariantViolation panics with a descriptive diagnostic. It exists so
// that the small number of "this should be structurally impossible"
// call sites are grep-able and consistently worded.
func invariantViolation(msg string) {
	panic("sim: invariant violation: " + msg)
}
