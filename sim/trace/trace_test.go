package trace

import "testing"

func TestNew_ReturnsNilWhenDisabled(t *testing.T) {
	if tr := New(Config{Level: LevelNone}); tr != nil {
		t.Errorf("expected nil trace for LevelNone, got %+v", tr)
	}
	if tr := New(Config{}); tr != nil {
		t.Errorf("expected nil trace for empty level, got %+v", tr)
	}
}

func TestNew_ReturnsUsableTraceWhenEnabled(t *testing.T) {
	tr := New(Config{Level: LevelDecisions})
	if tr == nil {
		t.Fatal("expected non-nil trace")
	}
	tr.RecordRouting(RoutingRecord{PacketID: 1, Node: "a", Found: true})
	tr.RecordDelivery(DeliveryRecord{PacketID: 1, Hops: 2})

	if len(tr.Routings) != 1 {
		t.Errorf("got %d routing records, want 1", len(tr.Routings))
	}
	if len(tr.Deliveries) != 1 {
		t.Errorf("got %d delivery records, want 1", len(tr.Deliveries))
	}
}

func TestDecisionTrace_NilReceiverRecordingIsSafe(t *testing.T) {
	var tr *DecisionTrace
	tr.RecordRouting(RoutingRecord{})
	tr.RecordDelivery(DeliveryRecord{})
}

func TestIsValid(t *testing.T) {
	cases := map[string]bool{
		"":          true,
		"none":      true,
		"decisions": true,
		"bogus":     false,
	}
	for level, want := range cases {
		if got := IsValid(level); got != want {
			t.Errorf("IsValid(%q) = %v, want %v", level, got, want)
		}
	}
}
