package sim

import "testing"

func TestContactID_EncodesFromToTime(t *testing.T) {
	id := contactID("a", "b", 500)
	if id != "a->b@500" {
		t.Errorf("got %q, want %q", id, "a->b@500")
	}
}

func TestPacket_Less_OrdersByID(t *testing.T) {
	p1 := &Packet{ID: 1}
	p2 := &Packet{ID: 2}
	if !p1.Less(p2) {
		t.Errorf("expected packet 1 to sort before packet 2")
	}
	if p2.Less(p1) {
		t.Errorf("expected packet 2 to not sort before packet 1")
	}
}

func TestPacketIDAllocator_Monotonic(t *testing.T) {
	var a packetIDAllocator
	first := a.allocate()
	second := a.allocate()
	third := a.allocate()
	if !(first < second && second < third) {
		t.Errorf("ids not monotonic: %d %d %d", first, second, third)
	}
}
