package schedule

import "testing"

func TestConflictSet_PartitionsByTable(t *testing.T) {
	cs := NewConflictSet([]Booking{
		{TableID: i64(1), Window: span(t, "18:00", "19:30")},
		{TableID: i64(2), Window: span(t, "18:00", "19:30")},
	})

	window := span(t, "18:30", "20:00")
	if !cs.Blocked(1, window) {
		t.Error("table 1 should be blocked")
	}
	if !cs.Blocked(2, window) {
		t.Error("table 2 should be blocked")
	}
	if cs.Blocked(3, window) {
		t.Error("table 3 has no bookings and should be free")
	}
}

func TestConflictSet_VenueWideBlocksEveryTable(t *testing.T) {
	cs := NewConflictSet([]Booking{
		{TableID: nil, Window: span(t, "17:00", "23:00")},
	})

	window := span(t, "19:00", "20:30")
	for _, id := range []int64{1, 2, 99} {
		if !cs.Blocked(id, window) {
			t.Errorf("table %d should be blocked by the venue-wide event", id)
		}
	}
	if !cs.VenueBlocked(window) {
		t.Error("VenueBlocked() = false, want true")
	}
}

func TestConflictSet_Conflicting(t *testing.T) {
	cs := NewConflictSet([]Booking{
		{TableID: i64(1), Window: span(t, "18:00", "19:30")},
		{TableID: i64(1), Window: span(t, "21:00", "22:30")},
		{TableID: nil, Window: span(t, "12:00", "14:00")},
	})

	hits := cs.Conflicting(1, span(t, "19:00", "20:30"))
	if len(hits) != 1 {
		t.Fatalf("Conflicting() returned %d bookings, want 1", len(hits))
	}
	if hits[0].Window.End != at(t, "19:30") {
		t.Errorf("Conflicting()[0].Window.End = %v, want 19:30", hits[0].Window.End)
	}

	if got := cs.Conflicting(1, span(t, "15:00", "16:30")); len(got) != 0 {
		t.Errorf("Conflicting() = %v, want none outside every span", got)
	}
}
