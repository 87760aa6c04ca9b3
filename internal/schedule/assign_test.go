package schedule

import (
	"testing"

	"github.com/qesmsep/noir-reserve/internal/domain"
)

func i64(v int64) *int64 { return &v }

func testTables() []domain.Table {
	return []domain.Table{
		{ID: 1, Number: 1, Capacity: 8, Bookable: true},
		{ID: 2, Number: 2, Capacity: 2, Bookable: true},
		{ID: 3, Number: 3, Capacity: 4, Bookable: true},
		{ID: 4, Number: 4, Capacity: 4, Bookable: true},
		{ID: 5, Number: 5, Capacity: 6, Bookable: false},
	}
}

func TestCandidates_OrderAndFiltering(t *testing.T) {
	got := Candidates(testTables(), 3)

	wantIDs := []int64{3, 4, 1}
	if len(got) != len(wantIDs) {
		t.Fatalf("Candidates() returned %d tables, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("Candidates()[%d].ID = %d, want %d", i, got[i].ID, id)
		}
		if got[i].Capacity < 3 {
			t.Errorf("Candidates()[%d] capacity %d below party size", i, got[i].Capacity)
		}
	}
}

func TestCandidates_PartyTooLarge(t *testing.T) {
	if got := Candidates(testTables(), 10); len(got) != 0 {
		t.Errorf("Candidates() = %v, want empty for party bigger than every table", got)
	}
}

func TestCandidates_ExcludesUnbookable(t *testing.T) {
	for _, c := range Candidates(testTables(), 1) {
		if !c.Bookable {
			t.Errorf("Candidates() included unbookable table %d", c.ID)
		}
	}
}

func TestAssignTable_SmallestFit(t *testing.T) {
	window := span(t, "19:00", "20:30")
	cands := Candidates(testTables(), 2)
	cs := NewConflictSet(nil)

	got := AssignTable(cands, cs, window)
	if got == nil {
		t.Fatal("AssignTable() = nil, want the smallest free table")
	}
	if got.ID != 2 {
		t.Errorf("AssignTable().ID = %d, want 2 (capacity 2)", got.ID)
	}
}

func TestAssignTable_SkipsConflictedTables(t *testing.T) {
	window := span(t, "19:00", "20:30")
	cands := Candidates(testTables(), 2)
	cs := NewConflictSet([]Booking{
		{TableID: i64(2), Window: span(t, "18:30", "20:00")},
	})

	got := AssignTable(cands, cs, window)
	if got == nil {
		t.Fatal("AssignTable() = nil, want next free table")
	}
	if got.ID != 3 {
		t.Errorf("AssignTable().ID = %d, want 3", got.ID)
	}
}

func TestAssignTable_BackToBackSeatingsDoNotConflict(t *testing.T) {
	cands := Candidates(testTables(), 2)
	cs := NewConflictSet([]Booking{
		{TableID: i64(2), Window: span(t, "18:00", "19:30")},
	})

	got := AssignTable(cands, cs, span(t, "19:30", "21:00"))
	if got == nil || got.ID != 2 {
		t.Errorf("AssignTable() = %v, want table 2: adjacent bookings share only a boundary", got)
	}
}

func TestAssignTable_VenueWideBlock(t *testing.T) {
	cands := Candidates(testTables(), 2)
	cs := NewConflictSet([]Booking{
		{TableID: nil, Window: span(t, "00:00", "23:45")},
	})

	if got := AssignTable(cands, cs, span(t, "19:00", "20:30")); got != nil {
		t.Errorf("AssignTable() = table %d, want nil during a venue-wide block", got.ID)
	}
}

func TestAssignTable_Deterministic(t *testing.T) {
	window := span(t, "19:00", "20:30")
	cands := Candidates(testTables(), 2)
	cs := NewConflictSet([]Booking{
		{TableID: i64(2), Window: span(t, "19:00", "20:00")},
	})

	first := AssignTable(cands, cs, window)
	for i := 0; i < 10; i++ {
		again := AssignTable(cands, cs, window)
		if again == nil || first == nil || again.ID != first.ID {
			t.Fatalf("AssignTable() not deterministic: first %v, run %d got %v", first, i, again)
		}
	}
}

func TestAssignTable_NilImpliesEveryCandidateBlocked(t *testing.T) {
	window := span(t, "19:00", "20:30")
	cands := Candidates(testTables(), 2)
	cs := NewConflictSet([]Booking{
		{TableID: i64(1), Window: span(t, "18:00", "21:00")},
		{TableID: i64(2), Window: span(t, "19:00", "19:45")},
		{TableID: i64(3), Window: span(t, "20:00", "22:00")},
		{TableID: i64(4), Window: span(t, "17:00", "19:15")},
	})

	if got := AssignTable(cands, cs, window); got != nil {
		t.Fatalf("AssignTable() = table %d, want nil", got.ID)
	}
	for _, c := range cands {
		if !cs.Blocked(c.ID, window) {
			t.Errorf("table %d unblocked yet assignment failed", c.ID)
		}
	}
}
