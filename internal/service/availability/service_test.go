package availability

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/qesmsep/noir-reserve/internal/domain"
	"github.com/qesmsep/noir-reserve/internal/schedule"
)

type mockStore struct {
	tables     []domain.Table
	bookings   []schedule.Booking
	fullDay    bool
	weekly     []domain.WeeklyHours
	exceptions []domain.HoursException

	err error
}

func (m *mockStore) BookableTables(_ context.Context, minCapacity int) ([]domain.Table, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Table
	for _, t := range m.tables {
		if t.Bookable && t.Capacity >= minCapacity {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockStore) Overlapping(_ context.Context, start, end time.Time) ([]schedule.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	window := schedule.Interval{Start: start, End: end}
	var out []schedule.Booking
	for _, b := range m.bookings {
		if b.Window.Overlaps(window) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockStore) FullDayBlockExists(_ context.Context, _, _ time.Time) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.fullDay, nil
}

func (m *mockStore) WeeklyHours(_ context.Context, _ time.Weekday) ([]domain.WeeklyHours, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.weekly, nil
}

func (m *mockStore) ExceptionsForDate(_ context.Context, _ time.Time) ([]domain.HoursException, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.exceptions, nil
}

func i64(v int64) *int64 { return &v }

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", "2025-03-06 "+clock)
	if err != nil {
		t.Fatalf("parse %q: %v", clock, err)
	}
	return ts
}

func fixedClock(t *testing.T, clock string) func() time.Time {
	t.Helper()
	ts := at(t, clock)
	return func() time.Time { return ts }
}

// Thursday 2025-03-06, 18:00 to 23:00.
func dinnerHours() []domain.WeeklyHours {
	return []domain.WeeklyHours{{ID: 1, Weekday: time.Thursday, OpenMinute: 18 * 60, CloseMinute: 23 * 60}}
}

func newService(store Store, dur time.Duration) *Service {
	return New(store, nil, Config{
		SlotInterval:      15 * time.Minute,
		SlotDuration:      dur,
		BookingWindowDays: 60,
		Location:          time.UTC,
	})
}

func TestSlotsExcludesConflictingWindows(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
		weekly: dinnerHours(),
		bookings: []schedule.Booking{
			{TableID: i64(1), Window: schedule.Interval{Start: at(t, "19:00"), End: at(t, "20:30")}},
		},
	}
	svc := newService(store, 15*time.Minute).WithClock(fixedClock(t, "09:00"))

	slots, err := svc.Slots(context.Background(), "2025-03-06", 2)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}

	shouldHave := []string{"18:00", "18:45", "20:30", "22:45"}
	shouldNotHave := []string{"19:00", "19:30", "20:15"}

	got := map[string]bool{}
	for _, s := range slots {
		got[s] = true
	}
	for _, s := range shouldHave {
		if !got[s] {
			t.Errorf("missing slot %s, got %v", s, slots)
		}
	}
	for _, s := range shouldNotHave {
		if got[s] {
			t.Errorf("slot %s should be excluded, got %v", s, slots)
		}
	}
}

func TestSlotsLongerDurationExcludesLeadUp(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
		weekly: dinnerHours(),
		bookings: []schedule.Booking{
			{TableID: i64(1), Window: schedule.Interval{Start: at(t, "19:00"), End: at(t, "20:30")}},
		},
	}
	svc := newService(store, 90*time.Minute).WithClock(fixedClock(t, "09:00"))

	slots, err := svc.Slots(context.Background(), "2025-03-06", 2)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}

	got := map[string]bool{}
	for _, s := range slots {
		got[s] = true
	}
	// A 90-minute seating starting 17:45..20:15 would overlap the booking.
	for _, s := range []string{"17:45", "18:00", "18:45", "19:00", "20:15"} {
		if got[s] {
			t.Errorf("slot %s should be excluded, got %v", s, slots)
		}
	}
	for _, s := range []string{"20:30", "21:30"} {
		if !got[s] {
			t.Errorf("missing slot %s, got %v", s, slots)
		}
	}
}

func TestSlotsFullDayBlock(t *testing.T) {
	store := &mockStore{
		tables:  []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
		weekly:  dinnerHours(),
		fullDay: true,
	}
	svc := newService(store, 90*time.Minute).WithClock(fixedClock(t, "09:00"))

	slots, err := svc.Slots(context.Background(), "2025-03-06", 2)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("want no slots on a fully blocked day, got %v", slots)
	}
}

func TestSlotsClosedException(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
		weekly: dinnerHours(),
		exceptions: []domain.HoursException{
			{ID: 1, Closed: true, FullDay: true, Reason: "private buyout"},
		},
	}
	svc := newService(store, 90*time.Minute).WithClock(fixedClock(t, "09:00"))

	slots, err := svc.Slots(context.Background(), "2025-03-06", 2)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("want no slots on an exceptionally closed day, got %v", slots)
	}
}

func TestSlotsPartialClosureSplitsEvening(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
		weekly: dinnerHours(),
		exceptions: []domain.HoursException{
			{ID: 1, Closed: true, OpenMinute: 20 * 60, CloseMinute: 21 * 60},
		},
	}
	svc := newService(store, 15*time.Minute).WithClock(fixedClock(t, "09:00"))

	slots, err := svc.Slots(context.Background(), "2025-03-06", 2)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}

	got := map[string]bool{}
	for _, s := range slots {
		got[s] = true
	}
	for _, s := range []string{"20:15", "20:30", "20:45"} {
		if got[s] {
			t.Errorf("slot %s falls inside the closure, got %v", s, slots)
		}
	}
	for _, s := range []string{"19:45", "20:00", "21:00"} {
		if !got[s] {
			t.Errorf("missing slot %s, got %v", s, slots)
		}
	}
}

func TestSlotsOutsideBookingWindow(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
		weekly: dinnerHours(),
	}
	svc := newService(store, 90*time.Minute).WithClock(fixedClock(t, "09:00"))

	for _, date := range []string{"2024-12-01", "2025-09-01"} {
		slots, err := svc.Slots(context.Background(), date, 2)
		if err != nil {
			t.Fatalf("Slots(%s): %v", date, err)
		}
		if len(slots) != 0 {
			t.Errorf("Slots(%s): want empty outside the booking window, got %v", date, slots)
		}
	}
}

func TestSlotsPartyLargerThanEveryTable(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{
			{ID: 1, Number: 1, Capacity: 2, Bookable: true},
			{ID: 2, Number: 2, Capacity: 4, Bookable: true},
		},
		weekly: dinnerHours(),
	}
	svc := newService(store, 90*time.Minute).WithClock(fixedClock(t, "09:00"))

	slots, err := svc.Slots(context.Background(), "2025-03-06", 6)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("no table seats 6, want empty, got %v", slots)
	}
}

func TestSlotsSkipsPastInstantsToday(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
		weekly: dinnerHours(),
	}
	svc := newService(store, 15*time.Minute).WithClock(fixedClock(t, "19:10"))

	slots, err := svc.Slots(context.Background(), "2025-03-06", 2)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("want remaining evening slots")
	}
	if slots[0] != "19:15" {
		t.Fatalf("first slot = %s, want 19:15", slots[0])
	}
}

func TestSlotsInvalidInput(t *testing.T) {
	svc := newService(&mockStore{}, 90*time.Minute)

	if _, err := svc.Slots(context.Background(), "03/06/2025", 2); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date: err = %v, want ErrInvalidDate", err)
	}
	if _, err := svc.Slots(context.Background(), "2025-03-06", 0); !errors.Is(err, ErrInvalidPartySize) {
		t.Errorf("zero party: err = %v, want ErrInvalidPartySize", err)
	}
}

func TestSlotsStoreErrorFailsClosed(t *testing.T) {
	boom := errors.New("pool exhausted")
	svc := newService(&mockStore{err: boom}, 90*time.Minute).WithClock(fixedClock(t, "09:00"))

	if _, err := svc.Slots(context.Background(), "2025-03-06", 2); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the storage error", err)
	}
}

func TestSlotsNoHoursConfigured(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
	}
	svc := newService(store, 90*time.Minute).WithClock(fixedClock(t, "09:00"))

	slots, err := svc.Slots(context.Background(), "2025-03-06", 2)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if !reflect.DeepEqual(slots, []string{}) {
		t.Fatalf("want empty non-nil slice, got %#v", slots)
	}
}

func TestNextAvailableJumpsPastBookings(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
		bookings: []schedule.Booking{
			{TableID: i64(1), Window: schedule.Interval{Start: at(t, "18:00"), End: at(t, "19:30")}},
			{TableID: i64(1), Window: schedule.Interval{Start: at(t, "19:30"), End: at(t, "21:00")}},
		},
	}
	svc := newService(store, 90*time.Minute)

	next, err := svc.NextAvailable(context.Background(), at(t, "18:00"), 2, 90*time.Minute)
	if err != nil {
		t.Fatalf("NextAvailable: %v", err)
	}
	if next == nil {
		t.Fatal("want a time, got nil")
	}
	if want := at(t, "21:00"); !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}
}

func TestNextAvailablePartyTooLarge(t *testing.T) {
	store := &mockStore{
		tables: []domain.Table{{ID: 1, Number: 1, Capacity: 4, Bookable: true}},
	}
	svc := newService(store, 90*time.Minute)

	if _, err := svc.NextAvailable(context.Background(), at(t, "18:00"), 10, 0); !errors.Is(err, ErrPartyTooLarge) {
		t.Fatalf("err = %v, want ErrPartyTooLarge", err)
	}
}
