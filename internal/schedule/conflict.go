package schedule

// Booking is an occupied span as the scheduling core perceives it: either a
// reservation or a block event. TableID == nil is a venue-wide block that
// conflicts with every table. Cancelled rows never become Bookings; the
// repository filters them out before the core sees them.
type Booking struct {
	TableID *int64
	Window  Interval
}

// ConflictSet holds every booking that could conflict within some fetched
// range, partitioned per table with a separate bucket for venue-wide blocks.
// It is built once per availability computation from a single batched query
// and then consulted in memory.
type ConflictSet struct {
	byTable map[int64][]Booking
	venue   []Booking
}

func NewConflictSet(bookings []Booking) ConflictSet {
	cs := ConflictSet{byTable: make(map[int64][]Booking)}
	for _, b := range bookings {
		if b.TableID == nil {
			cs.venue = append(cs.venue, b)
			continue
		}
		cs.byTable[*b.TableID] = append(cs.byTable[*b.TableID], b)
	}
	return cs
}

// Conflicting returns every booking that overlaps window on the given table,
// including venue-wide blocks.
func (cs ConflictSet) Conflicting(tableID int64, window Interval) []Booking {
	var out []Booking
	for _, b := range cs.venue {
		if b.Window.Overlaps(window) {
			out = append(out, b)
		}
	}
	for _, b := range cs.byTable[tableID] {
		if b.Window.Overlaps(window) {
			out = append(out, b)
		}
	}
	return out
}

// Blocked reports whether the table has any conflict within window.
func (cs ConflictSet) Blocked(tableID int64, window Interval) bool {
	for _, b := range cs.venue {
		if b.Window.Overlaps(window) {
			return true
		}
	}
	for _, b := range cs.byTable[tableID] {
		if b.Window.Overlaps(window) {
			return true
		}
	}
	return false
}

// VenueBlocked reports whether a venue-wide block overlaps window.
func (cs ConflictSet) VenueBlocked(window Interval) bool {
	for _, b := range cs.venue {
		if b.Window.Overlaps(window) {
			return true
		}
	}
	return false
}
