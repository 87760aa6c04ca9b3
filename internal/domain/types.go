package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusNoShow    ReservationStatus = "no_show"
)

// Table is a catalog row. Capacity is the only attribute the assignment
// algorithm reasons about; Number is what the floor staff calls it.
type Table struct {
	ID       int64
	Number   int
	Capacity int
	Bookable bool
}

type Reservation struct {
	ID         uuid.UUID
	TableID    int64
	PartySize  int
	StartsAt   time.Time
	EndsAt     time.Time
	Status     ReservationStatus
	GuestName  string
	GuestPhone string
	GuestEmail string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BlockEvent is a blackout span: a private event, buyout or maintenance
// window. TableID == nil means the block applies to every table.
type BlockEvent struct {
	ID       int64
	TableID  *int64
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	FullDay  bool
}

// WeeklyHours is one base open range for a weekday, in minutes since local
// midnight. Ranges stay within the day: CloseMinute is at most 1440.
type WeeklyHours struct {
	ID          int64
	Weekday     time.Weekday
	OpenMinute  int
	CloseMinute int
}

// HoursException adjusts hours for one calendar date. Closed exceptions
// subtract a sub-range from the base hours (the whole day when FullDay is
// set). Non-closed exceptions record exceptional opens; the slot picker does
// not apply them.
type HoursException struct {
	ID          int64
	Date        time.Time
	Closed      bool
	FullDay     bool
	OpenMinute  int
	CloseMinute int
	Reason      string
}
