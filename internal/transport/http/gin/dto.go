package httpgin

import "time"

type CreateReservationRequest struct {
	PartySize  int    `json:"party_size" binding:"required,gt=0"`
	StartsAt   string `json:"starts_at" binding:"required"`
	EndsAt     string `json:"ends_at"`
	GuestName  string `json:"guest_name" binding:"required"`
	GuestPhone string `json:"guest_phone"`
	GuestEmail string `json:"guest_email"`
	Notes      string `json:"notes"`
	Hold       bool   `json:"hold"`
}

type RescheduleReservationRequest struct {
	StartsAt  string `json:"starts_at" binding:"required"`
	EndsAt    string `json:"ends_at"`
	PartySize int    `json:"party_size"`
}

type ReservationResponse struct {
	ID         string `json:"id"`
	TableID    int64  `json:"table_id"`
	PartySize  int    `json:"party_size"`
	StartsAt   string `json:"starts_at"`
	EndsAt     string `json:"ends_at"`
	Status     string `json:"status"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone,omitempty"`
	GuestEmail string `json:"guest_email,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type NextAvailableResponse struct {
	NextAvailableTime *string `json:"next_available_time"`
}

type NoTableResponse struct {
	Error             string  `json:"error"`
	NextAvailableTime *string `json:"next_available_time"`
}

type CreateTableRequest struct {
	Number   int   `json:"number" binding:"required,gt=0"`
	Capacity int   `json:"capacity" binding:"required,gt=0"`
	Bookable *bool `json:"bookable"`
}

type CreateTableResponse struct {
	TableID int64 `json:"table_id"`
}

type CreateBlockEventRequest struct {
	TableID  *int64 `json:"table_id"`
	Title    string `json:"title" binding:"required"`
	StartsAt string `json:"starts_at" binding:"required"`
	EndsAt   string `json:"ends_at" binding:"required"`
	FullDay  bool   `json:"full_day"`
}

type CreateBlockEventResponse struct {
	EventID int64 `json:"event_id"`
}

type HoursRangeInput struct {
	Open  string `json:"open" binding:"required"`
	Close string `json:"close" binding:"required"`
}

type SetWeeklyHoursRequest struct {
	Weekday int               `json:"weekday" binding:"min=0,max=6"`
	Ranges  []HoursRangeInput `json:"ranges" binding:"required,min=1,dive"`
}

type AddHoursExceptionRequest struct {
	Date    string `json:"date" binding:"required"`
	Closed  bool   `json:"closed"`
	FullDay bool   `json:"full_day"`
	Open    string `json:"open"`
	Close   string `json:"close"`
	Reason  string `json:"reason"`
}

type HoursExceptionResponse struct {
	ExceptionID int64 `json:"exception_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
