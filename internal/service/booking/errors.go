package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWindow    = errors.New("invalid reservation window")
	ErrInvalidPartySize = errors.New("invalid party size")
	ErrPartyTooLarge    = errors.New("party exceeds the largest table")
	ErrNotFound         = errors.New("reservation not found")
)

// NoTableError reports that every suitable table is occupied for the
// requested window. NextAvailable carries the earliest alternative found
// inside the search horizon, nil when there is none.
type NoTableError struct {
	NextAvailable *time.Time
}

func (e *NoTableError) Error() string {
	return "no available table"
}

// RateLimitedError reports that the caller exceeded the reservation rate
// limit.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}
