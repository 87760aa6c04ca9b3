package availability

import "errors"

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidPartySize = errors.New("invalid party size")
	// ErrPartyTooLarge means no table in the catalog can seat the party,
	// as opposed to every fitting table being taken.
	ErrPartyTooLarge = errors.New("party exceeds every table capacity")
)
