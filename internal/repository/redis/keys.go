package redis

import "fmt"

const ns = "noirres:v1"

// KeyDaySlots caches the open-slot list for one date and party size.
// Dates are "2006-01-02" strings in the venue timezone.
func KeyDaySlots(date string, partySize int) string {
	return fmt.Sprintf("%s:slots:%s:%d", ns, date, partySize)
}

func KeyDaySheet(date string) string {
	return fmt.Sprintf("%s:daysheet:%s", ns, date)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelAvailabilityChanged() string {
	return ns + ":availability:changed"
}
