package schedule

import (
	"sort"

	"github.com/qesmsep/noir-reserve/internal/domain"
)

// Candidates filters tables down to bookable ones that seat at least
// partySize, ordered ascending by capacity so the greedy smallest-fit
// assignment conserves larger tables for bigger parties. Ties keep catalog
// order (id) — deterministic but otherwise arbitrary.
//
// An empty result means no table in the room can seat the party, which
// callers report differently from "every table is taken".
func Candidates(tables []domain.Table, partySize int) []domain.Table {
	var out []domain.Table
	for _, t := range tables {
		if t.Bookable && t.Capacity >= partySize {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AssignTable returns the first candidate with no conflict inside window, or
// nil when every candidate is blocked. Candidates must already be ordered by
// Candidates; the result is deterministic for unchanged inputs.
func AssignTable(candidates []domain.Table, conflicts ConflictSet, window Interval) *domain.Table {
	for i := range candidates {
		if !conflicts.Blocked(candidates[i].ID, window) {
			return &candidates[i]
		}
	}
	return nil
}
