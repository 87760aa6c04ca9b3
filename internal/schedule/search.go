package schedule

import (
	"context"
	"time"

	"github.com/qesmsep/noir-reserve/internal/domain"
)

const (
	// DefaultStep is the probe grid for forward search and the slot grid for
	// the availability picker.
	DefaultStep = 15 * time.Minute
	// DefaultHorizon bounds how far ahead NextAvailable will scan.
	DefaultHorizon = 7 * 24 * time.Hour
)

type SearchOptions struct {
	Step    time.Duration
	Horizon time.Duration
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	if o.Horizon <= 0 {
		o.Horizon = DefaultHorizon
	}
	return o
}

// NextAvailable finds the earliest instant at or after earliest where some
// candidate table is free for the full duration. For each table the probe
// walks forward from earliest; on a conflict it advances by the step or
// jumps to the end of the nearest conflicting booking starting at or after
// the probe, whichever is later, so it never re-probes inside a known-busy
// span. The minimum feasible probe across all tables wins. Returns nil when
// nothing fits inside the horizon.
//
// The conflict set must cover [earliest, earliest+horizon+duration); this is
// a bounded linear scan, fine at restaurant scale.
func NextAvailable(
	ctx context.Context,
	candidates []domain.Table,
	conflicts ConflictSet,
	earliest time.Time,
	duration time.Duration,
	opts SearchOptions,
) (*time.Time, error) {
	opts = opts.withDefaults()
	limit := earliest.Add(opts.Horizon)

	var best *time.Time
	for _, tbl := range candidates {
		probe := earliest
		for !probe.After(limit) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if best != nil && !probe.Before(*best) {
				break
			}

			window := Interval{Start: probe, End: probe.Add(duration)}
			hits := conflicts.Conflicting(tbl.ID, window)
			if len(hits) == 0 {
				found := probe
				best = &found
				break
			}

			next := probe.Add(opts.Step)
			if jump, ok := nearestConflictEnd(hits, probe); ok && jump.After(next) {
				next = jump
			}
			probe = next
		}
	}
	return best, nil
}

// nearestConflictEnd returns the end of the conflicting booking with the
// smallest start at or after probe.
func nearestConflictEnd(hits []Booking, probe time.Time) (time.Time, bool) {
	var (
		found bool
		start time.Time
		end   time.Time
	)
	for _, b := range hits {
		if b.Window.Start.Before(probe) {
			continue
		}
		if !found || b.Window.Start.Before(start) {
			found = true
			start = b.Window.Start
			end = b.Window.End
		}
	}
	return end, found
}
