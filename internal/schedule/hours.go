package schedule

import "time"

// SubtractClosures removes closure spans from a set of open ranges. A closure
// fully inside a range splits it into before/after pieces; a closure covering
// a range removes it entirely. Output keeps the input order of surviving
// pieces and never contains zero-length ranges.
func SubtractClosures(ranges []Interval, closures []Interval) []Interval {
	out := ranges
	for _, c := range closures {
		if !c.Valid() {
			continue
		}
		var next []Interval
		for _, r := range out {
			if !r.Overlaps(c) {
				next = append(next, r)
				continue
			}
			if c.Start.After(r.Start) {
				next = append(next, Interval{Start: r.Start, End: c.Start})
			}
			if c.End.Before(r.End) {
				next = append(next, Interval{Start: c.End, End: r.End})
			}
		}
		out = next
	}
	return out
}

// AlignedSlots enumerates step-aligned instants within the ranges, inclusive
// of both endpoints of each range. Alignment is relative to local midnight of
// the instant's day, so a range opening at 18:00 yields 18:00, 18:15, ...
// Instants are deduplicated and returned in ascending order assuming the
// input ranges are ordered and disjoint.
func AlignedSlots(ranges []Interval, step time.Duration) []time.Time {
	if step <= 0 {
		step = DefaultStep
	}
	var out []time.Time
	for _, r := range ranges {
		if !r.Valid() {
			continue
		}
		t := alignUp(r.Start, step)
		for !t.After(r.End) {
			if len(out) == 0 || t.After(out[len(out)-1]) {
				out = append(out, t)
			}
			t = t.Add(step)
		}
	}
	return out
}

// alignUp rounds t up to the next step boundary measured from local midnight.
func alignUp(t time.Time, step time.Duration) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := t.Sub(midnight)
	aligned := offset / step * step
	if aligned < offset {
		aligned += step
	}
	return midnight.Add(aligned)
}
