package schedule

import (
	"testing"
	"time"
)

func TestSubtractClosures(t *testing.T) {
	tests := []struct {
		name     string
		ranges   []Interval
		closures []Interval
		want     []Interval
	}{
		{
			name:   "no closures",
			ranges: []Interval{span(t, "18:00", "23:00")},
			want:   []Interval{span(t, "18:00", "23:00")},
		},
		{
			name:     "closure inside splits range",
			ranges:   []Interval{span(t, "18:00", "23:00")},
			closures: []Interval{span(t, "20:00", "21:00")},
			want:     []Interval{span(t, "18:00", "20:00"), span(t, "21:00", "23:00")},
		},
		{
			name:     "closure covering range removes it",
			ranges:   []Interval{span(t, "18:00", "23:00")},
			closures: []Interval{span(t, "17:00", "23:30")},
			want:     nil,
		},
		{
			name:     "closure trims leading edge",
			ranges:   []Interval{span(t, "18:00", "23:00")},
			closures: []Interval{span(t, "17:00", "19:00")},
			want:     []Interval{span(t, "19:00", "23:00")},
		},
		{
			name:     "closure trims trailing edge",
			ranges:   []Interval{span(t, "18:00", "23:00")},
			closures: []Interval{span(t, "22:00", "23:30")},
			want:     []Interval{span(t, "18:00", "22:00")},
		},
		{
			name:     "disjoint closure leaves range alone",
			ranges:   []Interval{span(t, "18:00", "23:00")},
			closures: []Interval{span(t, "11:00", "14:00")},
			want:     []Interval{span(t, "18:00", "23:00")},
		},
		{
			name:     "multiple closures on multiple ranges",
			ranges:   []Interval{span(t, "11:00", "14:00"), span(t, "18:00", "23:00")},
			closures: []Interval{span(t, "12:00", "12:30"), span(t, "18:00", "19:00")},
			want: []Interval{
				span(t, "11:00", "12:00"),
				span(t, "12:30", "14:00"),
				span(t, "19:00", "23:00"),
			},
		},
		{
			name:     "invalid closure ignored",
			ranges:   []Interval{span(t, "18:00", "23:00")},
			closures: []Interval{{Start: at(t, "21:00"), End: at(t, "20:00")}},
			want:     []Interval{span(t, "18:00", "23:00")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubtractClosures(tt.ranges, tt.closures)
			if len(got) != len(tt.want) {
				t.Fatalf("SubtractClosures() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !got[i].Start.Equal(tt.want[i].Start) || !got[i].End.Equal(tt.want[i].End) {
					t.Errorf("SubtractClosures()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAlignedSlots_InclusiveEndpoints(t *testing.T) {
	got := AlignedSlots([]Interval{span(t, "18:00", "19:00")}, 15*time.Minute)

	want := []string{"18:00", "18:15", "18:30", "18:45", "19:00"}
	if len(got) != len(want) {
		t.Fatalf("AlignedSlots() returned %d slots, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Format("15:04") != w {
			t.Errorf("AlignedSlots()[%d] = %s, want %s", i, got[i].Format("15:04"), w)
		}
	}
}

func TestAlignedSlots_QuantizedToGrid(t *testing.T) {
	// An off-grid open (18:05) snaps up to the next boundary.
	got := AlignedSlots([]Interval{span(t, "18:05", "18:50")}, 15*time.Minute)

	want := []string{"18:15", "18:30", "18:45"}
	if len(got) != len(want) {
		t.Fatalf("AlignedSlots() = %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i].Format("15:04") != w {
			t.Errorf("AlignedSlots()[%d] = %s, want %s", i, got[i].Format("15:04"), w)
		}
		if got[i].Minute()%15 != 0 {
			t.Errorf("AlignedSlots()[%d] = %s not on the 15-minute grid", i, got[i].Format("15:04"))
		}
	}
}

func TestAlignedSlots_EmptyAndInvalidRanges(t *testing.T) {
	if got := AlignedSlots(nil, 15*time.Minute); len(got) != 0 {
		t.Errorf("AlignedSlots(nil) = %v, want empty", got)
	}
	bad := []Interval{{Start: at(t, "19:00"), End: at(t, "18:00")}}
	if got := AlignedSlots(bad, 15*time.Minute); len(got) != 0 {
		t.Errorf("AlignedSlots(inverted) = %v, want empty", got)
	}
}
