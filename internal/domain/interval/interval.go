package interval

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

func (iv Interval) Valid() bool {
	return iv.End.After(iv.Start)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether a and b share at least one instant.
// Touching endpoints do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Clip returns the part of iv that falls inside bounds.
func Clip(iv, bounds Interval) (Interval, bool) {
	start := iv.Start
	if bounds.Start.After(start) {
		start = bounds.Start
	}
	end := iv.End
	if bounds.End.Before(end) {
		end = bounds.End
	}

	out := Interval{Start: start, End: end}
	return out, out.Valid()
}

// Merge sorts by start and coalesces intervals that overlap or touch.
// The input slice is not modified.
func Merge(in []Interval) []Interval {
	if len(in) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	out := make([]Interval, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if !next.Start.After(cur.End) {
			if next.End.After(cur.End) {
				cur.End = next.End
			}
			continue
		}
		out = append(out, cur)
		cur = next
	}
	out = append(out, cur)

	return out
}

// Steps cuts iv into consecutive [t, t+step) candidates while t+step <= iv.End.
// A trailing remainder shorter than step is dropped.
func Steps(iv Interval, step time.Duration) []Interval {
	if step <= 0 || !iv.Valid() {
		return nil
	}

	out := make([]Interval, 0, int(iv.Duration()/step))
	for t := iv.Start; !t.Add(step).After(iv.End); t = t.Add(step) {
		out = append(out, Interval{Start: t, End: t.Add(step)})
	}
	return out
}

// AnyOverlaps reports whether iv overlaps any member of others.
func AnyOverlaps(iv Interval, others []Interval) bool {
	for _, o := range others {
		if Overlaps(iv, o) {
			return true
		}
	}
	return false
}
