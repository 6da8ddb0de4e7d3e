package slots

import (
	"sort"
	"time"
)

// Find computes the free slots inside q.Range given the busy intervals.
//
// Steps: expand each busy interval by q.Buffer on both sides and clamp it to
// the query range, merge the result into a minimal disjoint set, subtract it
// from the range, split the remaining gaps at local day boundaries, clip each
// day-local piece to the daily window, and drop pieces shorter than
// q.MinDuration. The result is chronological and mutually disjoint;
// zero-width pieces are never emitted.
//
// busy may be unsorted and may contain overlapping or malformed entries;
// malformed entries (Start >= End) are ignored. Find never mutates busy.
func Find(busy []Interval, q Query) ([]Interval, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	merged := mergeBusy(busy, q.Range, q.Buffer)
	free := subtract(merged, q.Range)
	free = splitAtMidnight(free, q.location())
	free = clipToWindow(free, q.Window, q.location())

	out := make([]Interval, 0, len(free))
	for _, iv := range free {
		if iv.Duration() >= q.MinDuration && iv.Duration() > 0 {
			out = append(out, iv)
		}
	}
	return out, nil
}

// mergeBusy expands every busy interval by buffer on both sides, clamps it to
// rng, sorts, and merges overlapping or adjacent intervals into a minimal
// disjoint covering set.
func mergeBusy(busy []Interval, rng Interval, buffer time.Duration) []Interval {
	expanded := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if !b.IsValid() {
			continue
		}
		iv := Interval{Start: b.Start.Add(-buffer), End: b.End.Add(buffer)}
		// Clamp to the query range so buffer expansion can never push an
		// interval outside it or produce a negative length.
		if iv.Start.Before(rng.Start) {
			iv.Start = rng.Start
		}
		if iv.End.After(rng.End) {
			iv.End = rng.End
		}
		if iv.Start.Before(iv.End) {
			expanded = append(expanded, iv)
		}
	}

	sort.Slice(expanded, func(i, j int) bool {
		return expanded[i].Start.Before(expanded[j].Start)
	})

	merged := make([]Interval, 0, len(expanded))
	for _, iv := range expanded {
		n := len(merged)
		// Adjacent intervals merge too: next start <= current end.
		if n > 0 && !iv.Start.After(merged[n-1].End) {
			if iv.End.After(merged[n-1].End) {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// subtract walks the sorted disjoint busy set once and emits the gaps left
// inside rng.
func subtract(busy []Interval, rng Interval) []Interval {
	free := make([]Interval, 0, len(busy)+1)
	cursor := rng.Start

	for _, b := range busy {
		if cursor.Before(b.Start) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(rng.End) {
			return free
		}
	}

	if cursor.Before(rng.End) {
		free = append(free, Interval{Start: cursor, End: rng.End})
	}
	return free
}

// splitAtMidnight cuts every interval at local midnight so that each piece
// lies within a single calendar day in loc.
func splitAtMidnight(intervals []Interval, loc *time.Location) []Interval {
	out := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		cur := iv.Start
		for {
			midnight := nextMidnight(cur, loc)
			if !midnight.Before(iv.End) {
				break
			}
			out = append(out, Interval{Start: cur, End: midnight})
			cur = midnight
		}
		if cur.Before(iv.End) {
			out = append(out, Interval{Start: cur, End: iv.End})
		}
	}
	return out
}

func nextMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// clipToWindow intersects each day-local interval with the daily window of
// its own day. Empty intersections are discarded.
func clipToWindow(intervals []Interval, w DailyWindow, loc *time.Location) []Interval {
	out := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		y, m, d := iv.Start.In(loc).Date()
		dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
		winStart := dayStart.Add(w.From)
		winEnd := dayStart.Add(w.To)

		start := iv.Start
		if start.Before(winStart) {
			start = winStart
		}
		end := iv.End
		if end.After(winEnd) {
			end = winEnd
		}
		if start.Before(end) {
			out = append(out, Interval{Start: start, End: end})
		}
	}
	return out
}
