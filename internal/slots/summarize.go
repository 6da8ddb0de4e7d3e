package slots

import (
	"fmt"
	"sort"
	"time"
)

// Summarize formats free slots into human-readable availability lines,
// one line per slot, grouped chronologically by local day:
//
//	Monday Jan 5: 10am–12:30pm
//
// Contiguous slots on the same day are collapsed into one line. The result
// is used both for display and as the availabilities template variable.
func Summarize(intervals []Interval, loc *time.Location) []string {
	byDay := make(map[string][]Interval)
	var days []string
	for _, iv := range intervals {
		key := iv.Start.In(loc).Format("2006-01-02")
		if _, ok := byDay[key]; !ok {
			days = append(days, key)
		}
		byDay[key] = append(byDay[key], iv)
	}
	sort.Strings(days)

	var out []string
	for _, key := range days {
		daySlots := byDay[key]
		sort.Slice(daySlots, func(i, j int) bool {
			return daySlots[i].Start.Before(daySlots[j].Start)
		})

		merged := make([]Interval, 0, len(daySlots))
		for _, iv := range daySlots {
			n := len(merged)
			if n > 0 && iv.Start.Equal(merged[n-1].End) {
				merged[n-1].End = iv.End
				continue
			}
			merged = append(merged, iv)
		}

		for _, iv := range merged {
			s := iv.Start.In(loc)
			e := iv.End.In(loc)
			out = append(out, fmt.Sprintf("%s: %s–%s",
				s.Format("Monday Jan 2"), clockLabel(s), clockLabel(e)))
		}
	}
	return out
}

// clockLabel renders "3pm" on the hour and "3:04pm" otherwise.
func clockLabel(t time.Time) string {
	if t.Minute() == 0 {
		return t.Format("3pm")
	}
	return t.Format("3:04pm")
}
