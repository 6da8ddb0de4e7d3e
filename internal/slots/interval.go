// Package slots computes proposable free meeting slots from a list of busy
// calendar intervals. It is pure: no I/O, no clocks, no concurrency.
package slots

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/coffeechat/internal/common"
)

// Interval is a half-open time range [Start, End). Timestamps are
// timezone-aware instants; an interval is well-formed when Start < End.
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid reports whether the interval is well-formed.
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// day is the length of one calendar day for daily-window arithmetic.
const day = 24 * time.Hour

// MaxBuffer bounds the symmetric padding applied around busy intervals.
const MaxBuffer = 120 * time.Minute

// DailyWindow is a recurring time-of-day range, expressed as offsets from
// local midnight. It applies independently to every calendar day inside a
// query range; e.g. {9h, 17h} proposes slots between 09:00 and 17:00 only.
// Well-formed when 0 <= From < To <= 24h. From == To is invalid input, not
// an empty window.
type DailyWindow struct {
	From time.Duration
	To   time.Duration
}

func (w DailyWindow) validate() error {
	if w.From < 0 || w.To > day || w.From >= w.To {
		return fmt.Errorf("%w: daily window %v-%v", common.ErrInvalidInput, w.From, w.To)
	}
	return nil
}

// Query describes one free-slot computation. It is produced fresh per fetch
// and is not persisted.
type Query struct {
	// Range is the absolute time window to search, e.g. now..now+14d.
	Range Interval

	// Window restricts results to a time-of-day range on each day.
	Window DailyWindow

	// Buffer expands every busy interval symmetrically before subtraction,
	// so meetings are never proposed back-to-back. 0..MaxBuffer.
	Buffer time.Duration

	// MinDuration drops any resulting slot shorter than this.
	MinDuration time.Duration

	// Location resolves day boundaries for the daily window. When nil, the
	// location of Range.Start is used.
	Location *time.Location
}

// Validate rejects malformed queries before any computation happens.
// All violations wrap common.ErrInvalidInput.
func (q Query) Validate() error {
	if !q.Range.IsValid() {
		return fmt.Errorf("%w: query range start %v is not before end %v",
			common.ErrInvalidInput, q.Range.Start, q.Range.End)
	}
	if err := q.Window.validate(); err != nil {
		return err
	}
	if q.Buffer < 0 || q.Buffer > MaxBuffer {
		return fmt.Errorf("%w: buffer %v out of range 0-%v", common.ErrInvalidInput, q.Buffer, MaxBuffer)
	}
	if q.MinDuration < 0 {
		return fmt.Errorf("%w: negative min duration %v", common.ErrInvalidInput, q.MinDuration)
	}
	return nil
}

func (q Query) location() *time.Location {
	if q.Location != nil {
		return q.Location
	}
	return q.Range.Start.Location()
}
