package orchestrator

import (
	"github.com/dmitrijs2005/coffeechat/internal/models"
	"github.com/dmitrijs2005/coffeechat/internal/slots"
)

// Status is the phase of the orchestrator's single operation slot.
type Status int

const (
	StatusIdle Status = iota
	StatusConnecting
	StatusFetching
	StatusSending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusFetching:
		return "fetching"
	case StatusSending:
		return "sending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status requires an Acknowledge before the
// next operation may start.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// SendFailure names one recipient whose delivery failed and why.
type SendFailure struct {
	Recipient models.Recipient
	Reason    string
}

// State is the snapshot the poll loop reads each tick. It is always fully
// written: the poller never observes a half-applied transition.
type State struct {
	Status Status
	Op     string // connect, fetch or send
	OpID   string // correlation id of the running or last-finished operation

	// Err is the human-readable reason when Status is StatusFailed.
	Err string

	// Connected is true once an authorized credential is held.
	Connected bool

	// Fetch results. They survive acknowledgment so the send phase can
	// compose from them.
	FreeSlots      []slots.Interval
	Availabilities []string

	// Send results.
	Sent         int
	SendFailures []SendFailure
}

// clone deep-copies the slices so callers cannot alias orchestrator state.
func (s State) clone() State {
	out := s
	if s.FreeSlots != nil {
		out.FreeSlots = append([]slots.Interval(nil), s.FreeSlots...)
	}
	if s.Availabilities != nil {
		out.Availabilities = append([]string(nil), s.Availabilities...)
	}
	if s.SendFailures != nil {
		out.SendFailures = append([]SendFailure(nil), s.SendFailures...)
	}
	return out
}
