// Package orchestrator serializes the application's long-running operations
// (connect, fetch, send) so that at most one is ever in flight, and funnels
// their terminal results back to a non-blocking poll loop.
//
// The background goroutine builds one terminal State and sends it on a
// 1-buffered channel; Poll drains at most one message per call and applies
// it under the mutex. StartX calls that lose the race return common.ErrBusy
// and leave state untouched.
package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/coffeechat/internal/calendar"
	"github.com/dmitrijs2005/coffeechat/internal/common"
	"github.com/dmitrijs2005/coffeechat/internal/emailtpl"
	"github.com/dmitrijs2005/coffeechat/internal/logging"
	"github.com/dmitrijs2005/coffeechat/internal/mailer"
	"github.com/dmitrijs2005/coffeechat/internal/models"
	"github.com/dmitrijs2005/coffeechat/internal/slots"
)

// CalendarClient is the calendar capability the orchestrator consumes.
type CalendarClient interface {
	Authorize(ctx context.Context) (calendar.Credential, error)
	BusyIntervals(ctx context.Context, cred calendar.Credential, rng slots.Interval) ([]slots.Interval, error)
}

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Template renders a subject and body for one recipient.
type Template interface {
	Render(vars emailtpl.Vars) (subject, body string, err error)
}

// result is the background goroutine's terminal handoff. cred is non-nil
// only for a successful connect.
type result struct {
	state State
	cred  *calendar.Credential
}

type Orchestrator struct {
	calendar CalendarClient
	sender   Sender
	logger   logging.Logger

	mu      sync.Mutex
	state   State
	cred    *calendar.Credential
	results chan result
}

func New(cal CalendarClient, sender Sender, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		calendar: cal,
		sender:   sender,
		logger:   logger,
		results:  make(chan result, 1),
	}
}

// RestoreCredential seeds a credential saved by a previous run, so the user
// does not have to reconnect every session.
func (o *Orchestrator) RestoreCredential(cred calendar.Credential) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cred = &cred
	o.state.Connected = true
}

// Poll returns the current state snapshot. It never blocks: at most one
// pending terminal result is applied before the snapshot is taken.
func (o *Orchestrator) Poll() State {
	select {
	case r := <-o.results:
		o.mu.Lock()
		if r.cred != nil {
			o.cred = r.cred
		}
		r.state.Connected = o.cred != nil
		o.state = r.state
		o.mu.Unlock()
	default:
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// Acknowledge resets a terminal state to idle so the next operation may
// start. It is a no-op in any other state. Fetch results are kept: the send
// phase composes from them.
func (o *Orchestrator) Acknowledge() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.state.Status.Terminal() {
		return
	}
	o.state.Status = StatusIdle
	o.state.Op = ""
	o.state.OpID = ""
	o.state.Err = ""
	o.state.SendFailures = nil
}

// begin claims the operation slot. It returns the base snapshot for the
// background goroutine, or common.ErrBusy without mutating anything.
func (o *Orchestrator) begin(op string, status Status) (State, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Status != StatusIdle {
		return State{}, fmt.Errorf("%s: %w", op, common.ErrBusy)
	}
	o.state.Status = status
	o.state.Op = op
	o.state.OpID = uuid.NewString()
	o.state.Err = ""
	o.state.SendFailures = nil
	return o.state.clone(), nil
}

// finish hands the terminal snapshot to the poll loop. The channel has room
// for exactly one message because only one operation can be in flight.
func (o *Orchestrator) finish(r result) {
	o.results <- r
}

// StartConnect launches the browser-based authorization flow.
func (o *Orchestrator) StartConnect(ctx context.Context) error {
	base, err := o.begin("connect", StatusConnecting)
	if err != nil {
		return err
	}

	go func() {
		log := o.logger.With("op", "connect", "id", base.OpID)
		cred, err := o.calendar.Authorize(ctx)
		if err != nil {
			log.Warn(ctx, "authorization failed", "error", err)
			base.Status = StatusFailed
			base.Err = err.Error()
			o.finish(result{state: base})
			return
		}
		log.Info(ctx, "calendar connected")
		base.Status = StatusSucceeded
		o.finish(result{state: base, cred: &cred})
	}()
	return nil
}

// StartFetch queries busy intervals and computes free slots. The query is
// validated synchronously; a malformed query is rejected before dispatch.
func (o *Orchestrator) StartFetch(ctx context.Context, q slots.Query) error {
	if err := q.Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	cred := o.cred
	o.mu.Unlock()
	if cred == nil {
		return fmt.Errorf("fetch: %w", common.ErrNotConnected)
	}

	base, err := o.begin("fetch", StatusFetching)
	if err != nil {
		return err
	}

	go func() {
		log := o.logger.With("op", "fetch", "id", base.OpID)
		busy, err := o.calendar.BusyIntervals(ctx, *cred, q.Range)
		if err != nil {
			log.Warn(ctx, "busy lookup failed", "error", err)
			base.Status = StatusFailed
			base.Err = err.Error()
			o.finish(result{state: base})
			return
		}

		free, err := slots.Find(busy, q)
		if err != nil {
			base.Status = StatusFailed
			base.Err = err.Error()
			o.finish(result{state: base})
			return
		}

		loc := q.Location
		if loc == nil {
			loc = q.Range.Start.Location()
		}
		log.Info(ctx, "slots computed", "busy", len(busy), "free", len(free))
		base.Status = StatusSucceeded
		base.FreeSlots = free
		base.Availabilities = slots.Summarize(free, loc)
		o.finish(result{state: base})
	}()
	return nil
}

// StartSend renders and delivers one message per recipient. Outcomes are
// aggregated per recipient; there is no automatic retry, the user decides
// what to do with the failed subset.
func (o *Orchestrator) StartSend(ctx context.Context, tpl Template, senderName string, recipients []models.Recipient) error {
	if tpl == nil {
		return fmt.Errorf("%w: no message template", common.ErrInvalidInput)
	}
	if len(recipients) == 0 {
		return fmt.Errorf("%w: no recipients", common.ErrInvalidInput)
	}
	for _, r := range recipients {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	base, err := o.begin("send", StatusSending)
	if err != nil {
		return err
	}

	go func() {
		log := o.logger.With("op", "send", "id", base.OpID)

		var failures []SendFailure
		sent := 0
		for _, rcpt := range recipients {
			subject, body, err := tpl.Render(emailtpl.Vars{
				RecipientName:  rcpt.Name,
				SenderName:     senderName,
				Availabilities: base.Availabilities,
			})
			if err == nil {
				err = o.sender.Send(ctx, mailer.Message{Recipient: rcpt, Subject: subject, Body: body})
			}
			if err != nil {
				log.Warn(ctx, "delivery failed", "recipient", rcpt.Email, "error", err)
				failures = append(failures, SendFailure{Recipient: rcpt, Reason: err.Error()})
				continue
			}
			log.Debug(ctx, "delivered", "recipient", rcpt.Email)
			sent++
		}

		base.Sent = sent
		base.SendFailures = failures
		if len(failures) > 0 {
			base.Status = StatusFailed
			base.Err = fmt.Sprintf("%d of %d deliveries failed", len(failures), len(recipients))
		} else {
			base.Status = StatusSucceeded
		}
		log.Info(ctx, "send finished", "sent", sent, "failed", len(failures))
		o.finish(result{state: base})
	}()
	return nil
}
