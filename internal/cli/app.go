package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/coffeechat/internal/calendar"
	"github.com/dmitrijs2005/coffeechat/internal/common"
	"github.com/dmitrijs2005/coffeechat/internal/config"
	"github.com/dmitrijs2005/coffeechat/internal/emailtpl"
	"github.com/dmitrijs2005/coffeechat/internal/logging"
	"github.com/dmitrijs2005/coffeechat/internal/mailer"
	"github.com/dmitrijs2005/coffeechat/internal/orchestrator"
	"github.com/dmitrijs2005/coffeechat/internal/secrets"
	"github.com/dmitrijs2005/coffeechat/internal/slots"
	"github.com/dmitrijs2005/coffeechat/internal/snapshot"
)

// App owns the working copy of the persisted snapshot and drives the
// orchestrator on behalf of the REPL.
type App struct {
	config  *config.Config
	logger  logging.Logger
	orch    *orchestrator.Orchestrator
	secrets secrets.Store
	store   *snapshot.Store
	snap    snapshot.Snapshot
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := snapshot.InitDatabase(ctx, c.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("init snapshot database: %w", err)
	}

	store := snapshot.NewStore(db)
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	sec, err := secrets.Open()
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  c,
		logger:  logger,
		secrets: sec,
		store:   store,
		snap:    snap,
		reader:  bufio.NewReader(os.Stdin),
	}

	cal := calendar.New(snap.Calendar.CredentialsPath, sec, logger)
	sender := mailer.NewResolvingSender(a.smtpConfig)
	a.orch = orchestrator.New(cal, sender, logger)

	if cred, ok := cal.Stored(); ok {
		a.orch.RestoreCredential(cred)
		logger.Info(ctx, "restored stored calendar credential")
	}

	a.loadStartupTemplate(ctx)
	return a, nil
}

// loadStartupTemplate fills an empty draft from the configured template file.
// A missing file is fine, the user composes in-session instead.
func (a *App) loadStartupTemplate(ctx context.Context) {
	if a.snap.Message.Subject != "" || a.snap.Message.Body != "" {
		return
	}
	tpl, err := emailtpl.Load(a.config.TemplatePath)
	if err != nil {
		a.logger.Debug(ctx, "no startup template", "path", a.config.TemplatePath, "error", err)
		return
	}
	a.snap.Message.Subject = tpl.SubjectText
	a.snap.Message.Body = tpl.BodyText
	a.logger.Info(ctx, "loaded template", "path", a.config.TemplatePath)
}

// smtpConfig resolves the full SMTP configuration, password included, for a
// single delivery.
func (a *App) smtpConfig() (mailer.SMTPConfig, error) {
	s := a.snap.SMTP
	if s.Host == "" || s.From == "" {
		return mailer.SMTPConfig{}, fmt.Errorf("%w: run 'smtp' to configure host and from address", common.ErrInvalidInput)
	}
	pw, err := a.secrets.Get(secrets.KeySMTPPassword)
	if err != nil {
		if errors.Is(err, common.ErrSecretNotFound) {
			return mailer.SMTPConfig{}, fmt.Errorf("%w: run 'smtp' to set the password", common.ErrSecretNotFound)
		}
		return mailer.SMTPConfig{}, err
	}
	cfg := mailer.SMTPConfig{
		Host:     s.Host,
		Port:     s.Port,
		Username: s.Username,
		Password: string(pw),
		From:     s.From,
	}
	secrets.Wipe(pw)
	return cfg, nil
}

// buildQuery derives the slot query from the calendar settings: from now,
// lookahead days into the future, in the machine's local timezone.
func (a *App) buildQuery() slots.Query {
	cs := a.snap.Calendar
	now := time.Now().In(time.Local)
	return slots.Query{
		Range: slots.Interval{Start: now, End: now.AddDate(0, 0, cs.LookaheadDays)},
		Window: slots.DailyWindow{
			From: time.Duration(cs.DayStartHour) * time.Hour,
			To:   time.Duration(cs.DayEndHour) * time.Hour,
		},
		Buffer:      time.Duration(cs.BufferMinutes) * time.Minute,
		MinDuration: time.Duration(cs.MinSlotMinutes) * time.Minute,
		Location:    time.Local,
	}
}

func (a *App) pollState() orchestrator.State {
	return a.orch.Poll()
}

// await blocks until the running operation reaches a terminal state,
// polling at the configured interval. The orchestrator itself is never
// blocked by this; only the REPL waits.
func (a *App) await(ctx context.Context) orchestrator.State {
	ticker := time.NewTicker(a.config.PollInterval)
	defer ticker.Stop()
	for {
		st := a.orch.Poll()
		if st.Status.Terminal() {
			return st
		}
		select {
		case <-ctx.Done():
			return st
		case <-ticker.C:
		}
	}
}

func (a *App) getStatus() string {
	st := a.orch.Poll()
	s := st.Status.String()
	if st.Connected {
		s += ", connected"
	}
	if n := len(st.FreeSlots); n > 0 {
		s += fmt.Sprintf(", %d slots", n)
	}
	return fmt.Sprintf("(%s)", s)
}

// Run starts the REPL and persists the snapshot when the user leaves.
func (a *App) Run(ctx context.Context) {
	printlnFn("Coffee Chat Helper (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)

	if err := a.store.Save(ctx, a.snap); err != nil {
		a.logger.Error(ctx, "could not save snapshot", "error", err)
	}
}
