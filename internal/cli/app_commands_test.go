package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/coffeechat/internal/calendar"
	"github.com/dmitrijs2005/coffeechat/internal/common"
	"github.com/dmitrijs2005/coffeechat/internal/config"
	"github.com/dmitrijs2005/coffeechat/internal/logging"
	"github.com/dmitrijs2005/coffeechat/internal/mailer"
	"github.com/dmitrijs2005/coffeechat/internal/models"
	"github.com/dmitrijs2005/coffeechat/internal/orchestrator"
	"github.com/dmitrijs2005/coffeechat/internal/secrets"
	"github.com/dmitrijs2005/coffeechat/internal/slots"
	"github.com/dmitrijs2005/coffeechat/internal/snapshot"
)

type stubCalendar struct {
	busy []slots.Interval
}

func (s *stubCalendar) Authorize(ctx context.Context) (calendar.Credential, error) {
	return calendar.Credential{Service: "coffeechat", Account: "google/oauth_token"}, nil
}

func (s *stubCalendar) BusyIntervals(ctx context.Context, cred calendar.Credential, rng slots.Interval) ([]slots.Interval, error) {
	return s.busy, nil
}

type stubSender struct {
	sent int
}

func (s *stubSender) Send(ctx context.Context, msg mailer.Message) error {
	s.sent++
	return nil
}

// newTestApp builds an App around fakes and a scripted stdin.
func newTestApp(t *testing.T, input string, cal orchestrator.CalendarClient, sender orchestrator.Sender) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PollInterval = time.Millisecond

	logger := logging.Discard()
	return &App{
		config:  cfg,
		logger:  logger,
		secrets: secrets.NewWithKeyring(keyring.NewArrayKeyring(nil)),
		snap:    snapshot.Default(),
		reader:  bufio.NewReader(strings.NewReader(input)),
		orch:    orchestrator.New(cal, sender, logger),
	}
}

func mustRecipient(name, email string) models.Recipient {
	return models.Recipient{Name: name, Email: email}
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestApp_AddAndRemoveRecipient(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(t, "Alice\nalice@example.com\n", &stubCalendar{}, &stubSender{})

	require.NoError(t, a.AddRecipient(context.Background()))
	require.Len(t, a.snap.Recipients, 1)
	assert.Equal(t, "alice@example.com", a.snap.Recipients[0].Email)

	err := a.RemoveRecipient(context.Background(), "5")
	require.ErrorIs(t, err, common.ErrInvalidInput)
	require.Len(t, a.snap.Recipients, 1)

	require.NoError(t, a.RemoveRecipient(context.Background(), "1"))
	assert.Empty(t, a.snap.Recipients)
}

func TestApp_AddRecipientRejectsBadEmail(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(t, "Alice\nnot-an-email\n", &stubCalendar{}, &stubSender{})

	err := a.AddRecipient(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Empty(t, a.snap.Recipients)
}

func TestApp_ConnectAutoFetches(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(t, "", &stubCalendar{}, &stubSender{})

	require.NoError(t, a.Connect(context.Background()))

	st := a.orch.Poll()
	assert.True(t, st.Connected)
	assert.Equal(t, orchestrator.StatusIdle, st.Status)
	assert.NotEmpty(t, st.Availabilities, "connect must run a fetch on success")
}

func TestApp_SendHappyPath(t *testing.T) {
	silencePrintln(t)
	sender := &stubSender{}
	a := newTestApp(t, "yes\n", &stubCalendar{}, sender)
	a.snap.Message = snapshot.Message{Subject: "Chat?", Body: "Hi {{.RecipientName}}", SenderName: "Bob"}
	a.snap.Recipients = append(a.snap.Recipients, mustRecipient("Alice", "alice@example.com"))

	require.NoError(t, a.Send(context.Background()))
	assert.Equal(t, 1, sender.sent)
	assert.Equal(t, orchestrator.StatusIdle, a.orch.Poll().Status)
}

func TestApp_SendCancelled(t *testing.T) {
	silencePrintln(t)
	sender := &stubSender{}
	a := newTestApp(t, "no\n", &stubCalendar{}, sender)
	a.snap.Message = snapshot.Message{Subject: "Chat?", Body: "Hi"}
	a.snap.Recipients = append(a.snap.Recipients, mustRecipient("Alice", "alice@example.com"))

	require.NoError(t, a.Send(context.Background()))
	assert.Zero(t, sender.sent)
}

func TestApp_SmtpConfig(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(t, "", &stubCalendar{}, &stubSender{})

	_, err := a.smtpConfig()
	require.ErrorIs(t, err, common.ErrInvalidInput, "unconfigured smtp must be rejected")

	a.snap.SMTP = snapshot.SMTPSettings{Host: "smtp.example.com", Port: 587, Username: "u", From: "u@example.com"}
	_, err = a.smtpConfig()
	require.ErrorIs(t, err, common.ErrSecretNotFound, "password missing from keychain")

	require.NoError(t, a.secrets.Set(secrets.KeySMTPPassword, []byte("hunter2")))
	cfg, err := a.smtpConfig()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, "smtp.example.com", cfg.Host)
}

func TestApp_BuildQueryFromDefaults(t *testing.T) {
	a := newTestApp(t, "", &stubCalendar{}, &stubSender{})

	q := a.buildQuery()
	require.NoError(t, q.Validate())
	assert.Equal(t, 15*time.Minute, q.Buffer)
	assert.Equal(t, 9*time.Hour, q.Window.From)
	assert.Equal(t, 21*time.Hour, q.Window.To)
	assert.Equal(t, 30*time.Minute, q.MinDuration)
	assert.InDelta(t, 14*24*time.Hour, q.Range.End.Sub(q.Range.Start), float64(2*time.Hour))
}

func TestApp_LoadTemplateUpdatesDraft(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(t, "", &stubCalendar{}, &stubSender{})

	err := a.LoadTemplate(context.Background(), "/no/such/file.tmpl")
	require.Error(t, err)
	assert.Empty(t, a.snap.Message.Subject)
}
