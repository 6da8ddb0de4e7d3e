// Package mailer delivers invitation emails over SMTP.
package mailer

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/dmitrijs2005/coffeechat/internal/models"
)

// Message is one fully rendered email for one recipient.
type Message struct {
	Recipient models.Recipient
	Subject   string
	Body      string
}

// Sender delivers a single message. Implementations must be safe to call
// sequentially for a batch of recipients.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds everything needed to open an authenticated session.
// The password lives in the OS keyring and is injected at send time.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends mail with STARTTLS and plain authentication.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send opens a connection, delivers the message and closes the session.
// One connection per message keeps failures isolated per recipient.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("sender address: %w", err)
	}
	if err := m.AddToFormat(msg.Recipient.Name, msg.Recipient.Email); err != nil {
		return fmt.Errorf("recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send to %s: %w", msg.Recipient.Email, err)
	}
	return nil
}

// ResolvingSender defers SMTP configuration to send time, so in-session
// settings edits take effect and the password stays in the keyring between
// deliveries.
type ResolvingSender struct {
	source func() (SMTPConfig, error)
}

func NewResolvingSender(source func() (SMTPConfig, error)) *ResolvingSender {
	return &ResolvingSender{source: source}
}

func (s *ResolvingSender) Send(ctx context.Context, msg Message) error {
	cfg, err := s.source()
	if err != nil {
		return fmt.Errorf("smtp settings: %w", err)
	}
	return NewSMTPSender(cfg).Send(ctx, msg)
}
