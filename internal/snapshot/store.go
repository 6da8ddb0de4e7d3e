package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/coffeechat/internal/dbx"
	"github.com/dmitrijs2005/coffeechat/internal/models"
)

// Keys under which the snapshot sections are stored.
const (
	keyMessage    = "message"
	keyRecipients = "recipients"
	keySMTP       = "smtp"
	keyCalendar   = "calendar"
)

// Message is the invitation draft.
type Message struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	SenderName string `json:"sender_name"`
}

// SMTPSettings configures the mail collaborator. The password is looked up
// in the keychain at send time and is deliberately absent here.
type SMTPSettings struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	From     string `json:"from"`
}

// CalendarSettings configures slot fetching.
type CalendarSettings struct {
	CredentialsPath string `json:"credentials_path"`
	BufferMinutes   int    `json:"buffer_minutes"`
	DayStartHour    int    `json:"day_start_hour"`
	DayEndHour      int    `json:"day_end_hour"`
	MinSlotMinutes  int    `json:"min_slot_minutes"`
	LookaheadDays   int    `json:"lookahead_days"`
}

// Snapshot is the full persisted application state.
type Snapshot struct {
	Message    Message
	Recipients []models.Recipient
	SMTP       SMTPSettings
	Calendar   CalendarSettings
}

// Default returns the snapshot used on first run.
func Default() Snapshot {
	return Snapshot{
		Calendar: CalendarSettings{
			CredentialsPath: "credentials.json",
			BufferMinutes:   15,
			DayStartHour:    9,
			DayEndHour:      21,
			MinSlotMinutes:  30,
			LookaheadDays:   14,
		},
		SMTP: SMTPSettings{Port: 587},
	}
}

// Store reads and writes snapshots through the key/value repository.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads the snapshot. Missing sections keep their defaults, so a fresh
// database yields Default().
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	snap := Default()
	repo := NewSQLiteRepository(s.db)

	sections := []struct {
		key string
		dst any
	}{
		{keyMessage, &snap.Message},
		{keyRecipients, &snap.Recipients},
		{keySMTP, &snap.SMTP},
		{keyCalendar, &snap.Calendar},
	}

	for _, sec := range sections {
		raw, err := repo.Get(ctx, sec.key)
		if err != nil {
			return Snapshot{}, err
		}
		if raw == nil {
			continue
		}
		if err := json.Unmarshal(raw, sec.dst); err != nil {
			return Snapshot{}, fmt.Errorf("failed to decode state[%s]: %w", sec.key, err)
		}
	}
	return snap, nil
}

// Save writes all snapshot sections in one transaction.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)

		sections := []struct {
			key string
			src any
		}{
			{keyMessage, snap.Message},
			{keyRecipients, snap.Recipients},
			{keySMTP, snap.SMTP},
			{keyCalendar, snap.Calendar},
		}

		for _, sec := range sections {
			raw, err := json.Marshal(sec.src)
			if err != nil {
				return fmt.Errorf("failed to encode state[%s]: %w", sec.key, err)
			}
			if err := repo.Set(ctx, sec.key, raw); err != nil {
				return err
			}
		}
		return nil
	})
}
