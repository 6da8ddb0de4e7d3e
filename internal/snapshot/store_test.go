package snapshot

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/coffeechat/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:snapshottest?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM state;
`)
	require.NoError(t, err)
	return db
}

func TestRepository_GetSetDelete(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewSQLiteRepository(db)

	got, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Set(ctx, "k", []byte("v1")))
	require.NoError(t, repo.Set(ctx, "k", []byte("v2"))) // upsert

	got, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, repo.Delete(ctx, "k"))
	got, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_LoadFreshDatabaseYieldsDefaults(t *testing.T) {
	db := setupDB(t)
	store := NewStore(db)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Default(), snap)
	assert.Equal(t, 15, snap.Calendar.BufferMinutes)
	assert.Equal(t, 9, snap.Calendar.DayStartHour)
	assert.Equal(t, 21, snap.Calendar.DayEndHour)
	assert.Equal(t, 14, snap.Calendar.LookaheadDays)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	db := setupDB(t)
	store := NewStore(db)
	ctx := context.Background()

	want := Snapshot{
		Message: Message{
			Subject:    "Coffee chat?",
			Body:       "Hi {{.RecipientName}}, I am free: {{.Availabilities}}",
			SenderName: "Dana",
		},
		Recipients: []models.Recipient{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "bob@example.com"},
		},
		SMTP: SMTPSettings{Host: "smtp.example.com", Port: 465, Username: "dana", From: "dana@example.com"},
		Calendar: CalendarSettings{
			CredentialsPath: "creds.json",
			BufferMinutes:   30,
			DayStartHour:    10,
			DayEndHour:      18,
			MinSlotMinutes:  45,
			LookaheadDays:   7,
		},
	}

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveNeverStoresPassword(t *testing.T) {
	db := setupDB(t)
	store := NewStore(db)
	ctx := context.Background()

	snap := Default()
	snap.SMTP = SMTPSettings{Host: "smtp.example.com", Port: 587, Username: "dana", From: "dana@example.com"}
	require.NoError(t, store.Save(ctx, snap))

	rows, err := db.Query(`SELECT value FROM state`)
	require.NoError(t, err)
	defer rows.Close()

	for rows.Next() {
		var v []byte
		require.NoError(t, rows.Scan(&v))
		assert.NotContains(t, string(v), "password")
	}
	require.NoError(t, rows.Err())
}
