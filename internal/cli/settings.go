package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/coffeechat/internal/secrets"
)

// Status prints the orchestrator state, the connection and the draft summary.
func (a *App) Status(ctx context.Context) error {
	st := a.orch.Poll()
	printlnFn("Operation:", st.Status.String())
	if st.Status.Terminal() && st.Err != "" {
		printlnFn("Last error:", st.Err)
	}
	printlnFn("Connected:", st.Connected)
	printlnFn(fmt.Sprintf("Slots: %d, recipients: %d", len(st.FreeSlots), len(a.snap.Recipients)))
	printlnFn(fmt.Sprintf("SMTP: %s@%s:%d from %s",
		a.snap.SMTP.Username, a.snap.SMTP.Host, a.snap.SMTP.Port, a.snap.SMTP.From))
	return nil
}

// ConfigureSMTP prompts for the SMTP account. The password goes straight
// into the keychain and never touches the snapshot.
func (a *App) ConfigureSMTP(ctx context.Context) error {
	s := &a.snap.SMTP

	if v, err := a.promptKeep(fmt.Sprintf("SMTP host [%s]:", s.Host)); err != nil {
		return err
	} else if v != "" {
		s.Host = v
	}

	if v, err := a.promptKeep(fmt.Sprintf("SMTP port [%d]:", s.Port)); err != nil {
		return err
	} else if v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			printlnFn("Not a port number:", v)
			return err
		}
		s.Port = port
	}

	if v, err := a.promptKeep(fmt.Sprintf("Username [%s]:", s.Username)); err != nil {
		return err
	} else if v != "" {
		s.Username = v
	}

	if v, err := a.promptKeep(fmt.Sprintf("From address [%s]:", s.From)); err != nil {
		return err
	} else if v != "" {
		s.From = v
	}

	pw, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer secrets.Wipe(pw)
	if len(pw) > 0 {
		if err := a.secrets.Set(secrets.KeySMTPPassword, pw); err != nil {
			printlnFn("Could not store password:", err.Error())
			return err
		}
		printlnFn("Password stored in the keychain.")
	}
	return nil
}

// EditSettings prompts for the slot-search parameters.
func (a *App) EditSettings(ctx context.Context) error {
	c := &a.snap.Calendar

	fields := []struct {
		prompt string
		dst    *int
	}{
		{fmt.Sprintf("Buffer minutes [%d]:", c.BufferMinutes), &c.BufferMinutes},
		{fmt.Sprintf("Day start hour [%d]:", c.DayStartHour), &c.DayStartHour},
		{fmt.Sprintf("Day end hour [%d]:", c.DayEndHour), &c.DayEndHour},
		{fmt.Sprintf("Min slot minutes [%d]:", c.MinSlotMinutes), &c.MinSlotMinutes},
		{fmt.Sprintf("Lookahead days [%d]:", c.LookaheadDays), &c.LookaheadDays},
	}

	for _, f := range fields {
		v, err := a.promptKeep(f.prompt)
		if err != nil {
			return err
		}
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			printlnFn("Not a number:", v)
			return err
		}
		*f.dst = n
	}

	if v, err := a.promptKeep(fmt.Sprintf("Credentials file [%s]:", c.CredentialsPath)); err != nil {
		return err
	} else if v != "" {
		c.CredentialsPath = v
		printlnFn("Restart to pick up the new credentials file.")
	}

	if err := a.buildQuery().Validate(); err != nil {
		printlnFn("Warning, settings do not form a valid query:", err.Error())
	}
	return nil
}

// promptKeep reads one line; empty input means "keep the current value".
func (a *App) promptKeep(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt+" (empty keeps current)", os.Stdout)
}
