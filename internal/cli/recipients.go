package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/coffeechat/internal/common"
	"github.com/dmitrijs2005/coffeechat/internal/models"
)

// ListRecipients prints the numbered recipient list.
func (a *App) ListRecipients(ctx context.Context) error {
	if len(a.snap.Recipients) == 0 {
		printlnFn("No recipients yet. Use 'add'.")
		return nil
	}
	for i, r := range a.snap.Recipients {
		printlnFn(fmt.Sprintf("%d. %s", i+1, r.String()))
	}
	return nil
}

// AddRecipient prompts for a name and email and appends the entry after
// validation.
func (a *App) AddRecipient(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Recipient name:", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Recipient email:", os.Stdout)
	if err != nil {
		return err
	}

	r := models.Recipient{Name: name, Email: email}
	if err := r.Validate(); err != nil {
		printlnFn(err.Error())
		return err
	}

	a.snap.Recipients = append(a.snap.Recipients, r)
	printlnFn("Added", r.String())
	return nil
}

// RemoveRecipient deletes the recipient at the given 1-based position.
func (a *App) RemoveRecipient(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.snap.Recipients) {
		printlnFn(fmt.Sprintf("No recipient number %q. Use 'recipients' to list them.", arg))
		return fmt.Errorf("%w: recipient number %q", common.ErrInvalidInput, arg)
	}

	removed := a.snap.Recipients[n-1]
	a.snap.Recipients = append(a.snap.Recipients[:n-1], a.snap.Recipients[n:]...)
	printlnFn("Removed", removed.String())
	return nil
}
