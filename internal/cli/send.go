package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/coffeechat/internal/emailtpl"
	"github.com/dmitrijs2005/coffeechat/internal/orchestrator"
)

// Send renders the draft for every recipient and delivers it. Failures are
// reported per recipient; the user re-runs 'send' after fixing the list.
func (a *App) Send(ctx context.Context) error {
	if len(a.snap.Recipients) == 0 {
		printlnFn("No recipients. Use 'add' first.")
		return nil
	}

	tpl, err := emailtpl.FromContent(a.snap.Message.Subject, a.snap.Message.Body)
	if err != nil {
		printlnFn("Draft does not parse:", err.Error())
		return err
	}

	confirm, err := GetSimpleText(a.reader,
		fmt.Sprintf("Send to %d recipient(s)? (yes/no)", len(a.snap.Recipients)), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "yes") && !strings.EqualFold(confirm, "y") {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.orch.StartSend(ctx, tpl, a.snap.Message.SenderName, a.snap.Recipients); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Sending...")

	st := a.await(ctx)
	a.orch.Acknowledge()

	if st.Status == orchestrator.StatusFailed {
		printlnFn(st.Err)
		for _, f := range st.SendFailures {
			printlnFn(fmt.Sprintf("  %s: %s", f.Recipient.String(), f.Reason))
		}
		return nil
	}
	printlnFn("Sent", st.Sent, "invitation(s).")
	return nil
}
