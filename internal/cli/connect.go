package cli

import (
	"context"

	"github.com/dmitrijs2005/coffeechat/internal/orchestrator"
)

// Connect authorizes calendar access and, on success, immediately fetches
// slots so the user lands with an up-to-date list.
func (a *App) Connect(ctx context.Context) error {
	if err := a.orch.StartConnect(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Connecting to Google Calendar... check your browser.")

	st := a.await(ctx)
	a.orch.Acknowledge()

	if st.Status == orchestrator.StatusFailed {
		printlnFn("Connection failed:", st.Err)
		return nil
	}
	printlnFn("Connected.")
	return a.Fetch(ctx)
}

// Fetch computes free slots over the configured lookahead range.
func (a *App) Fetch(ctx context.Context) error {
	if err := a.orch.StartFetch(ctx, a.buildQuery()); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Fetching busy intervals...")

	st := a.await(ctx)
	a.orch.Acknowledge()

	if st.Status == orchestrator.StatusFailed {
		printlnFn("Fetch failed:", st.Err)
		return nil
	}
	printlnFn("Found", len(st.FreeSlots), "free slots. Type 'slots' to list them.")
	return nil
}

// Slots prints the availabilities computed by the last fetch.
func (a *App) Slots(ctx context.Context) error {
	st := a.orch.Poll()
	if len(st.Availabilities) == 0 {
		printlnFn("No slots computed yet. Run 'fetch' first.")
		return nil
	}
	for _, line := range st.Availabilities {
		printlnFn("  " + line)
	}
	return nil
}
