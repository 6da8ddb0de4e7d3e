// Package cli provides the interactive coffeechat command-line client.
//
// It wires configuration, the snapshot store, the OS keychain, the calendar
// client and the SMTP sender into an orchestrator, and runs a REPL on top.
// Long-running operations (connect, fetch, send) execute in the background;
// the REPL polls their state and blocks only the prompt, never the
// orchestrator.
//
// Key features:
//   - Connect to Google Calendar via browser-based OAuth consent
//   - Fetch busy intervals and compute proposable free slots
//   - Manage recipients and the invitation draft (template files supported)
//   - Send invitations over SMTP with per-recipient failure reporting
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// and then persists the snapshot. See runREPL and availableCommands for the
// command surface.
package cli
