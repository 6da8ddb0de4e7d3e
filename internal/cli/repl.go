package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/coffeechat/internal/orchestrator"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	pollState() orchestrator.State
	Connect(ctx context.Context) error
	Fetch(ctx context.Context) error
	Slots(ctx context.Context) error
	Send(ctx context.Context) error
	ListRecipients(ctx context.Context) error
	AddRecipient(ctx context.Context) error
	RemoveRecipient(ctx context.Context, arg string) error
	EditMessage(ctx context.Context) error
	LoadTemplate(ctx context.Context, path string) error
	ConfigureSMTP(ctx context.Context) error
	EditSettings(ctx context.Context) error
	Status(ctx context.Context) error
}

// availableCommands is the pure projection of orchestrator state onto the
// commands the user may run. Keeping it a function of State (rather than
// separate flags) prevents drift between what is shown and what is allowed.
func availableCommands(st orchestrator.State) []string {
	cmds := []string{"help", "status"}
	if st.Status == orchestrator.StatusIdle {
		cmds = append(cmds, "connect")
		if st.Connected {
			cmds = append(cmds, "fetch")
		}
		if len(st.Availabilities) > 0 {
			cmds = append(cmds, "slots", "send")
		}
		cmds = append(cmds, "recipients", "add", "remove", "message", "template", "smtp", "settings")
	}
	return append(cmds, "exit")
}

// runREPL starts a read–eval–print loop for the coffeechat CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands
//
//	help             — show commands available in the current state
//	status           — show connection, operation and slot status
//	connect          — authorize Google Calendar access (opens a browser)
//	fetch            — fetch busy intervals and compute free slots
//	slots            — list the computed free slots
//	send             — send the invitation to every recipient
//	recipients       — list recipients
//	add              — add a recipient
//	remove <n>       — remove recipient number n
//	message          — view or edit the invitation draft
//	template <path>  — load a template file into the draft
//	smtp             — configure the SMTP account
//	settings         — view or edit slot-search settings
//	exit | quit      — save state and leave
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("coffee> %s", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: " + strings.Join(availableCommands(a.pollState()), ", "))

		case "status":
			_ = a.Status(ctx)

		case "connect":
			_ = a.Connect(ctx)

		case "fetch":
			_ = a.Fetch(ctx)

		case "slots":
			_ = a.Slots(ctx)

		case "send":
			_ = a.Send(ctx)

		case "recipients":
			_ = a.ListRecipients(ctx)

		case "add":
			_ = a.AddRecipient(ctx)

		case "remove":
			if len(args) == 0 {
				printlnFn("Usage: remove <number>")
				continue
			}
			_ = a.RemoveRecipient(ctx, args[0])

		case "message":
			_ = a.EditMessage(ctx)

		case "template":
			if len(args) == 0 {
				printlnFn("Usage: template <path>")
				continue
			}
			_ = a.LoadTemplate(ctx, args[0])

		case "smtp":
			_ = a.ConfigureSMTP(ctx)

		case "settings":
			_ = a.EditSettings(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
