package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/coffeechat/internal/orchestrator"
)

type fakeExec struct {
	state orchestrator.State

	calls []string
	args  []string
}

func (f *fakeExec) pollState() orchestrator.State { return f.state }
func (f *fakeExec) Connect(ctx context.Context) error {
	f.calls = append(f.calls, "connect")
	f.state.Connected = true
	return nil
}
func (f *fakeExec) Fetch(ctx context.Context) error {
	f.calls = append(f.calls, "fetch")
	return nil
}
func (f *fakeExec) Slots(ctx context.Context) error {
	f.calls = append(f.calls, "slots")
	return nil
}
func (f *fakeExec) Send(ctx context.Context) error {
	f.calls = append(f.calls, "send")
	return nil
}
func (f *fakeExec) ListRecipients(ctx context.Context) error {
	f.calls = append(f.calls, "recipients")
	return nil
}
func (f *fakeExec) AddRecipient(ctx context.Context) error {
	f.calls = append(f.calls, "add")
	return nil
}
func (f *fakeExec) RemoveRecipient(ctx context.Context, arg string) error {
	f.calls = append(f.calls, "remove")
	f.args = append(f.args, arg)
	return nil
}
func (f *fakeExec) EditMessage(ctx context.Context) error {
	f.calls = append(f.calls, "message")
	return nil
}
func (f *fakeExec) LoadTemplate(ctx context.Context, path string) error {
	f.calls = append(f.calls, "template")
	f.args = append(f.args, path)
	return nil
}
func (f *fakeExec) ConfigureSMTP(ctx context.Context) error {
	f.calls = append(f.calls, "smtp")
	return nil
}
func (f *fakeExec) EditSettings(ctx context.Context) error {
	f.calls = append(f.calls, "settings")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

func TestRunREPL_ConnectFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"connect",
		"fetch",
		"slots",
		"add",
		"recipients",
		"remove 2",
		"template /tmp/invite.tmpl",
		"send",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"connect", "fetch", "slots", "add", "recipients", "remove", "template", "send"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
	if len(exec.args) != 2 || exec.args[0] != "2" || exec.args[1] != "/tmp/invite.tmpl" {
		t.Fatalf("unexpected args: %v", exec.args)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("remove\ntemplate\nquit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
