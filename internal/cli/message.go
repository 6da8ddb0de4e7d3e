package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/coffeechat/internal/emailtpl"
)

// EditMessage shows the current draft and prompts for replacements. Pressing
// Enter on a prompt keeps the existing value.
func (a *App) EditMessage(ctx context.Context) error {
	m := a.snap.Message
	printlnFn("Subject:", m.Subject)
	printlnFn("Sender name:", m.SenderName)
	printlnFn("Body:")
	printlnFn(m.Body)

	subject, err := GetSimpleText(a.reader, "New subject (empty keeps current):", os.Stdout)
	if err != nil {
		return err
	}
	if subject != "" {
		a.snap.Message.Subject = subject
	}

	sender, err := GetSimpleText(a.reader, "New sender name (empty keeps current):", os.Stdout)
	if err != nil {
		return err
	}
	if sender != "" {
		a.snap.Message.SenderName = sender
	}

	body, err := GetMultiline(a.reader, "New body (empty keeps current):", os.Stdout)
	if err != nil {
		return err
	}
	if body != "" {
		a.snap.Message.Body = body
	}

	// Reject a draft that will not render before the user tries to send it.
	if _, err := emailtpl.FromContent(a.snap.Message.Subject, a.snap.Message.Body); err != nil {
		printlnFn("Warning, draft does not parse:", err.Error())
	}
	return nil
}

// LoadTemplate replaces the draft subject and body from a template file.
func (a *App) LoadTemplate(ctx context.Context, path string) error {
	tpl, err := emailtpl.Load(path)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	a.snap.Message.Subject = tpl.SubjectText
	a.snap.Message.Body = tpl.BodyText
	printlnFn("Loaded template from", path)
	return nil
}
