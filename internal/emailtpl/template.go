// Package emailtpl renders invitation subjects and bodies from user-editable
// templates using text/template.
//
// Template files carry subject and body together:
//
//	Subject: Coffee chat, {{.RecipientName}}?
//	---
//	Hi {{.RecipientName}},
//	...
package emailtpl

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/dmitrijs2005/coffeechat/internal/common"
)

// Vars is the data available to both the subject and the body templates.
// Availabilities are pre-formatted human-readable slot strings.
type Vars struct {
	RecipientName  string
	SenderName     string
	Availabilities []string
}

// Template is a parsed subject+body pair, ready to render per recipient.
type Template struct {
	SubjectText string
	BodyText    string

	subject *template.Template
	body    *template.Template
}

// Load reads and parses a template file in the Subject:/---/body format.
func Load(path string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "Subject:") || strings.TrimSpace(lines[1]) != "---" {
		return nil, fmt.Errorf("%w: template %s is missing the Subject: line or the --- separator",
			common.ErrInvalidInput, path)
	}

	subject := strings.TrimSpace(strings.TrimPrefix(lines[0], "Subject:"))
	body := strings.Join(lines[2:], "\n")

	return FromContent(subject, body)
}

// FromContent builds a Template directly from subject and body strings,
// e.g. from the in-session draft.
func FromContent(subject, body string) (*Template, error) {
	st, err := template.New("subject").Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject template: %v", common.ErrInvalidInput, err)
	}
	bt, err := template.New("body").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: bad body template: %v", common.ErrInvalidInput, err)
	}
	return &Template{SubjectText: subject, BodyText: body, subject: st, body: bt}, nil
}

// Render produces the subject and body for one recipient.
func (t *Template) Render(vars Vars) (string, string, error) {
	var subject, body strings.Builder
	if err := t.subject.Execute(&subject, vars); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := t.body.Execute(&body, vars); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}
	return subject.String(), body.String(), nil
}
