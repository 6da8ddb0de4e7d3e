// Package models holds the plain data types shared between the front end,
// the orchestrator, and the snapshot store.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/coffeechat/internal/common"
)

// Recipient is one invitation target. Uniqueness is not enforced here;
// the front end may dedupe its list.
type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate rejects recipients with a missing name or an implausible email.
func (r Recipient) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: recipient name is required", common.ErrInvalidInput)
	}
	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: recipient email %q is not an email address", common.ErrInvalidInput, r.Email)
	}
	return nil
}

func (r Recipient) String() string {
	return fmt.Sprintf("%s <%s>", r.Name, r.Email)
}
