package email

import (
	"context"
	"fmt"
	"regexp"
)

// Sender delivers a single transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single outbound email.
type Message struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"` // Optional, used for delivery analytics
}

// emailRegex is intentionally loose: real validation happens via the
// delivered code, not via address syntax.
var emailRegex = regexp.MustCompile(`^.+@.+\..+$`)

// Validate checks the message has a deliverable shape.
func (m Message) Validate() error {
	if m.SendTo == "" || !emailRegex.MatchString(m.SendTo) || len(m.SendTo) > 255 {
		return fmt.Errorf("%w: invalid recipient address", ErrInvalidMessage)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if m.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}
