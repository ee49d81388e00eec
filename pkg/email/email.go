package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/a-h/templ"
)

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single outbound email.
type Message struct {
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
	Tag      string
}

// Validate checks the fields every sender needs.
func (m Message) Validate() error {
	if !validAddress(m.To) {
		return fmt.Errorf("%w: invalid recipient %q", ErrInvalidMessage, m.To)
	}
	if m.ReplyTo != "" && !validAddress(m.ReplyTo) {
		return fmt.Errorf("%w: invalid reply-to %q", ErrInvalidMessage, m.ReplyTo)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if m.HTMLBody == "" && m.TextBody == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}

// Render renders a component into an HTML body.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func validAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
