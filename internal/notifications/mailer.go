// Package notifications delivers lead emails over two independent channels:
// an SMTP mailbox watched by operators and a transactional provider used for
// thank-you messages to the person who signed up.
package notifications

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrFailedToSend  = errors.New("failed to send email")
	ErrInvalidConfig = errors.New("invalid email configuration")
	ErrNotConfigured = errors.New("email channel not configured")
	ErrInvalidParams = errors.New("invalid email parameters")
)

// Message is a single outgoing email
type Message struct {
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
	Tag      string
}

// Validate checks the fields every provider needs
func (m Message) Validate() error {
	var errs []error
	if strings.TrimSpace(m.To) == "" {
		errs = append(errs, errors.New("recipient is required"))
	}
	if strings.TrimSpace(m.Subject) == "" {
		errs = append(errs, errors.New("subject is required"))
	}
	if m.TextBody == "" && m.HTMLBody == "" {
		errs = append(errs, errors.New("body is required"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidParams}, errs...)...)
	}
	return nil
}

// Sender delivers a message through one provider
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}
