package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/neuroeducatimo/landing/pkg/config"
)

// dialer is the part of gomail.Dialer the SMTP sender uses
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends mail through an SMTP relay
type SMTPSender struct {
	dialer  dialer
	from    string
	timeout time.Duration
}

// NewSMTPSender creates an SMTP sender from config
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("SMTP host is required"))
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	if from == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("SMTP sender address is required"))
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SMTPSender{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    from,
		timeout: timeout,
	}, nil
}

// Send delivers msg. gomail has no context support, so the dial runs in its
// own goroutine and Send returns when ctx or the sender timeout expires.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		if msg.HTMLBody != "" {
			m.AddAlternative("text/html", msg.HTMLBody)
		}
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return errors.Join(ErrFailedToSend, fmt.Errorf("smtp: %w", err))
		}
		return nil
	case <-ctx.Done():
		return errors.Join(ErrFailedToSend, fmt.Errorf("smtp: %w", ctx.Err()))
	}
}
