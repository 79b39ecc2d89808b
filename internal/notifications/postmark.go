package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrz1836/postmark"

	"github.com/neuroeducatimo/landing/pkg/config"
)

// postmarkAPI is the part of the Postmark client the sender uses
type postmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkSender sends transactional mail through Postmark
type PostmarkSender struct {
	client  postmarkAPI
	from    string
	replyTo string
	timeout time.Duration
}

// NewPostmarkSender creates a Postmark sender from config
func NewPostmarkSender(cfg config.PostmarkConfig) (*PostmarkSender, error) {
	if cfg.ServerToken == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("postmark server token is required"))
	}
	if cfg.From == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("postmark sender address is required"))
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PostmarkSender{
		client:  postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		from:    cfg.From,
		replyTo: cfg.ReplyTo,
		timeout: timeout,
	}, nil
}

// Send delivers msg. Opens are tracked; links only in the HTML part.
func (s *PostmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	replyTo := msg.ReplyTo
	if replyTo == "" {
		replyTo = s.replyTo
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.from,
		ReplyTo:    replyTo,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTMLBody,
		TextBody:   msg.TextBody,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSend,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
