package notifications

import (
	"context"

	"go.uber.org/zap"

	"github.com/neuroeducatimo/landing/pkg/logger"
)

// LogSender writes messages to the log instead of sending them. It stands in
// for the thank-you channel in development when Postmark is not configured.
// The operator channel never uses it: a logged notice must not count as a
// delivered one.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	logger.WithContext(ctx).Info("email not sent, logging only",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("tag", msg.Tag),
		zap.Int("text_bytes", len(msg.TextBody)),
		zap.Int("html_bytes", len(msg.HTMLBody)),
	)
	return nil
}
