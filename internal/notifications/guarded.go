package notifications

import (
	"context"
	"errors"

	"github.com/neuroeducatimo/landing/pkg/resilience"
)

// GuardedSender retries transient send failures and stops calling a channel
// that keeps failing. Invalid messages are never retried and do not count
// against the breaker.
type GuardedSender struct {
	next    Sender
	breaker *resilience.CircuitBreaker
	retry   resilience.RetryConfig
}

// NewGuardedSender wraps next. breaker may be nil.
func NewGuardedSender(next Sender, breaker *resilience.CircuitBreaker, retry resilience.RetryConfig) *GuardedSender {
	return &GuardedSender{next: next, breaker: breaker, retry: retry}
}

// Send implements Sender
func (g *GuardedSender) Send(ctx context.Context, msg Message) error {
	var rejected error
	_, err := resilience.RetryWithBreaker(ctx, g.retry, g.breaker, func(ctx context.Context) (interface{}, error) {
		err := g.next.Send(ctx, msg)
		if errors.Is(err, ErrInvalidParams) {
			rejected = err
			return nil, nil
		}
		return nil, err
	})
	if rejected != nil {
		return rejected
	}
	return err
}
