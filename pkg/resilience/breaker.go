package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned when a breaker rejects a call
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Settings tunes a circuit breaker
type Settings struct {
	Name             string
	Interval         time.Duration // counts reset period while closed
	Timeout          time.Duration // how long the breaker stays open
	FailureThreshold uint32        // consecutive failures before opening
	SuccessThreshold uint32        // requests allowed while half-open
}

// CircuitBreaker wraps gobreaker with metrics and a fallback
type CircuitBreaker struct {
	name     string
	cb       *gobreaker.CircuitBreaker
	fallback FallbackFunc
}

// NewCircuitBreaker creates a breaker. A nil fallback behaves like NoopFallback.
func NewCircuitBreaker(s Settings, fallback FallbackFunc) *CircuitBreaker {
	name := breakerName(s.Name)
	if fallback == nil {
		fallback = NoopFallback
	}
	threshold := s.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	halfOpen := s.SuccessThreshold
	if halfOpen == 0 {
		halfOpen = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: halfOpen,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			observeTransition(name, from, to)
		},
	})
	observeState(name, gobreaker.StateClosed)

	return &CircuitBreaker{name: name, cb: cb, fallback: fallback}
}

// Name returns the breaker name used in metrics
func (b *CircuitBreaker) Name() string {
	return b.name
}

// State returns the current breaker state
func (b *CircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}

// Execute runs op through the breaker. When the breaker is open the fallback
// decides the result.
func (b *CircuitBreaker) Execute(ctx context.Context, op func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return op(ctx)
	})
	if err == nil {
		observeCall(b.name, outcomeOK)
		return result, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		observeCall(b.name, outcomeRejected)
		return b.fallback(ctx, err)
	}

	observeCall(b.name, outcomeError)
	return nil, err
}
