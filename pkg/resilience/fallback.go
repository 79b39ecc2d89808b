package resilience

import (
	"context"

	"github.com/neuroeducatimo/landing/pkg/logger"
	"go.uber.org/zap"
)

// FallbackFunc is executed when the breaker is open or overloaded.
type FallbackFunc func(ctx context.Context, err error) (interface{}, error)

// NoopFallback returns ErrCircuitOpen without additional handling.
func NoopFallback(ctx context.Context, err error) (interface{}, error) {
	return nil, ErrCircuitOpen
}

// GracefulDegradation returns ErrCircuitOpen and logs which channel is degraded.
func GracefulDegradation(channel string) FallbackFunc {
	return func(ctx context.Context, err error) (interface{}, error) {
		logger.WithContext(ctx).Warn("Circuit breaker open, channel degraded",
			zap.String("channel", channel),
			zap.Error(err),
		)
		return nil, ErrCircuitOpen
	}
}
