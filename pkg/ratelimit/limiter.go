// Package ratelimit throttles requests with fixed-window counters in Redis
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/config"
	"github.com/neuroeducatimo/landing/pkg/logger"
)

// Result is the outcome of one Allow call
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts requests per key within a window
type Limiter struct {
	client redis.Cmdable
	cfg    config.RateLimitConfig
}

// NewLimiter creates a limiter. A nil client disables limiting.
func NewLimiter(client redis.Cmdable, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{client: client, cfg: cfg}
}

func (l *Limiter) enabled() bool {
	return l != nil && l.client != nil && l.cfg.Enabled && l.cfg.LoginAttempts > 0
}

func (l *Limiter) key(scope, identity string) string {
	return fmt.Sprintf("%s:%s:%s", l.cfg.RedisPrefix, scope, identity)
}

// Allow records one request for identity in scope
func (l *Limiter) Allow(ctx context.Context, scope, identity string) (Result, error) {
	if !l.enabled() {
		return Result{Allowed: true}, nil
	}

	key := l.key(scope, identity)
	limit := l.cfg.LoginAttempts

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Result{Allowed: true}, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.cfg.Window()).Err(); err != nil {
			return Result{Allowed: true}, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	if int(count) <= limit {
		return Result{Allowed: true, Limit: limit, Remaining: limit - int(count)}, nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = l.cfg.Window()
	}
	return Result{Allowed: false, Limit: limit, RetryAfter: ttl}, nil
}

// Reset clears the counter for identity, e.g. after a successful login
func (l *Limiter) Reset(ctx context.Context, scope, identity string) error {
	if !l.enabled() {
		return nil
	}
	return l.client.Del(ctx, l.key(scope, identity)).Err()
}

// Middleware throttles by client IP. Redis failures let the request through.
func Middleware(l *Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := l.Allow(c.Request.Context(), scope, c.ClientIP())
		if err != nil {
			logger.WithContext(c.Request.Context()).Warn("Rate limiter unavailable",
				zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
			common.ErrorResponse(c, http.StatusTooManyRequests, "too many attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
