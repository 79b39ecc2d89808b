// Package health builds readiness checks for the dependencies the site needs.
package health

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/redis/go-redis/v9"
)

// DefaultTimeout bounds a single check when the caller has no deadline
const DefaultTimeout = 2 * time.Second

// DatabaseChecker returns a health check function for PostgreSQL database
func DatabaseChecker(db *sql.DB) common.CheckFunc {
	return func(ctx context.Context) error {
		if db == nil {
			return errors.New("database connection is nil")
		}
		ctx, cancel := withTimeout(ctx)
		defer cancel()
		return db.PingContext(ctx)
	}
}

// RedisChecker returns a health check function for Redis
func RedisChecker(client redis.Cmdable) common.CheckFunc {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.New("redis client is nil")
		}
		ctx, cancel := withTimeout(ctx)
		defer cancel()
		return client.Ping(ctx).Err()
	}
}

// StaticPagesChecker verifies the landing page files can be served
func StaticPagesChecker(dir string, files ...string) common.CheckFunc {
	return func(context.Context) error {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("static dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("static dir %s is not a directory", dir)
		}
		for _, f := range files {
			if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
				return fmt.Errorf("missing page %s", f)
			}
		}
		return nil
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, DefaultTimeout)
}
