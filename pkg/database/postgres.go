package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/neuroeducatimo/landing/pkg/config"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/neuroeducatimo/landing/pkg/resilience"
	"go.uber.org/zap"
)

// NewPostgresPool opens the pool and waits for the first successful ping.
// The database often comes up after the app in compose setups, so the ping
// is retried with backoff.
func NewPostgresPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	attempt := 0
	_, err = resilience.Retry(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) (interface{}, error) {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		err := pool.Ping(pingCtx)
		if err != nil {
			logger.Warn("Database not ready", zap.Int("attempt", attempt), zap.Error(err))
		}
		return nil, err
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// OpenSQL exposes the pool through database/sql for the repositories.
// Closing the returned DB does not close the pool.
func OpenSQL(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}

// Close closes the pool if it was opened
func Close(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
