// Package worker runs fire-and-forget tasks outside the request that started
// them. Each task gets its own deadline and panic boundary.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var tasksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "landing_background_tasks_total",
		Help: "Background tasks by name and outcome",
	},
	[]string{"task", "status"},
)

// ErrStopped is returned by Go after Shutdown has been called
var ErrStopped = errors.New("executor stopped")

// Task is a unit of background work
type Task func(ctx context.Context) error

// Executor launches tasks in their own goroutines
type Executor struct {
	timeout time.Duration
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
}

// NewExecutor creates an executor. Each task is cancelled after timeout.
func NewExecutor(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Executor{timeout: timeout}
}

// Go runs task in the background. The task does not inherit the caller's
// cancellation, only its values (correlation and trace IDs).
func (e *Executor) Go(parent context.Context, name string, task Task) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stopped {
		return ErrStopped
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), e.timeout)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				tasksTotal.WithLabelValues(name, "panic").Inc()
				logger.WithContext(ctx).Error("Background task panicked",
					zap.String("task", name),
					zap.String("panic", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				if hub := sentry.CurrentHub(); hub != nil && hub.Client() != nil {
					hub.Recover(r)
				}
			}
		}()

		if err := task(ctx); err != nil {
			tasksTotal.WithLabelValues(name, "error").Inc()
			logger.WithContext(ctx).Warn("Background task failed", zap.String("task", name), zap.Error(err))
			return
		}
		tasksTotal.WithLabelValues(name, "ok").Inc()
	}()
	return nil
}

// Wait blocks until every running task has finished
func (e *Executor) Wait() {
	e.wg.Wait()
}

// Shutdown stops accepting tasks and waits for running ones until ctx is done
func (e *Executor) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	e.stopped = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
