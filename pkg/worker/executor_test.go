package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type ctxKey struct{}

func TestExecutor_RunsTask(t *testing.T) {
	e := NewExecutor(time.Second)
	var ran atomic.Bool

	require.NoError(t, e.Go(context.Background(), "ok", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}))
	e.Wait()

	assert.True(t, ran.Load())
}

func TestExecutor_DetachedFromParentCancellation(t *testing.T) {
	e := NewExecutor(time.Second)
	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "v"))
	cancel()

	var ctxErr error
	var value interface{}
	require.NoError(t, e.Go(parent, "detached", func(ctx context.Context) error {
		ctxErr = ctx.Err()
		value = ctx.Value(ctxKey{})
		return nil
	}))
	e.Wait()

	assert.NoError(t, ctxErr)
	assert.Equal(t, "v", value)
}

func TestExecutor_TaskTimeout(t *testing.T) {
	e := NewExecutor(20 * time.Millisecond)
	var err error

	require.NoError(t, e.Go(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		err = ctx.Err()
		return err
	}))
	e.Wait()

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecutor_PanicIsContained(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	restore := logger.SetForTest(zap.New(core))
	defer restore()

	e := NewExecutor(time.Second)
	require.NoError(t, e.Go(context.Background(), "boom", func(ctx context.Context) error {
		panic("kaboom")
	}))
	e.Wait()

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Background task panicked", entry.Message)
	assert.Equal(t, "kaboom", entry.ContextMap()["panic"])
}

func TestExecutor_ErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	restore := logger.SetForTest(zap.New(core))
	defer restore()

	e := NewExecutor(time.Second)
	require.NoError(t, e.Go(context.Background(), "fail", func(ctx context.Context) error {
		return errors.New("provider down")
	}))
	e.Wait()

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "fail", logs.All()[0].ContextMap()["task"])
}

func TestExecutor_Shutdown(t *testing.T) {
	e := NewExecutor(time.Second)
	release := make(chan struct{})

	require.NoError(t, e.Go(context.Background(), "blocked", func(ctx context.Context) error {
		<-release
		return nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, e.Shutdown(ctx), context.DeadlineExceeded)
	assert.ErrorIs(t, e.Go(context.Background(), "late", func(ctx context.Context) error { return nil }), ErrStopped)

	close(release)
	assert.NoError(t, e.Shutdown(context.Background()))
}
