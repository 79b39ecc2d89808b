package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	restore := SetForTest(nil)
	defer restore()

	require.NoError(t, Init("production", "", zap.String("service", "landing")))
	assert.True(t, Get().Core().Enabled(zap.InfoLevel))
	assert.False(t, Get().Core().Enabled(zap.DebugLevel))

	require.NoError(t, Init("development", "warn"))
	assert.False(t, Get().Core().Enabled(zap.InfoLevel))

	assert.Error(t, Init("production", "loud"))
}

func TestWithContext_AddsCorrelationID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := SetForTest(zap.New(core))
	defer restore()

	ctx := ContextWithCorrelationID(context.Background(), "req-123")
	WithContext(ctx).Info("handled")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-123", logs.All()[0].ContextMap()["correlation_id"])
}

func TestWithContext_NoValues(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := SetForTest(zap.New(core))
	defer restore()

	WithContext(context.Background()).Info("plain")

	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].ContextMap())
}

func TestCorrelationIDFromContext_Missing(t *testing.T) {
	assert.Equal(t, "", CorrelationIDFromContext(context.Background()))
}
