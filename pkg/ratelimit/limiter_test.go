package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuroeducatimo/landing/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:       true,
		LoginAttempts: 3,
		WindowSeconds: 60,
		RedisPrefix:   "rl",
	}
}

func TestAllow_FirstRequestSetsExpiry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewLimiter(client, testConfig())

	mock.ExpectIncr("rl:login:1.2.3.4").SetVal(1)
	mock.ExpectExpire("rl:login:1.2.3.4", time.Minute).SetVal(true)

	res, err := l.Allow(context.Background(), "login", "1.2.3.4")

	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllow_OverLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewLimiter(client, testConfig())

	mock.ExpectIncr("rl:login:1.2.3.4").SetVal(4)
	mock.ExpectTTL("rl:login:1.2.3.4").SetVal(42 * time.Second)

	res, err := l.Allow(context.Background(), "login", "1.2.3.4")

	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 42*time.Second, res.RetryAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllow_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	client, mock := redismock.NewClientMock()

	res, err := NewLimiter(client, cfg).Allow(context.Background(), "login", "x")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = NewLimiter(nil, testConfig()).Allow(context.Background(), "login", "x")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllow_RedisErrorFailsOpen(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewLimiter(client, testConfig())

	mock.ExpectIncr("rl:login:1.2.3.4").SetErr(errors.New("connection refused"))

	res, err := l.Allow(context.Background(), "login", "1.2.3.4")

	assert.Error(t, err)
	assert.True(t, res.Allowed)
}

func TestReset(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewLimiter(client, testConfig())

	mock.ExpectDel("rl:login:1.2.3.4").SetVal(1)

	require.NoError(t, l.Reset(context.Background(), "login", "1.2.3.4"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMiddleware_Blocks(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewLimiter(client, testConfig())

	r := gin.New()
	r.POST("/login", Middleware(l, "login"), func(c *gin.Context) { c.Status(http.StatusOK) })

	mock.ExpectIncr("rl:login:192.0.2.1").SetVal(5)
	mock.ExpectTTL("rl:login:192.0.2.1").SetVal(30 * time.Second)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
}

func TestMiddleware_FailsOpen(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewLimiter(client, testConfig())

	r := gin.New()
	r.POST("/login", Middleware(l, "login"), func(c *gin.Context) { c.Status(http.StatusOK) })

	mock.ExpectIncr("rl:login:192.0.2.1").SetErr(errors.New("down"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
