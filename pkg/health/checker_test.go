package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseChecker(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, DatabaseChecker(db)(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.ErrorContains(t, DatabaseChecker(db)(context.Background()), "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseChecker_NilDB(t *testing.T) {
	err := DatabaseChecker(nil)(context.Background())
	assert.EqualError(t, err, "database connection is nil")
}

func TestRedisChecker(t *testing.T) {
	client, mock := redismock.NewClientMock()

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, RedisChecker(client)(context.Background()))

	mock.ExpectPing().SetErr(errors.New("redis down"))
	assert.ErrorContains(t, RedisChecker(client)(context.Background()), "redis down")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisChecker_NilClient(t *testing.T) {
	assert.Error(t, RedisChecker(nil)(context.Background()))
}

func TestStaticPagesChecker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.html"), []byte("<html></html>"), 0o644))

	assert.NoError(t, StaticPagesChecker(dir, "en.html")(context.Background()))
	assert.ErrorContains(t, StaticPagesChecker(dir, "en.html", "pl.html")(context.Background()), "missing page pl.html")
	assert.Error(t, StaticPagesChecker(filepath.Join(dir, "nope"))(context.Background()))
	assert.ErrorContains(t, StaticPagesChecker(filepath.Join(dir, "en.html"))(context.Background()), "not a directory")
}

func TestWithTimeout_KeepsCallerDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), DefaultTimeout*10)
	defer cancel()

	ctx, done := withTimeout(parent)
	defer done()

	want, _ := parent.Deadline()
	got, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Equal(t, want, got)
}
