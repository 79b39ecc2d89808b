package database

import (
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "articles_slug_key"})
	assert.Equal(t, "articles_slug_key", ConstraintName(err))
	assert.Equal(t, "", ConstraintName(errors.New("boom")))
}

func TestMigrate_InvalidURL(t *testing.T) {
	fsys := fstest.MapFS{
		"000001_init.up.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}
	err := Migrate(fsys, "notadriver://nowhere")
	assert.Error(t, err)
}

func TestClose_NilPool(t *testing.T) {
	assert.NotPanics(t, func() { Close(nil) })
}
