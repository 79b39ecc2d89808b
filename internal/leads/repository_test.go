package leads

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	lead := &Lead{
		ID:               uuid.New(),
		Email:            "a@b.c",
		OrganizationName: "School 5",
		Language:         "ua",
		Phone:            "+380",
		Source:           SourceQuiz,
		QuizAnswers:      json.RawMessage(`{"goal":"attention"}`),
		CreatedAt:        fixedNow(),
	}

	mock.ExpectExec(`INSERT INTO leads \(id,email,organization_name,language,phone,org_type,students_count,source,quiz_answers,created_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9,\$10\)`).
		WithArgs(lead.ID, "a@b.c", "School 5", "ua", "+380", nil, nil, SourceQuiz, `{"goal":"attention"}`, fixedNow()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), lead))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Error(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO leads`).WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), &Lead{ID: uuid.New(), Email: "a@b.c", OrganizationName: "x", Source: SourceLandingForm})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create lead")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery(`SELECT .* FROM leads ORDER BY created_at DESC, id LIMIT 20 OFFSET 40`).
		WillReturnRows(sqlmock.NewRows(leadColumns).
			AddRow(id.String(), "a@b.c", "School", "pl", nil, "school", "120", SourceQuiz, []byte(`{"goal":"memory"}`), created))

	items, total, err := repo.List(context.Background(), 20, 40)

	require.NoError(t, err)
	assert.Equal(t, int64(41), total)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Empty(t, items[0].Phone)
	assert.Equal(t, "school", items[0].OrgType)
	assert.JSONEq(t, `{"goal":"memory"}`, string(items[0].QuizAnswers))
	assert.NoError(t, mock.ExpectationsWereMet())
}
