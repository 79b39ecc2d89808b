package leads

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var leadColumns = []string{
	"id", "email", "organization_name", "language", "phone", "org_type",
	"students_count", "source", "quiz_answers", "created_at",
}

// Repository handles database operations for leads
type Repository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

// NewRepository creates a new leads repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts a new lead
func (r *Repository) Create(ctx context.Context, l *Lead) error {
	query, args, err := r.psql.Insert("leads").
		Columns(leadColumns...).
		Values(
			l.ID, l.Email, l.OrganizationName, l.Language,
			nullString(l.Phone), nullString(l.OrgType), nullString(l.StudentsCount),
			l.Source, nullString(string(l.QuizAnswers)), l.CreatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build lead insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// List returns leads newest first with the total count
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Lead, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM leads").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	query, args, err := r.psql.Select(leadColumns...).
		From("leads").
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build leads query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]*Lead, 0)
	for rows.Next() {
		var (
			l                              Lead
			phone, orgType, students, quiz sql.NullString
		)
		if err := rows.Scan(
			&l.ID, &l.Email, &l.OrganizationName, &l.Language, &phone, &orgType,
			&students, &l.Source, &quiz, &l.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan lead: %w", err)
		}
		l.Phone = phone.String
		l.OrgType = orgType.String
		l.StudentsCount = students.String
		if quiz.Valid {
			l.QuizAnswers = json.RawMessage(quiz.String)
		}
		leads = append(leads, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, total, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
