package articles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/neuroeducatimo/landing/pkg/database"
	"github.com/neuroeducatimo/landing/pkg/locale"
)

var (
	// ErrArticleNotFound is returned when no article matches
	ErrArticleNotFound = errors.New("article not found")
	// ErrSlugTaken is returned when another article already uses the slug
	ErrSlugTaken = errors.New("slug already exists")
)

var articleColumns = []string{
	"id", "slug", "title", "content", "summary", "language", "keywords",
	"image_url", "translation_group_id", "published_at", "created_at", "updated_at",
}

// Repository handles database operations for articles
type Repository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

// NewRepository creates a new articles repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts a new article
func (r *Repository) Create(ctx context.Context, a *Article) error {
	query, args, err := r.psql.Insert("articles").
		Columns(articleColumns...).
		Values(
			a.ID, a.Slug, a.Title, a.Content, a.Summary, string(a.Language), a.Keywords,
			a.ImageURL, nullUUID(a.TranslationGroupID), a.PublishedAt, a.CreatedAt, a.UpdatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build article insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// GetBySlug retrieves an article by slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	return r.getOne(ctx, sq.Eq{"slug": slug})
}

// GetByID retrieves an article by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, where sq.Eq) (*Article, error) {
	query, args, err := r.psql.Select(articleColumns...).From("articles").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build article query: %w", err)
	}

	a, err := scanArticle(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return a, nil
}

// List returns articles newest first. A nil lang returns every language.
func (r *Repository) List(ctx context.Context, lang *locale.Code) ([]*Article, error) {
	builder := r.psql.Select(articleColumns...).From("articles")
	if lang != nil {
		builder = builder.Where(sq.Eq{"language": string(*lang)})
	}
	return r.query(ctx, builder.OrderBy("created_at DESC"))
}

// ListByTranslationGroup returns every article of a translation group, oldest first
func (r *Repository) ListByTranslationGroup(ctx context.Context, groupID uuid.UUID) ([]*Article, error) {
	return r.query(ctx, r.psql.Select(articleColumns...).From("articles").
		Where(sq.Eq{"translation_group_id": groupID}).
		OrderBy("created_at ASC"))
}

func (r *Repository) query(ctx context.Context, builder sq.SelectBuilder) ([]*Article, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build article query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	items := make([]*Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}
	return items, nil
}

// Update overwrites every mutable column of an article
func (r *Repository) Update(ctx context.Context, a *Article) error {
	query, args, err := r.psql.Update("articles").
		SetMap(map[string]interface{}{
			"slug":                 a.Slug,
			"title":                a.Title,
			"content":              a.Content,
			"summary":              a.Summary,
			"language":             string(a.Language),
			"keywords":             a.Keywords,
			"image_url":            a.ImageURL,
			"translation_group_id": nullUUID(a.TranslationGroupID),
			"published_at":         a.PublishedAt,
			"updated_at":           a.UpdatedAt,
		}).
		Where(sq.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build article update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to update article: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes an article permanently
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.psql.Delete("articles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build article delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrArticleNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*Article, error) {
	var (
		a         Article
		lang      string
		group     uuid.NullUUID
		published sql.NullTime
	)
	err := row.Scan(
		&a.ID, &a.Slug, &a.Title, &a.Content, &a.Summary, &lang, &a.Keywords,
		&a.ImageURL, &group, &published, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Language = locale.Code(lang)
	if group.Valid {
		id := group.UUID
		a.TranslationGroupID = &id
	}
	if published.Valid {
		a.PublishedAt = published.Time
	} else {
		a.PublishedAt = a.CreatedAt
	}
	return &a, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
