package articles

import (
	"context"

	"github.com/google/uuid"
	"github.com/neuroeducatimo/landing/pkg/locale"
)

// RepositoryInterface defines the interface for article repository operations
type RepositoryInterface interface {
	Create(ctx context.Context, a *Article) error
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	List(ctx context.Context, lang *locale.Code) ([]*Article, error)
	ListByTranslationGroup(ctx context.Context, groupID uuid.UUID) ([]*Article, error)
	Update(ctx context.Context, a *Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Cache is a best-effort read-through cache. Implementations swallow their
// own errors and report misses instead.
type Cache interface {
	GetArticle(ctx context.Context, slug string) (*Article, bool)
	SetArticle(ctx context.Context, a *Article)
	GetList(ctx context.Context, lang *locale.Code) ([]*Article, bool)
	SetList(ctx context.Context, lang *locale.Code, list []*Article)
	Invalidate(ctx context.Context, slugs ...string)
}
