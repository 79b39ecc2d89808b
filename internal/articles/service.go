package articles

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neuroeducatimo/landing/internal/seo"
	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/locale"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/neuroeducatimo/landing/pkg/markup"
	"github.com/neuroeducatimo/landing/pkg/validation"
	"go.uber.org/zap"
)

const summaryLimit = 200

// Service handles article business logic
type Service struct {
	repo     RepositoryInterface
	cache    Cache
	renderer *markup.Renderer
	now      func() time.Time
}

// NewService creates a new articles service. A nil cache disables caching.
func NewService(repo RepositoryInterface, cache Cache, renderer *markup.Renderer) *Service {
	if cache == nil {
		cache = NoopCache{}
	}
	if renderer == nil {
		renderer = markup.NewRenderer()
	}
	return &Service{repo: repo, cache: cache, renderer: renderer, now: time.Now}
}

// GetBySlug returns the article with slug
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	if a, ok := s.cache.GetArticle(ctx, slug); ok {
		return a, nil
	}

	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.mapError(ctx, "get article", slug, err)
	}
	s.cache.SetArticle(ctx, a)
	return a, nil
}

// ListByLanguage returns articles newest first. A nil lang lists every
// language and is meant for admin screens; public callers pass a resolved code.
func (s *Service) ListByLanguage(ctx context.Context, lang *locale.Code) ([]*Article, error) {
	if list, ok := s.cache.GetList(ctx, lang); ok {
		return list, nil
	}

	list, err := s.repo.List(ctx, lang)
	if err != nil {
		return nil, s.mapError(ctx, "list articles", "", err)
	}
	s.cache.SetList(ctx, lang, list)
	return list, nil
}

// ListAll returns every article, newest first
func (s *Service) ListAll(ctx context.Context) ([]*Article, error) {
	return s.ListByLanguage(ctx, nil)
}

// Create stores a new article
func (s *Service) Create(ctx context.Context, req *CreateArticleRequest) (*Article, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, common.NewBadRequestError(err.Error(), err)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, common.NewBadRequestError("title is required", nil)
	}
	lang, _ := locale.Normalize(req.Language)

	content, err := s.renderer.Render(req.Content, req.ContentFormat)
	if err != nil {
		return nil, common.NewBadRequestError(err.Error(), err)
	}

	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(req.Title)
	}
	if slug == "" {
		slug = fallbackSlug()
	}

	group := req.TranslationGroupID
	if group == nil && req.TranslationOf != "" {
		source, err := s.repo.GetBySlug(ctx, req.TranslationOf)
		if err != nil {
			if errors.Is(err, ErrArticleNotFound) {
				return nil, common.NewBadRequestError("translation_of refers to an unknown article", err)
			}
			return nil, s.mapError(ctx, "get translation source", req.TranslationOf, err)
		}
		group = source.TranslationGroupID
		if group == nil {
			// the source predates translation groups; adopt its ID as the group
			id := source.ID
			source.TranslationGroupID = &id
			source.UpdatedAt = s.now().UTC()
			if err := s.repo.Update(ctx, source); err != nil {
				return nil, s.mapError(ctx, "link translation source", source.Slug, err)
			}
			group = &id
		}
	}
	if group == nil {
		id := uuid.New()
		group = &id
	}

	now := s.now().UTC()
	a := &Article{
		ID:                 uuid.New(),
		Slug:               slug,
		Title:              strings.TrimSpace(req.Title),
		Content:            content,
		Summary:            strings.TrimSpace(req.Summary),
		Language:           lang,
		Keywords:           strings.TrimSpace(req.Keywords),
		ImageURL:           strings.TrimSpace(req.ImageURL),
		TranslationGroupID: group,
		PublishedAt:        now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.PublishedAt != nil {
		a.PublishedAt = req.PublishedAt.UTC()
	}
	if a.Summary == "" {
		a.Summary = seo.Truncate(seo.PlainText(a.Content), summaryLimit)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, s.mapError(ctx, "create article", a.Slug, err)
	}
	s.cache.Invalidate(ctx, a.Slug, req.TranslationOf)

	logger.WithContext(ctx).Info("Article created",
		zap.String("article_id", a.ID.String()),
		zap.String("slug", a.Slug),
		zap.String("language", string(a.Language)),
	)
	return a, nil
}

// Update changes the supplied fields of an article. ID, creation time and
// (unless supplied) slug and translation group are preserved.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateArticleRequest) (*Article, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, common.NewBadRequestError(err.Error(), err)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(ctx, "get article", id.String(), err)
	}
	oldSlug := a.Slug

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, common.NewBadRequestError("title must not be empty", nil)
		}
		a.Title = title
	}
	if req.Slug != nil {
		slug := Slugify(*req.Slug)
		if slug == "" {
			return nil, common.NewBadRequestError("slug must contain letters or digits", nil)
		}
		a.Slug = slug
	}
	if req.Content != nil {
		content, err := s.renderer.Render(*req.Content, req.ContentFormat)
		if err != nil {
			return nil, common.NewBadRequestError(err.Error(), err)
		}
		a.Content = content
	}
	if req.Summary != nil {
		a.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.Language != nil {
		a.Language, _ = locale.Normalize(*req.Language)
	}
	if req.Keywords != nil {
		a.Keywords = strings.TrimSpace(*req.Keywords)
	}
	if req.ImageURL != nil {
		a.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.TranslationGroupID != nil {
		group := *req.TranslationGroupID
		a.TranslationGroupID = &group
	}
	if req.PublishedAt != nil {
		a.PublishedAt = req.PublishedAt.UTC()
	}
	if a.Summary == "" && req.Content != nil {
		a.Summary = seo.Truncate(seo.PlainText(a.Content), summaryLimit)
	}
	a.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, s.mapError(ctx, "update article", id.String(), err)
	}
	s.cache.Invalidate(ctx, oldSlug, a.Slug)

	logger.WithContext(ctx).Info("Article updated", zap.String("article_id", a.ID.String()), zap.String("slug", a.Slug))
	return a, nil
}

// Delete removes an article
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.mapError(ctx, "get article", id.String(), err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(ctx, "delete article", id.String(), err)
	}
	s.cache.Invalidate(ctx, a.Slug)

	logger.WithContext(ctx).Info("Article deleted", zap.String("article_id", id.String()), zap.String("slug", a.Slug))
	return nil
}

// ListAlternates returns one entry per language of the article's translation
// group, in supported-language order. An article without a group is its own
// only alternate.
func (s *Service) ListAlternates(ctx context.Context, a *Article) ([]Alternate, error) {
	self := []Alternate{{Language: a.Language, Slug: a.Slug}}
	if a.TranslationGroupID == nil {
		return self, nil
	}

	members, err := s.repo.ListByTranslationGroup(ctx, *a.TranslationGroupID)
	if err != nil {
		return nil, s.mapError(ctx, "list translations", a.Slug, err)
	}

	// members arrive oldest first; the first article per language wins, except
	// that the current article always represents its own language
	byLang := map[locale.Code]Alternate{a.Language: self[0]}
	for _, m := range members {
		if _, seen := byLang[m.Language]; !seen {
			byLang[m.Language] = Alternate{Language: m.Language, Slug: m.Slug}
		}
	}

	alternates := make([]Alternate, 0, len(byLang))
	for _, alt := range byLang {
		alternates = append(alternates, alt)
	}
	sort.Slice(alternates, func(i, j int) bool {
		li, lj := locale.Index(alternates[i].Language), locale.Index(alternates[j].Language)
		if li != lj {
			return li < lj
		}
		return alternates[i].Language < alternates[j].Language
	})
	return alternates, nil
}

// DefaultAlternate picks the x-default translation: English when present,
// otherwise the first alternate.
func DefaultAlternate(alternates []Alternate) *Alternate {
	for i := range alternates {
		if alternates[i].Language == locale.EN {
			return &alternates[i]
		}
	}
	if len(alternates) == 0 {
		return nil
	}
	return &alternates[0]
}

func (s *Service) mapError(ctx context.Context, op, ref string, err error) error {
	switch {
	case errors.Is(err, ErrArticleNotFound):
		return common.NewNotFoundError("article not found", err)
	case errors.Is(err, ErrSlugTaken):
		return common.NewConflictError("an article with this slug already exists")
	}
	logger.WithContext(ctx).Error("Article store failure",
		zap.String("operation", op),
		zap.String("ref", ref),
		zap.Error(err),
	)
	return common.NewInternalError("failed to "+op, err)
}
