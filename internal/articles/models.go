package articles

import (
	"time"

	"github.com/google/uuid"
	"github.com/neuroeducatimo/landing/pkg/locale"
	"github.com/neuroeducatimo/landing/pkg/markup"
)

// Article is a blog post in one language. Translations of the same post share
// a TranslationGroupID.
type Article struct {
	ID                 uuid.UUID   `json:"id" db:"id"`
	Slug               string      `json:"slug" db:"slug"`
	Title              string      `json:"title" db:"title"`
	Content            string      `json:"content" db:"content"`
	Summary            string      `json:"summary" db:"summary"`
	Language           locale.Code `json:"language" db:"language"`
	Keywords           string      `json:"keywords" db:"keywords"`
	ImageURL           string      `json:"image_url" db:"image_url"`
	TranslationGroupID *uuid.UUID  `json:"translation_group_id,omitempty" db:"translation_group_id"`
	PublishedAt        time.Time   `json:"published_at" db:"published_at"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

// LastModified returns UpdatedAt when it is set and CreatedAt otherwise.
// Imported rows may carry an UpdatedAt older than CreatedAt; it still wins.
func (a *Article) LastModified() time.Time {
	if !a.UpdatedAt.IsZero() {
		return a.UpdatedAt
	}
	return a.CreatedAt
}

// Alternate is a translation of an article
type Alternate struct {
	Language locale.Code `json:"language"`
	Slug     string      `json:"slug"`
}

// CreateArticleRequest is the request body for creating an article
type CreateArticleRequest struct {
	Title              string        `json:"title" validate:"required,max=300"`
	Slug               string        `json:"slug" validate:"max=200"`
	Content            string        `json:"content"`
	ContentFormat      markup.Format `json:"content_format" validate:"content_format"`
	Summary            string        `json:"summary" validate:"max=1000"`
	Language           string        `json:"language" validate:"required,lang"`
	Keywords           string        `json:"keywords" validate:"max=500"`
	ImageURL           string        `json:"image_url" validate:"max=2048"`
	TranslationGroupID *uuid.UUID    `json:"translation_group_id,omitempty"`
	TranslationOf      string        `json:"translation_of,omitempty"`
	PublishedAt        *time.Time    `json:"published_at,omitempty"`
}

// UpdateArticleRequest is the request body for updating an article.
// Nil fields are left unchanged.
type UpdateArticleRequest struct {
	Title              *string       `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Slug               *string       `json:"slug,omitempty" validate:"omitempty,max=200"`
	Content            *string       `json:"content,omitempty"`
	ContentFormat      markup.Format `json:"content_format" validate:"content_format"`
	Summary            *string       `json:"summary,omitempty" validate:"omitempty,max=1000"`
	Language           *string       `json:"language,omitempty" validate:"omitempty,lang"`
	Keywords           *string       `json:"keywords,omitempty" validate:"omitempty,max=500"`
	ImageURL           *string       `json:"image_url,omitempty" validate:"omitempty,max=2048"`
	TranslationGroupID *uuid.UUID    `json:"translation_group_id,omitempty"`
	PublishedAt        *time.Time    `json:"published_at,omitempty"`
}
