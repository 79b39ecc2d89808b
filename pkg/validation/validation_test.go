package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type articleInput struct {
	Title    string `json:"title" validate:"required,max=300"`
	Slug     string `json:"slug" validate:"omitempty,slug"`
	Language string `json:"language" validate:"required,lang"`
	Format   string `json:"content_format" validate:"content_format"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(&articleInput{Title: "Hello", Slug: "hello-world", Language: "ua", Format: "markdown"})
	assert.NoError(t, err)
}

func TestValidateStruct_FieldErrors(t *testing.T) {
	err := ValidateStruct(&articleInput{Slug: "Bad Slug", Language: "de", Format: "rtf", Email: "nope"})
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)

	tests := map[string]string{
		"title":          "title is required",
		"slug":           "slug may contain only lowercase letters, digits and single dashes",
		"language":       "language must be a supported language (ru, uk, en, pl, cs)",
		"content_format": "content_format must be html or markdown",
		"email":          "email must be a valid email address",
	}
	for field, msg := range tests {
		got, exists := valErr.GetFieldError(field)
		assert.True(t, exists, field)
		assert.Equal(t, msg, got)
	}
}

func TestIsSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"hello-world", true},
		{"привет-мир", true},
		{"post-2024", true},
		{"", false},
		{"-lead", false},
		{"trail-", false},
		{"double--dash", false},
		{"Upper", false},
		{"with space", false},
		{"под_чёрк", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSlug(tt.slug))
		})
	}
}

func TestValidationError_ErrorIsSorted(t *testing.T) {
	v := &ValidationError{}
	assert.False(t, v.HasErrors())
	v.AddError("b", "second")
	v.AddError("a", "first")
	assert.True(t, v.HasErrors())
	assert.Equal(t, "a: first; b: second", v.Error())
}
