package siteconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neuroeducatimo/landing/pkg/i18n"
	"github.com/neuroeducatimo/landing/pkg/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasEverySupportedLanguage(t *testing.T) {
	b := Default()
	for _, lang := range locale.Supported() {
		assert.NotEmpty(t, b.Keywords(lang), "keywords for %s", lang)
		assert.NotEmpty(t, b.quiz[lang], "quiz segments for %s", lang)
	}
	assert.Equal(t, "Back to Blog", b.Catalog().Translate(i18n.KeyBackToBlog, "en"))
}

func TestKeywords_ReturnsCopy(t *testing.T) {
	b := Default()
	kw := b.Keywords(locale.EN)
	kw[0].Word = "mutated"
	assert.Equal(t, "attention", b.Keywords(locale.EN)[0].Word)
}

func TestParse_NormalizesLegacyKeys(t *testing.T) {
	data := []byte(`
keywords:
  ua:
    - word: увага
      link: /uk#features
terms:
  cz:
    blogTitle: Náš blog
quiz_segments:
  en:
    - id: focus
      question: challenge
      patterns: [focus]
      title: Focus
      body: Focus body
`)

	b, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []Keyword{{Word: "увага", Link: "/uk#features"}}, b.Keywords(locale.UK))
	assert.Empty(t, b.Keywords(locale.EN))
	assert.Equal(t, "Náš blog", b.Catalog().Translate(i18n.KeyBlogTitle, "cs"))
	// unset terms keep defaults
	assert.Equal(t, "Zpět na blog", b.Catalog().Translate(i18n.KeyBackToBlog, "cs"))
	assert.Len(t, b.quiz[locale.EN], 1)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "keywords: [unterminated"},
		{"unknown language", "keywords:\n  de:\n    - word: a\n      link: /b\n"},
		{"missing link", "keywords:\n  en:\n    - word: a\n"},
		{"unknown quiz language", "quiz_segments:\n  fr: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	b, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, b.Keywords(locale.RU))

	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("terms:\n  en:\n    menuBlog: News\n"), 0o600))
	b, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "News", b.Catalog().Terms("en").MenuBlog)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMatchQuizSegments(t *testing.T) {
	b := Default()

	tests := []struct {
		name    string
		lang    locale.Code
		answers map[string]interface{}
		want    []string
	}{
		{
			name:    "single match",
			lang:    locale.EN,
			answers: map[string]interface{}{"challenge": "Students lose FOCUS quickly"},
			want:    []string{"attention"},
		},
		{
			name: "array answers match several",
			lang: locale.EN,
			answers: map[string]interface{}{
				"goals": []interface{}{"better memory", "regular assessment"},
			},
			want: []string{"memory", "diagnostics"},
		},
		{
			name:    "localized patterns",
			lang:    locale.PL,
			answers: map[string]interface{}{"q1": "Problemy z koncentracją"},
			want:    []string{"attention"},
		},
		{
			name:    "no match",
			lang:    locale.EN,
			answers: map[string]interface{}{"q1": 42},
			want:    nil,
		},
		{
			name:    "no answers",
			lang:    locale.EN,
			answers: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, seg := range b.MatchQuizSegments(tt.lang, tt.answers) {
				ids = append(ids, seg.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMatchQuizSegments_QuestionScoped(t *testing.T) {
	b, err := Parse([]byte(`
quiz_segments:
  en:
    - id: focus
      question: challenge
      patterns: [focus]
      title: Focus
      body: body
`))
	require.NoError(t, err)

	assert.Empty(t, b.MatchQuizSegments(locale.EN, map[string]interface{}{"other": "focus"}))
	assert.Len(t, b.MatchQuizSegments(locale.EN, map[string]interface{}{"challenge": "focus"}), 1)
}
