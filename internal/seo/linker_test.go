package seo

import (
	"testing"

	"github.com/neuroeducatimo/landing/internal/siteconfig"
	"github.com/neuroeducatimo/landing/pkg/locale"
	"github.com/stretchr/testify/assert"
)

type staticKeywords map[locale.Code][]siteconfig.Keyword

func (s staticKeywords) KeywordTable() map[locale.Code][]siteconfig.Keyword {
	return s
}

func TestLinkify_SingleSubstitutionPerKeyword(t *testing.T) {
	l := NewLinker(staticKeywords{
		locale.EN: {{Word: "memory", Link: "/en#features"}},
	})

	got := l.Linkify("<p>memory and memory</p>", locale.EN)
	assert.Equal(t, `<p><a href="/en#features">memory</a> and memory</p>`, got)
}

func TestLinkify_PreservesMatchedCase(t *testing.T) {
	l := NewLinker(staticKeywords{
		locale.EN: {{Word: "schulte", Link: "/en#faq"}},
	})

	got := l.Linkify("Try the Schulte table", locale.EN)
	assert.Equal(t, `Try the <a href="/en#faq">Schulte</a> table`, got)
}

func TestLinkify_Boundaries(t *testing.T) {
	l := NewLinker(staticKeywords{
		locale.UK: {{Word: "когнітивн", Link: "/uk#features"}},
		locale.EN: {{Word: "platform", Link: "/en#hero"}},
	})

	tests := []struct {
		name  string
		input string
		lang  locale.Code
		want  string
	}{
		{
			name:  "stem as standalone word",
			input: "Учні вивчають когнітивн навички",
			lang:  locale.UK,
			want:  `Учні вивчають <a href="/uk#features">когнітивн</a> навички`,
		},
		{
			name:  "stem inside longer word is left alone",
			input: "когнітивні навички",
			lang:  locale.UK,
			want:  "когнітивні навички",
		},
		{
			name:  "start of text",
			input: "platform overview",
			lang:  locale.EN,
			want:  `<a href="/en#hero">platform</a> overview`,
		},
		{
			name:  "end of text",
			input: "our platform",
			lang:  locale.EN,
			want:  `our <a href="/en#hero">platform</a>`,
		},
		{
			name:  "between tags",
			input: "<b>platform</b>",
			lang:  locale.EN,
			want:  `<b><a href="/en#hero">platform</a></b>`,
		},
		{
			name:  "punctuation is not a boundary",
			input: "platform, then platform.",
			lang:  locale.EN,
			want:  "platform, then platform.",
		},
		{
			name:  "attribute values are not matched",
			input: `<img alt="platform-logo"> platform`,
			lang:  locale.EN,
			want:  `<img alt="platform-logo"> <a href="/en#hero">platform</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Linkify(tt.input, tt.lang))
		})
	}
}

func TestLinkify_UnknownLanguageUnchanged(t *testing.T) {
	l := NewLinker(staticKeywords{})
	html := "<p>memory</p>"
	assert.Equal(t, html, l.Linkify(html, locale.PL))
}

func TestLinkify_MultipleKeywordsInOrder(t *testing.T) {
	l := NewLinker(siteconfig.Default())

	got := l.Linkify("<p>attention and memory matter for every teacher</p>", locale.EN)
	assert.Equal(t,
		`<p><a href="/en#features">attention</a> and <a href="/en#features">memory</a> matter for every <a href="/en#audience">teacher</a></p>`,
		got)
}

func TestLinkify_MultiWordKeyword(t *testing.T) {
	l := NewLinker(siteconfig.Default())

	got := l.Linkify("<p>neuro educatimo helps</p>", locale.PL)
	assert.Equal(t, `<p><a href="/pl#hero">neuro educatimo</a> helps</p>`, got)
}
