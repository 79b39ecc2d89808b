package seo

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup from html and collapses whitespace
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Truncate shortens s to at most limit runes, cutting at a word boundary when
// one is available and appending an ellipsis.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:limit-1])
	if i := strings.LastIndexAny(cut, " \t\n"); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:-") + "…"
}

// Describe returns summary when set, otherwise a plain-text excerpt of html
func Describe(summary, html string, limit int) string {
	if s := strings.TrimSpace(summary); s != "" {
		return s
	}
	return Truncate(PlainText(html), limit)
}
