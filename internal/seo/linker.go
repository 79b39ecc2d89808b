package seo

import (
	"regexp"
	"strings"

	"github.com/neuroeducatimo/landing/internal/siteconfig"
	"github.com/neuroeducatimo/landing/pkg/locale"
)

// KeywordSource provides the ordered keyword table per language
type KeywordSource interface {
	KeywordTable() map[locale.Code][]siteconfig.Keyword
}

type compiledKeyword struct {
	link    string
	pattern *regexp.Regexp
}

// Linker wraps the first standalone occurrence of each configured keyword in
// an anchor pointing at its page section.
type Linker struct {
	keywords map[locale.Code][]compiledKeyword
}

// NewLinker compiles the keyword table once
func NewLinker(src KeywordSource) *Linker {
	table := src.KeywordTable()
	l := &Linker{keywords: make(map[locale.Code][]compiledKeyword, len(table))}
	for lang, list := range table {
		compiled := make([]compiledKeyword, 0, len(list))
		for _, kw := range list {
			word := strings.TrimSpace(kw.Word)
			if word == "" {
				continue
			}
			// group 1 is the left boundary, group 2 the keyword itself
			re := regexp.MustCompile(`(?i)(^|[\s\p{Z}>])(` + regexp.QuoteMeta(word) + `)(?:$|[\s\p{Z}<])`)
			compiled = append(compiled, compiledKeyword{link: kw.Link, pattern: re})
		}
		l.keywords[lang] = compiled
	}
	return l
}

// Linkify returns html with at most one link inserted per keyword of lang.
// Text outside the matched words is returned unchanged.
func (l *Linker) Linkify(html string, lang locale.Code) string {
	for _, kw := range l.keywords[lang] {
		loc := kw.pattern.FindStringSubmatchIndex(html)
		if loc == nil {
			continue
		}
		start, end := loc[4], loc[5]
		var b strings.Builder
		b.Grow(len(html) + len(kw.link) + 15)
		b.WriteString(html[:start])
		b.WriteString(`<a href="`)
		b.WriteString(kw.link)
		b.WriteString(`">`)
		b.WriteString(html[start:end])
		b.WriteString(`</a>`)
		b.WriteString(html[end:])
		html = b.String()
	}
	return html
}
