// Package siteconfig holds the localized content tables the site is built
// from: keyword links for articles, blog terms and quiz email segments.
// A Bundle is loaded once at startup and never mutated afterwards.
package siteconfig

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/neuroeducatimo/landing/pkg/i18n"
	"github.com/neuroeducatimo/landing/pkg/locale"
	"gopkg.in/yaml.v3"
)

// Keyword is a word linked to a page section in article bodies
type Keyword struct {
	Word string `yaml:"word" json:"word"`
	Link string `yaml:"link" json:"link"`
}

// QuizSegment is a paragraph of the quiz thank-you email, chosen when a quiz
// answer contains one of its patterns.
type QuizSegment struct {
	ID       string   `yaml:"id" json:"id"`
	Question string   `yaml:"question,omitempty" json:"question,omitempty"`
	Patterns []string `yaml:"patterns" json:"patterns"`
	Title    string   `yaml:"title" json:"title"`
	Body     string   `yaml:"body" json:"body"`
}

// Bundle is the immutable set of content tables
type Bundle struct {
	keywords map[locale.Code][]Keyword
	quiz     map[locale.Code][]QuizSegment
	catalog  *i18n.Catalog
}

// file is the on-disk YAML layout. Language keys may use legacy aliases.
type file struct {
	Keywords     map[string][]Keyword     `yaml:"keywords"`
	Terms        map[string]i18n.Terms    `yaml:"terms"`
	QuizSegments map[string][]QuizSegment `yaml:"quiz_segments"`
}

// Default returns the compiled-in bundle
func Default() *Bundle {
	return &Bundle{
		keywords: defaultKeywords(),
		quiz:     defaultQuizSegments(),
		catalog:  i18n.NewCatalog(nil),
	}
}

// Load reads a YAML bundle from path. Sections missing from the file keep
// their compiled-in defaults. An empty path returns Default().
func Load(path string) (*Bundle, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site content file: %w", err)
	}
	return Parse(data)
}

// Parse builds a bundle from YAML
func Parse(data []byte) (*Bundle, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse site content: %w", err)
	}

	b := Default()

	if len(f.Keywords) > 0 {
		kw := make(map[locale.Code][]Keyword, len(f.Keywords))
		for raw, list := range f.Keywords {
			code, ok := locale.Normalize(raw)
			if !ok {
				return nil, fmt.Errorf("keywords: unsupported language %q", raw)
			}
			for i, k := range list {
				if strings.TrimSpace(k.Word) == "" || strings.TrimSpace(k.Link) == "" {
					return nil, fmt.Errorf("keywords.%s[%d]: word and link are required", raw, i)
				}
			}
			kw[code] = append([]Keyword(nil), list...)
		}
		b.keywords = kw
	}

	if len(f.QuizSegments) > 0 {
		qs := make(map[locale.Code][]QuizSegment, len(f.QuizSegments))
		for raw, list := range f.QuizSegments {
			code, ok := locale.Normalize(raw)
			if !ok {
				return nil, fmt.Errorf("quiz_segments: unsupported language %q", raw)
			}
			qs[code] = append([]QuizSegment(nil), list...)
		}
		b.quiz = qs
	}

	if len(f.Terms) > 0 {
		overrides := map[string]map[string]string{}
		for raw, t := range f.Terms {
			code, ok := locale.Normalize(raw)
			if !ok {
				return nil, fmt.Errorf("terms: unsupported language %q", raw)
			}
			lang := string(code)
			set := func(key, value string) {
				if overrides[key] == nil {
					overrides[key] = map[string]string{}
				}
				overrides[key][lang] = value
			}
			set(i18n.KeyBlogTitle, t.BlogTitle)
			set(i18n.KeyBlogSubtitle, t.BlogSubtitle)
			set(i18n.KeyReadMore, t.ReadMore)
			set(i18n.KeyBackToBlog, t.BackToBlog)
			set(i18n.KeyNoArticles, t.NoArticles)
			set(i18n.KeyMenuBlog, t.MenuBlog)
		}
		b.catalog = i18n.NewCatalog(overrides)
	}

	return b, nil
}

// Keywords returns the ordered keyword list for lang. Callers get a copy.
func (b *Bundle) Keywords(lang locale.Code) []Keyword {
	return append([]Keyword(nil), b.keywords[lang]...)
}

// KeywordTable returns copies of every keyword list
func (b *Bundle) KeywordTable() map[locale.Code][]Keyword {
	out := make(map[locale.Code][]Keyword, len(b.keywords))
	for lang, list := range b.keywords {
		out[lang] = append([]Keyword(nil), list...)
	}
	return out
}

// Catalog returns the string catalog
func (b *Bundle) Catalog() *i18n.Catalog {
	return b.catalog
}

// MatchQuizSegments returns the segments of lang whose patterns occur in the
// answers, in configuration order. Matching is case-insensitive.
func (b *Bundle) MatchQuizSegments(lang locale.Code, answers map[string]interface{}) []QuizSegment {
	segments := b.quiz[lang]
	if len(segments) == 0 || len(answers) == 0 {
		return nil
	}

	flat := flattenAnswers(answers)
	var all []string
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		all = append(all, flat[k]...)
	}

	var matched []QuizSegment
	for _, seg := range segments {
		values := all
		if seg.Question != "" {
			values = flat[seg.Question]
		}
		if anyContains(values, seg.Patterns) {
			matched = append(matched, seg)
		}
	}
	return matched
}

func anyContains(values, patterns []string) bool {
	for _, v := range values {
		lv := strings.ToLower(v)
		for _, p := range patterns {
			if p != "" && strings.Contains(lv, strings.ToLower(p)) {
				return true
			}
		}
	}
	return false
}

// flattenAnswers turns each answer into the list of strings it contains
func flattenAnswers(answers map[string]interface{}) map[string][]string {
	out := make(map[string][]string, len(answers))
	for k, v := range answers {
		out[k] = collectStrings(v, nil)
	}
	return out
}

func collectStrings(v interface{}, acc []string) []string {
	switch t := v.(type) {
	case string:
		return append(acc, t)
	case []interface{}:
		for _, item := range t {
			acc = collectStrings(item, acc)
		}
		return acc
	case map[string]interface{}:
		for _, item := range t {
			acc = collectStrings(item, acc)
		}
		return acc
	case nil:
		return acc
	default:
		return append(acc, fmt.Sprint(t))
	}
}
