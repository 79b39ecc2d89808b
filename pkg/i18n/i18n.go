// Package i18n provides the localized strings shown around blog content and in
// outgoing emails. A Catalog is immutable once built and safe for concurrent use.
package i18n

import "fmt"

// Fallback language used when a key or language is not found.
const DefaultLang = "en"

// Catalog maps key → language code → format string
type Catalog struct {
	entries map[string]map[string]string
}

// NewCatalog returns the compiled-in catalog with overrides applied on top.
// Override maps are copied.
func NewCatalog(overrides map[string]map[string]string) *Catalog {
	entries := make(map[string]map[string]string, len(translations)+len(overrides))
	for key, langs := range translations {
		entries[key] = copyLangs(langs)
	}
	for key, langs := range overrides {
		if entries[key] == nil {
			entries[key] = make(map[string]string, len(langs))
		}
		for lang, s := range langs {
			if s != "" {
				entries[key][lang] = s
			}
		}
	}
	return &Catalog{entries: entries}
}

// Translate returns a localized string for key in lang.
// Extra args are passed to fmt.Sprintf if the translation contains format verbs.
// Falls back to English if lang is unsupported or key is missing.
func (c *Catalog) Translate(key, lang string, args ...interface{}) string {
	if lang == "" {
		lang = DefaultLang
	}

	langMap, ok := c.entries[key]
	if !ok {
		// Unknown keys are returned as-is so gaps are visible.
		return key
	}

	tmpl, ok := langMap[lang]
	if !ok {
		tmpl, ok = langMap[DefaultLang]
		if !ok {
			return key
		}
	}

	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Terms returns the blog chrome strings for lang
func (c *Catalog) Terms(lang string) Terms {
	return Terms{
		BlogTitle:    c.Translate(KeyBlogTitle, lang),
		BlogSubtitle: c.Translate(KeyBlogSubtitle, lang),
		ReadMore:     c.Translate(KeyReadMore, lang),
		BackToBlog:   c.Translate(KeyBackToBlog, lang),
		NoArticles:   c.Translate(KeyNoArticles, lang),
		MenuBlog:     c.Translate(KeyMenuBlog, lang),
	}
}

// Terms are the localized labels around the blog
type Terms struct {
	BlogTitle    string `json:"blogTitle" yaml:"blogTitle"`
	BlogSubtitle string `json:"blogSubtitle" yaml:"blogSubtitle"`
	ReadMore     string `json:"readMore" yaml:"readMore"`
	BackToBlog   string `json:"backToBlog" yaml:"backToBlog"`
	NoArticles   string `json:"noArticles" yaml:"noArticles"`
	MenuBlog     string `json:"menuBlog" yaml:"menuBlog"`
}

func copyLangs(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
