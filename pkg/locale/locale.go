// Package locale resolves the display language of a request from the URL path,
// the page's declared language and the browser's Accept-Language header.
package locale

import (
	"path"
	"strings"

	"golang.org/x/text/language"
)

// Code is a canonical supported language code
type Code string

const (
	RU Code = "ru"
	UK Code = "uk"
	EN Code = "en"
	PL Code = "pl"
	CS Code = "cs"
)

var supported = []Code{RU, UK, EN, PL, CS}

// aliases maps legacy codes still found in URLs and old data to canonical ones
var aliases = map[string]Code{
	"ua": UK,
	"cz": CS,
}

// Supported returns the supported codes in display order
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

// Aliases returns a copy of the legacy alias table
func Aliases() map[string]Code {
	out := make(map[string]Code, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

// IsSupported reports whether c is a canonical supported code
func IsSupported(c Code) bool {
	for _, s := range supported {
		if s == c {
			return true
		}
	}
	return false
}

// Index returns the position of c in Supported, or len(Supported) when unknown
func Index(c Code) int {
	for i, s := range supported {
		if s == c {
			return i
		}
	}
	return len(supported)
}

// Normalize maps raw input (a code, alias or full tag like "uk-UA") to a
// supported code. The second result is false when nothing matches.
func Normalize(raw string) (Code, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "", false
	}
	if c, ok := aliases[s]; ok {
		return c, true
	}
	c := Code(s)
	if IsSupported(c) {
		return c, true
	}
	return "", false
}

// IsAlias reports whether raw is a legacy alias rather than a canonical code
func IsAlias(raw string) bool {
	_, ok := aliases[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// FromPath extracts a language from the first path segment ("/en/team", "/ua", "/pl.html")
func FromPath(p string) (Code, bool) {
	p = strings.Trim(p, "/")
	if p == "" {
		return "", false
	}
	seg := strings.ToLower(strings.SplitN(p, "/", 2)[0])
	if ext := path.Ext(seg); ext != "" {
		seg = strings.TrimSuffix(seg, ext)
	}
	if strings.ContainsAny(seg, "-_") {
		return "", false
	}
	return Normalize(seg)
}

// FromDocumentLang extracts a language from an HTML lang attribute value
func FromDocumentLang(lang string) (Code, bool) {
	return Normalize(lang)
}

// FromAcceptLanguage extracts the first entry of an Accept-Language header.
// Quality weights never reorder entries.
func FromAcceptLanguage(header string) (Code, bool) {
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	first = strings.TrimSpace(first)
	if first == "" || first == "*" {
		return "", false
	}
	if tag, err := language.Parse(first); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			if c, ok := Normalize(base.String()); ok {
				return c, true
			}
		}
	}
	return Normalize(first)
}
