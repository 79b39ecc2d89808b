package articles

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify lowercases s and collapses every run of characters that are not
// letters or digits into a single dash. Letters of any script are kept.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// fallbackSlug is used when a title has no letters or digits at all
func fallbackSlug() string {
	return "article-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
