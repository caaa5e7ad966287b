package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify converts value to a lowercase ASCII slug. Accents are decomposed and
// dropped, characters other than letters, digits, underscores, hyphens and
// whitespace are removed, and runs of whitespace or hyphens collapse to a
// single hyphen. Leading and trailing hyphens and underscores are trimmed.
func Slugify(value string) string {
	ascii, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), value)
	if err != nil {
		ascii = value
	}

	var b strings.Builder
	b.Grow(len(ascii))
	pendingDash := false
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r > unicode.MaxASCII:
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return strings.Trim(b.String(), "-_")
}
