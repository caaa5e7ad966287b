package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns a comparison key for value that ignores case and diacritics,
// so "Rafael Albuquerque" and "rafaël albuquerque" fold identically.
func Fold(value string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), value)
	if err != nil {
		stripped = value
	}
	return cases.Fold().String(strings.Join(strings.Fields(stripped), " "))
}

// Title applies English title casing. Used for display of role names.
func Title(value string) string {
	return cases.Title(language.English).String(strings.TrimSpace(value))
}

// NameTokens returns the first and last whitespace-separated tokens of a
// personal name. ok is false when the name has fewer than two tokens.
func NameTokens(name string) (first, last string, ok bool) {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], fields[len(fields)-1], true
}
