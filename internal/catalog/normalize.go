package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s and strips diacritics so "Ñandú" matches "nandu".
func Normalize(s string) string {
	// Chained transformers keep state between calls, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// containsNormalized reports whether the normalized field contains q.
// q must already be normalized.
func containsNormalized(field, q string) bool {
	return strings.Contains(Normalize(field), q)
}
