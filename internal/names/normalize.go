// Package names reconciles player names across data sources.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// generational suffixes recognised at the end of a name
var suffixes = []string{" Jr.", " Jr", " Sr.", " Sr", " II", " III", " IV"}

var suffixTokens = map[string]bool{
	"jr": true, "jr.": true, "sr": true, "sr.": true, "ii": true, "iii": true, "iv": true,
}

func asciiFold() transform.Transformer {
	return transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
}

// StripAccents folds a name to plain ASCII ("José Ramírez" -> "Jose Ramirez").
func StripAccents(name string) string {
	out, _, err := transform.String(asciiFold(), name)
	if err != nil {
		return name
	}
	return out
}

// Normalize strips accents, a trailing generational suffix and redundant spaces.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	normalized := StripAccents(name)
	for _, suffix := range suffixes {
		if strings.HasSuffix(normalized, suffix) {
			normalized = strings.TrimSuffix(normalized, suffix)
		}
	}
	return strings.Join(strings.Fields(normalized), " ")
}

// MatchKey is the case-insensitive form used for loose lookups.
func MatchKey(name string) string {
	return strings.ToLower(Normalize(name))
}

// IsSuffix reports whether a token is a generational suffix such as "Jr."
func IsSuffix(token string) bool {
	return suffixTokens[strings.ToLower(token)]
}
