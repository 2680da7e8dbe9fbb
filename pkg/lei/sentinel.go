package lei

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Sentinel phrases regulators accept in place of a secondary identifier.
// Matching is case- and punctuation-insensitive: candidates are NFKC
// normalized, lowercased, and stripped of everything but letters and
// digits before comparison. "N/A", "n.a." and "Not Applicable" all
// collapse to entries below. The list is deliberately narrow; broadening
// it needs regulatory examples, not guesswork.
var sentinelPhrases = map[string]bool{
	"na":            true,
	"notapplicable": true,
	"notavailable":  true,
	"none":          true,
	"nil":           true,
}

// NormalizeSentinel collapses a candidate phrase to its comparison form:
// NFKC, lowercased, letters and digits only.
func NormalizeSentinel(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NotApplicable reports whether s is a recognized "not applicable"
// sentinel phrase. The empty string is not a sentinel; it means absent.
func NotApplicable(s string) bool {
	return sentinelPhrases[NormalizeSentinel(s)]
}
