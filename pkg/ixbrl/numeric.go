// Package ixbrl renders facts as Inline XBRL markup and assembles the
// final self-contained XHTML document. Rendering is pure string
// construction: the package holds no state beyond the taxonomy index and
// the continuation threshold, and the same inputs always produce the
// same bytes.
package ixbrl

import "regexp"

// numericValueRe is the grammar a serialized value must match before a
// numeric-kind fact may carry numeric inline markup: optional sign,
// optional currency symbol, plain or comma-grouped digits, optional
// decimal part or bare trailing point, optional percent suffix.
var numericValueRe = regexp.MustCompile(`^[-+]?[$€£¥]?(\d{1,3}(,\d{3})+|\d+)(\.\d*)?%?$`)

// IsNumericValue reports whether a serialized value is recognizably
// numeric. Numeric-kind fields sometimes hold prose ("Not applicable",
// "No minimum goal.") and those must fall back to plain text tagging, so
// the decision is made on the value itself, never on the declared kind
// alone.
func IsNumericValue(v string) bool {
	return numericValueRe.MatchString(v)
}
