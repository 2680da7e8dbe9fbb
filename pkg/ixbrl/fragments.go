package ixbrl

// DefaultFragmentLimit caps how many characters a single inline element
// carries before the remainder chains into continuation elements.
const DefaultFragmentLimit = 2000

// SplitTextIntoFragments splits free text into ordered fragments of at
// most limit characters each. Split points prefer a paragraph break,
// then a line break, then a word boundary, then a hard cut. Separators
// stay with the preceding fragment, so concatenating the fragments
// reproduces the input byte for byte. Empty input yields no fragments;
// a limit of zero or less falls back to DefaultFragmentLimit.
func SplitTextIntoFragments(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultFragmentLimit
	}
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var frags []string
	for len(runes) > limit {
		cut := splitPoint(runes, limit)
		frags = append(frags, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		frags = append(frags, string(runes))
	}
	return frags
}

// splitPoint picks where to cut the next fragment: after the last
// paragraph break inside the window, else after the last line break,
// else after the last space, else exactly at the limit.
func splitPoint(runes []rune, limit int) int {
	window := runes[:limit]
	if i := lastParagraphBreak(window); i >= 0 {
		return i + 2
	}
	if i := lastRune(window, '\n'); i >= 0 {
		return i + 1
	}
	if i := lastRune(window, ' '); i >= 0 {
		return i + 1
	}
	return limit
}

func lastParagraphBreak(window []rune) int {
	for i := len(window) - 2; i >= 0; i-- {
		if window[i] == '\n' && window[i+1] == '\n' {
			return i
		}
	}
	return -1
}

func lastRune(window []rune, r rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == r {
			return i
		}
	}
	return -1
}
