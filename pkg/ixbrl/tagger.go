package ixbrl

import (
	"fmt"
	"html"
	"strings"

	"github.com/regberg-labs/micapress/pkg/facts"
)

// Tagger renders single facts into inline-tagged markup. The zero value
// is not usable; construct with NewTagger.
type Tagger struct {
	fragmentLimit int
}

// NewTagger returns a tagger that chains text into continuations once it
// exceeds fragmentLimit characters. A limit of zero or less selects
// DefaultFragmentLimit.
func NewTagger(fragmentLimit int) *Tagger {
	if fragmentLimit <= 0 {
		fragmentLimit = DefaultFragmentLimit
	}
	return &Tagger{fragmentLimit: fragmentLimit}
}

// RenderFact renders one fact. Numeric-kind facts whose serialized value
// matches the numeric grammar become ix:nonFraction elements with unit
// and decimals attributes; everything else, including numeric-kind facts
// holding prose, becomes ix:nonNumeric. The two renderings are mutually
// exclusive.
func (t *Tagger) RenderFact(f facts.Fact) string {
	if f.Kind.Numeric() && IsNumericValue(f.Value) {
		return renderNumeric(f)
	}
	return t.renderText(f)
}

func renderNumeric(f facts.Fact) string {
	var b strings.Builder
	b.WriteString(`<ix:nonFraction id="`)
	b.WriteString(f.ID)
	b.WriteString(`" name="`)
	b.WriteString(f.Element)
	b.WriteString(`" contextRef="`)
	b.WriteString(f.Context)
	b.WriteString(`"`)
	if f.Unit != "" {
		b.WriteString(` unitRef="`)
		b.WriteString(f.Unit)
		b.WriteString(`"`)
	}
	if f.Decimals != nil {
		fmt.Fprintf(&b, ` decimals="%d"`, *f.Decimals)
	}
	b.WriteString(` format="ixt:num-dot-decimal"`)

	// The element content must be unsigned; a leading minus moves into
	// the sign attribute.
	value := f.Value
	if strings.HasPrefix(value, "-") {
		b.WriteString(` sign="-"`)
		value = value[1:]
	}

	b.WriteString(">")
	b.WriteString(html.EscapeString(value))
	b.WriteString("</ix:nonFraction>")
	return b.String()
}

func (t *Tagger) renderText(f facts.Fact) string {
	frags := SplitTextIntoFragments(f.Value, t.fragmentLimit)

	var b strings.Builder
	b.WriteString(`<ix:nonNumeric id="`)
	b.WriteString(f.ID)
	b.WriteString(`" name="`)
	b.WriteString(f.Element)
	b.WriteString(`" contextRef="`)
	b.WriteString(f.Context)
	b.WriteString(`"`)
	if f.Escape == facts.EscapeTextBlock {
		b.WriteString(` escape="true"`)
	}
	if len(frags) > 1 {
		b.WriteString(` continuedAt="`)
		b.WriteString(continuationID(f.ID, 1))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	if len(frags) > 0 {
		b.WriteString(html.EscapeString(frags[0]))
	}
	b.WriteString("</ix:nonNumeric>")

	for i := 1; i < len(frags); i++ {
		b.WriteString(`<ix:continuation id="`)
		b.WriteString(continuationID(f.ID, i))
		b.WriteString(`"`)
		if i < len(frags)-1 {
			b.WriteString(` continuedAt="`)
			b.WriteString(continuationID(f.ID, i+1))
			b.WriteString(`"`)
		}
		b.WriteString(">")
		b.WriteString(html.EscapeString(frags[i]))
		b.WriteString("</ix:continuation>")
	}
	return b.String()
}

// continuationID names the i-th continuation of a fact, 1-based.
func continuationID(factID string, i int) string {
	return fmt.Sprintf("%s_cont_%d", factID, i)
}

// WrapExclude wraps presentation-only content, such as page numbers, in
// an exclude-from-extraction marker. The content passes through
// verbatim; callers escape it when it needs escaping.
func WrapExclude(content string) string {
	return "<ix:exclude>" + content + "</ix:exclude>"
}
