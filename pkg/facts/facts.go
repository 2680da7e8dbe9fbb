// Package facts flattens a white paper record into the ordered list of
// reportable facts the inline tagger renders. The walk follows the
// taxonomy's declaration order, so the same record always yields the same
// fact sequence; identifiers come from an explicitly resettable counter to
// keep independent rendering passes byte-identical.
package facts

import (
	"fmt"
	"math"
	"strconv"

	"github.com/regberg-labs/micapress/pkg/taxonomy"
	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// Context identifiers declared in the document header. Every fact binds to
// one of the two.
const (
	ContextInstant  = "ctx_instant"
	ContextDuration = "ctx_duration"
)

// EscapeMode selects how the tagger treats a fact's content.
type EscapeMode string

const (
	// EscapeRaw renders with plain display formatting.
	EscapeRaw EscapeMode = "raw"
	// EscapeTextBlock renders with the escaped, fixed text-block format.
	EscapeTextBlock EscapeMode = "textBlock"
)

// Fact is one reportable datum bound to an element, a context and, for
// numeric kinds, a unit. Facts are immutable once built.
type Fact struct {
	ID      string               `json:"id"`
	Element string               `json:"element"`
	Value   string               `json:"value"`
	Context string               `json:"context"`
	Unit    string               `json:"unit,omitempty"`
	Kind    taxonomy.ElementKind `json:"kind"`
	Escape  EscapeMode           `json:"escape"`

	// Decimals is the fixed precision attribute of numeric facts, nil for
	// textual ones.
	Decimals *int `json:"decimals,omitempty"`
}

// Counter assigns the sequential fact identifiers f_1, f_2, …. It is
// call-scoped state: use a fresh counter (or Reset one) per generation
// pass so repeated passes over the same record produce identical
// identifier sequences.
type Counter struct {
	n int
}

// NewCounter returns a counter starting at f_1.
func NewCounter() *Counter { return &Counter{} }

// Next returns the next identifier.
func (c *Counter) Next() string {
	c.n++
	return fmt.Sprintf("f_%d", c.n)
}

// Reset restarts the sequence at f_1.
func (c *Counter) Reset() { c.n = 0 }

// Builder maps records to fact lists using one taxonomy index.
type Builder struct {
	index   *taxonomy.Index
	counter *Counter
}

// NewBuilder returns a builder with a fresh counter.
func NewBuilder(ix *taxonomy.Index) *Builder {
	return &Builder{index: ix, counter: NewCounter()}
}

// Reset restarts the builder's identifier sequence.
func (b *Builder) Reset() { b.counter.Reset() }

// Build walks the record's applicable elements in declaration order and
// emits one fact per present field. Absent fields and empty strings are
// skipped entirely, so identifiers stay contiguous over the emitted facts.
func (b *Builder) Build(rec *whitepaper.Record) []Fact {
	var out []Fact
	for _, el := range b.index.ReportableFor(rec.TokenType) {
		val, present := rec.FieldByPath(el.Field)
		if !present {
			continue
		}
		fact, ok := b.factFor(el, val)
		if !ok {
			continue
		}
		fact.ID = b.counter.Next()
		out = append(out, fact)
	}
	return out
}

func (b *Builder) factFor(el *taxonomy.Element, val any) (Fact, bool) {
	fact := Fact{
		Element: el.Name,
		Context: contextFor(el),
		Kind:    el.Kind,
		Escape:  EscapeRaw,
	}

	switch el.Kind {
	case taxonomy.KindString, taxonomy.KindDate:
		s, ok := val.(string)
		if !ok {
			return Fact{}, false
		}
		fact.Value = s

	case taxonomy.KindTextBlock:
		s, ok := val.(string)
		if !ok {
			return Fact{}, false
		}
		fact.Value = s
		fact.Escape = EscapeTextBlock

	case taxonomy.KindBoolean:
		v, ok := val.(bool)
		if !ok {
			return Fact{}, false
		}
		fact.Value = strconv.FormatBool(v)

	case taxonomy.KindMonetary:
		m, ok := val.(whitepaper.Monetary)
		if !ok {
			return Fact{}, false
		}
		fact.Value = formatNumber(m.Amount)
		fact.Unit = currencyUnitID(m.Currency)
		fact.Decimals = intPtr(precisionFor(el))

	case taxonomy.KindInteger:
		v, ok := val.(float64)
		if !ok {
			return Fact{}, false
		}
		fact.Value = formatNumber(math.Round(v))
		fact.Unit = UnitPure
		fact.Decimals = intPtr(0)

	case taxonomy.KindDecimal, taxonomy.KindPercentage:
		v, ok := val.(float64)
		if !ok {
			return Fact{}, false
		}
		fact.Value = formatNumber(v)
		fact.Unit = UnitPure
		fact.Decimals = intPtr(precisionFor(el))

	default:
		return Fact{}, false
	}
	return fact, true
}

func contextFor(el *taxonomy.Element) string {
	if el.Period == taxonomy.PeriodInstant {
		return ContextInstant
	}
	return ContextDuration
}

// precisionFor resolves the decimals attribute: integers are always whole,
// other numeric kinds default to 2 unless the catalog overrides.
func precisionFor(el *taxonomy.Element) int {
	if el.Kind == taxonomy.KindInteger {
		return 0
	}
	if el.Decimals != nil {
		return *el.Decimals
	}
	return 2
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func intPtr(i int) *int { return &i }
