package ixbrl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/regberg-labs/micapress/pkg/facts"
	"github.com/regberg-labs/micapress/pkg/taxonomy"
)

func intPtr(i int) *int { return &i }

func TestRenderNumericFact(t *testing.T) {
	tagger := NewTagger(0)
	out := tagger.RenderFact(facts.Fact{
		ID:       "f_1",
		Element:  "mica:OfferPrice",
		Value:    "0.25",
		Context:  facts.ContextInstant,
		Unit:     "unit_eur",
		Kind:     taxonomy.KindMonetary,
		Escape:   facts.EscapeRaw,
		Decimals: intPtr(6),
	})

	require.Equal(t,
		`<ix:nonFraction id="f_1" name="mica:OfferPrice" contextRef="ctx_instant"`+
			` unitRef="unit_eur" decimals="6" format="ixt:num-dot-decimal">0.25</ix:nonFraction>`,
		out)
}

func TestRenderNumericFactMovesSignToAttribute(t *testing.T) {
	tagger := NewTagger(0)
	out := tagger.RenderFact(facts.Fact{
		ID:       "f_4",
		Element:  "mica:TotalSupply",
		Value:    "-100",
		Context:  facts.ContextInstant,
		Unit:     facts.UnitPure,
		Kind:     taxonomy.KindDecimal,
		Escape:   facts.EscapeRaw,
		Decimals: intPtr(2),
	})

	require.Contains(t, out, ` sign="-"`)
	require.Contains(t, out, `>100</ix:nonFraction>`)
	require.NotContains(t, out, ">-100<")
}

func TestRenderNumericKindWithProseFallsBackToText(t *testing.T) {
	tagger := NewTagger(0)
	out := tagger.RenderFact(facts.Fact{
		ID:       "f_2",
		Element:  "mica:MinimumSubscriptionGoal",
		Value:    "No minimum goal.",
		Context:  facts.ContextInstant,
		Unit:     "unit_eur",
		Kind:     taxonomy.KindMonetary,
		Escape:   facts.EscapeRaw,
		Decimals: intPtr(2),
	})

	require.True(t, len(out) > 0)
	require.Contains(t, out, "<ix:nonNumeric")
	require.NotContains(t, out, "<ix:nonFraction")
	require.NotContains(t, out, "unitRef")
	require.NotContains(t, out, "decimals")
	require.Contains(t, out, ">No minimum goal.</ix:nonNumeric>")
}

func TestRenderTextBlockEscapes(t *testing.T) {
	tagger := NewTagger(0)
	out := tagger.RenderFact(facts.Fact{
		ID:      "f_3",
		Element: "mica:ProjectDescription",
		Value:   "<b>Bold</b> & more",
		Context: facts.ContextDuration,
		Kind:    taxonomy.KindTextBlock,
		Escape:  facts.EscapeTextBlock,
	})

	require.Contains(t, out, ` escape="true"`)
	require.Contains(t, out, "&lt;b&gt;Bold&lt;/b&gt; &amp; more")
	require.NotContains(t, out, "<b>")
}

func TestRenderPlainTextHasNoEscapeAttribute(t *testing.T) {
	tagger := NewTagger(0)
	out := tagger.RenderFact(facts.Fact{
		ID:      "f_5",
		Element: "mica:OfferorLegalName",
		Value:   "Wonderpark Labs GmbH",
		Context: facts.ContextDuration,
		Kind:    taxonomy.KindString,
		Escape:  facts.EscapeRaw,
	})

	require.NotContains(t, out, "escape=")
	require.Contains(t, out, ">Wonderpark Labs GmbH</ix:nonNumeric>")
}

func TestRenderLongTextChainsContinuations(t *testing.T) {
	tagger := NewTagger(10)
	out := tagger.RenderFact(facts.Fact{
		ID:      "f_7",
		Element: "mica:ProjectDescription",
		Value:   "alpha beta gamma delta",
		Context: facts.ContextDuration,
		Kind:    taxonomy.KindString,
		Escape:  facts.EscapeRaw,
	})

	require.Equal(t,
		`<ix:nonNumeric id="f_7" name="mica:ProjectDescription" contextRef="ctx_duration"`+
			` continuedAt="f_7_cont_1">alpha </ix:nonNumeric>`+
			`<ix:continuation id="f_7_cont_1" continuedAt="f_7_cont_2">beta </ix:continuation>`+
			`<ix:continuation id="f_7_cont_2" continuedAt="f_7_cont_3">gamma </ix:continuation>`+
			`<ix:continuation id="f_7_cont_3">delta</ix:continuation>`,
		out)
}

func TestRenderEmptyValueIsBarePrimary(t *testing.T) {
	tagger := NewTagger(10)
	out := tagger.RenderFact(facts.Fact{
		ID:      "f_9",
		Element: "mica:RefundMechanism",
		Value:   "",
		Context: facts.ContextDuration,
		Kind:    taxonomy.KindTextBlock,
		Escape:  facts.EscapeTextBlock,
	})

	require.Equal(t,
		`<ix:nonNumeric id="f_9" name="mica:RefundMechanism" contextRef="ctx_duration"`+
			` escape="true"></ix:nonNumeric>`,
		out)
	require.NotContains(t, out, "continuation")
}

func TestWrapExcludeLeavesContentVerbatim(t *testing.T) {
	out := WrapExclude(`<span class="page">Page 3</span>`)
	require.Equal(t, `<ix:exclude><span class="page">Page 3</span></ix:exclude>`, out)
}
