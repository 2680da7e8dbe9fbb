package ixbrl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/regberg-labs/micapress/pkg/facts"
	"github.com/regberg-labs/micapress/pkg/taxonomy"
	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

func testDocument(t *testing.T) (*DocumentBuilder, Document) {
	t.Helper()
	ix, err := taxonomy.DefaultIndex()
	require.NoError(t, err)

	factList := []facts.Fact{
		{
			ID: "f_1", Element: "mica:TypeOfCryptoAsset", Value: "OTHR",
			Context: facts.ContextDuration, Kind: taxonomy.KindString, Escape: facts.EscapeRaw,
		},
		{
			ID: "f_2", Element: "mica:OfferPrice", Value: "0.25",
			Context: facts.ContextInstant, Unit: "unit_eur",
			Kind: taxonomy.KindMonetary, Escape: facts.EscapeRaw, Decimals: intPtr(2),
		},
		{
			ID: "f_3", Element: "mica:TotalSupply", Value: "100000000",
			Context: facts.ContextInstant, Unit: facts.UnitPure,
			Kind: taxonomy.KindDecimal, Escape: facts.EscapeRaw, Decimals: intPtr(2),
		},
	}

	doc := Document{
		Title:       "Wonderpark Token White Paper",
		Language:    "en",
		TokenType:   whitepaper.TokenTypeOther,
		EntityLEI:   "529900T8BM49AURSDO55",
		InstantDate: "2025-06-30",
		PeriodStart: "2025-01-01",
		PeriodEnd:   "2025-06-30",
		Facts:       factList,
		Units:       facts.UnitsFor(factList),
	}
	return NewDocumentBuilder(ix, NewTagger(0)), doc
}

func TestBuildStartsWithXMLDeclaration(t *testing.T) {
	b, doc := testDocument(t)
	out := b.Build(doc)
	require.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
}

func TestBuildDeclaresEachNamespaceOnce(t *testing.T) {
	b, doc := testDocument(t)
	out := b.Build(doc)

	for _, decl := range []string{
		` xmlns="http://www.w3.org/1999/xhtml"`,
		`xmlns:ix="http://www.xbrl.org/2013/inlineXBRL"`,
		`xmlns:ixt="http://www.xbrl.org/inlineXBRL/transformation/2022-02-16"`,
		`xmlns:xbrli="http://www.xbrl.org/2003/instance"`,
		`xmlns:xbrldi="http://xbrl.org/2006/xbrldi"`,
		`xmlns:link="http://www.xbrl.org/2003/linkbase"`,
		`xmlns:xlink="http://www.w3.org/1999/xlink"`,
		`xmlns:iso4217="http://www.xbrl.org/2003/iso4217"`,
		`xmlns:mica="`,
	} {
		require.Equal(t, 1, strings.Count(out, decl), "namespace %s", decl)
	}
}

func TestBuildHasOneInstantAndOneDurationContext(t *testing.T) {
	b, doc := testDocument(t)
	out := b.Build(doc)

	require.Equal(t, 2, strings.Count(out, "<xbrli:context"))
	require.Equal(t, 1, strings.Count(out, `<xbrli:context id="ctx_instant">`))
	require.Equal(t, 1, strings.Count(out, `<xbrli:context id="ctx_duration">`))
	require.Contains(t, out, "<xbrli:instant>2025-06-30</xbrli:instant>")
	require.Contains(t, out,
		"<xbrli:startDate>2025-01-01</xbrli:startDate><xbrli:endDate>2025-06-30</xbrli:endDate>")
}

func TestBuildContextsUseScenarioNotSegment(t *testing.T) {
	b, doc := testDocument(t)
	out := b.Build(doc)

	require.Contains(t, out, "<xbrli:scenario>")
	require.Contains(t, out, `dimension="mica:TypeOfCryptoAssetAxis"`)
	require.Contains(t, out, "mica:OtherCryptoAssetMember")
	require.NotContains(t, out, "<xbrli:segment")
}

func TestBuildDeclaresEntityIdentifierScheme(t *testing.T) {
	b, doc := testDocument(t)
	out := b.Build(doc)

	require.Contains(t, out,
		`<xbrli:identifier scheme="http://standards.iso.org/iso/17442">529900T8BM49AURSDO55</xbrli:identifier>`)
}

func TestBuildDeclaresReferencedUnits(t *testing.T) {
	b, doc := testDocument(t)
	out := b.Build(doc)

	require.Contains(t, out,
		`<xbrli:unit id="unit_pure"><xbrli:measure>xbrli:pure</xbrli:measure></xbrli:unit>`)
	require.Contains(t, out,
		`<xbrli:unit id="unit_eur"><xbrli:measure>iso4217:EUR</xbrli:measure></xbrli:unit>`)
}

func TestBuildReferencesTaxonomySchema(t *testing.T) {
	b, doc := testDocument(t)
	out := b.Build(doc)

	ix, err := taxonomy.DefaultIndex()
	require.NoError(t, err)
	require.Contains(t, out,
		`<link:schemaRef xlink:type="simple" xlink:href="`+ix.EntryPoint()+`"/>`)
}

func TestBuildGroupsFactsBySectionInOrder(t *testing.T) {
	b, doc := testDocument(t)
	out := b.Build(doc)

	general := strings.Index(out, "<h2>General information</h2>")
	offer := strings.Index(out, "<h2>"+whitepaper.SectionOffer.Title()+"</h2>")
	asset := strings.Index(out, "<h2>"+whitepaper.SectionAsset.Title()+"</h2>")

	require.Greater(t, general, 0)
	require.Greater(t, offer, general)
	require.Greater(t, asset, offer)

	// Sections without facts are omitted entirely.
	require.NotContains(t, out, whitepaper.SectionRisks.Title())

	for _, id := range []string{`id="f_1"`, `id="f_2"`, `id="f_3"`} {
		require.Contains(t, out, id)
	}
}

func TestBuildKeepsUnknownElementFacts(t *testing.T) {
	b, doc := testDocument(t)
	doc.Facts = append(doc.Facts, facts.Fact{
		ID: "f_99", Element: "mica:NotInCatalog", Value: "kept",
		Context: facts.ContextDuration, Kind: taxonomy.KindString, Escape: facts.EscapeRaw,
	})

	out := b.Build(doc)
	require.Contains(t, out, `id="f_99"`)
}

func TestBuildIsSelfContained(t *testing.T) {
	b, doc := testDocument(t)
	out := b.Build(doc)

	require.NotContains(t, out, "<script")
	require.NotContains(t, out, "stylesheet")
	require.Contains(t, out, `<style type="text/css">`)
}

func TestBuildDefaultsTitleAndLanguage(t *testing.T) {
	b, doc := testDocument(t)
	doc.Title = ""
	doc.Language = ""

	out := b.Build(doc)
	require.Contains(t, out, "<title>Crypto-Asset White Paper</title>")
	require.Contains(t, out, `xml:lang="en"`)
}

func TestBuildEscapesTitle(t *testing.T) {
	b, doc := testDocument(t)
	doc.Title = "Tokens & <Friends>"

	out := b.Build(doc)
	require.Contains(t, out, "<title>Tokens &amp; &lt;Friends&gt;</title>")
}
