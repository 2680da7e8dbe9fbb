package facts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/regberg-labs/micapress/pkg/taxonomy"
	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	ix, err := taxonomy.DefaultIndex()
	require.NoError(t, err)
	return NewBuilder(ix)
}

func sampleRecord() *whitepaper.Record {
	return &whitepaper.Record{
		TokenType:    whitepaper.TokenTypeOther,
		DocumentDate: "2025-06-30",
		Language:     "en",
		Summary: &whitepaper.Summary{
			SummaryText: "A utility token granting access to the WPX platform.",
		},
		Offeror: &whitepaper.Offeror{
			LegalName: "Example Labs GmbH",
			Country:   "DE",
		},
		Offer: &whitepaper.Offer{
			IsPublicOffering:  whitepaper.Bool(true),
			OfferPrice:        &whitepaper.Monetary{Amount: 0.25, Currency: "EUR"},
			TotalUnitsOffered: whitepaper.Float(10_000_000.4),
		},
		Asset: &whitepaper.Asset{
			AssetName:   "WPX Token",
			AssetSymbol: "WPX",
			TotalSupply: whitepaper.Float(100_000_000),
		},
		Sustainability: &whitepaper.Sustainability{
			EnergyConsumption: whitepaper.Float(4200),
		},
	}
}

func findFact(list []Fact, element string) *Fact {
	for i := range list {
		if list[i].Element == element {
			return &list[i]
		}
	}
	return nil
}

func TestBuildAssignsContiguousIdentifiers(t *testing.T) {
	b := testBuilder(t)
	list := b.Build(sampleRecord())
	require.NotEmpty(t, list)

	for i, f := range list {
		require.Equal(t, fmt.Sprintf("f_%d", i+1), f.ID)
	}

	// Declaration order: the token type classifier is the catalog's first
	// reportable element and is always present.
	require.Equal(t, "mica:TypeOfCryptoAsset", list[0].Element)
	require.Equal(t, "OTHR", list[0].Value)
}

func TestBuildSerialization(t *testing.T) {
	b := testBuilder(t)
	list := b.Build(sampleRecord())

	date := findFact(list, "mica:DocumentDate")
	require.NotNil(t, date)
	require.Equal(t, "2025-06-30", date.Value)
	require.Empty(t, date.Unit)
	require.Nil(t, date.Decimals)
	require.Equal(t, ContextDuration, date.Context)

	boolean := findFact(list, "mica:IsPublicOffering")
	require.NotNil(t, boolean)
	require.Equal(t, "true", boolean.Value)
	require.Empty(t, boolean.Unit)

	price := findFact(list, "mica:OfferPrice")
	require.NotNil(t, price)
	require.Equal(t, "0.25", price.Value)
	require.Equal(t, "unit_eur", price.Unit)
	require.NotNil(t, price.Decimals)
	require.Equal(t, 6, *price.Decimals)
	require.Equal(t, ContextInstant, price.Context)

	units := findFact(list, "mica:TotalUnitsOffered")
	require.NotNil(t, units)
	require.Equal(t, "10000000", units.Value, "integers round to the nearest whole number")
	require.Equal(t, UnitPure, units.Unit)
	require.Equal(t, 0, *units.Decimals)

	supply := findFact(list, "mica:TotalSupply")
	require.NotNil(t, supply)
	require.Equal(t, "100000000", supply.Value)
	require.Equal(t, UnitPure, supply.Unit)
	require.Equal(t, 2, *supply.Decimals, "decimals default to 2 without a catalog override")

	energy := findFact(list, "mica:EnergyConsumption")
	require.NotNil(t, energy)
	require.Equal(t, 0, *energy.Decimals, "catalog override wins")
	require.Equal(t, ContextDuration, energy.Context)

	text := findFact(list, "mica:WhitePaperSummary")
	require.NotNil(t, text)
	require.Equal(t, EscapeTextBlock, text.Escape)

	name := findFact(list, "mica:AssetName")
	require.NotNil(t, name)
	require.Equal(t, EscapeRaw, name.Escape)
}

func TestBuildSkipsAbsentFields(t *testing.T) {
	b := testBuilder(t)
	rec := &whitepaper.Record{TokenType: whitepaper.TokenTypeEMT}
	list := b.Build(rec)

	require.Len(t, list, 1, "only the token type classifier is present")
	require.Equal(t, "f_1", list[0].ID)
	require.Equal(t, "mica:TypeOfCryptoAsset", list[0].Element)
}

func TestBuildFallsBackToDefaultCurrency(t *testing.T) {
	b := testBuilder(t)
	rec := sampleRecord()
	rec.Offer.OfferPrice.Currency = "XYZ"
	list := b.Build(rec)

	price := findFact(list, "mica:OfferPrice")
	require.NotNil(t, price)
	require.Equal(t, "unit_eur", price.Unit)

	rec.Offer.OfferPrice.Currency = ""
	b.Reset()
	list = b.Build(rec)
	require.Equal(t, "unit_eur", findFact(list, "mica:OfferPrice").Unit)
}

func TestCounterResetReproducesIdentifiers(t *testing.T) {
	b := testBuilder(t)
	rec := sampleRecord()

	first := b.Build(rec)
	second := b.Build(rec)
	require.NotEqual(t, first[0].ID, second[0].ID, "without a reset the sequence continues")

	b.Reset()
	third := b.Build(rec)
	require.Equal(t, first, third, "a reset reproduces the identifier sequence exactly")
}

func TestUnitsFor(t *testing.T) {
	b := testBuilder(t)
	list := b.Build(sampleRecord())

	units := UnitsFor(list)
	require.Equal(t, []Unit{
		{ID: UnitPure, Measure: "xbrli:pure"},
		{ID: "unit_eur", Measure: "iso4217:EUR"},
	}, units)

	require.Empty(t, UnitsFor(nil))

	textOnly := []Fact{{Element: "mica:AssetName", Context: ContextDuration, Value: "WPX"}}
	require.Empty(t, UnitsFor(textOnly))
}

func TestKnownCurrency(t *testing.T) {
	require.True(t, KnownCurrency("EUR"))
	require.True(t, KnownCurrency("sek"))
	require.True(t, KnownCurrency(" usd "))
	require.False(t, KnownCurrency("XYZ"))
	require.False(t, KnownCurrency(""))
}
