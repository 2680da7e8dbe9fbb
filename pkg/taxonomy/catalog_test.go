package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCatalogHeader = `
version: "1.0.0"
entryPoint: "http://example.test/taxonomy/test.xsd"
namespaces:
  mica: "http://example.test/taxonomy"
elements:
`

func loadTestCatalog(t *testing.T, elements string) (*Catalog, error) {
	t.Helper()
	return Load([]byte(testCatalogHeader + elements))
}

func TestLoadMinimalCatalog(t *testing.T) {
	cat, err := loadTestCatalog(t, `
  - name: mica:AssetName
    label: "Name of the crypto-asset"
    section: asset
    kind: string
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
    requiredFor: [OTHR]
`)
	require.NoError(t, err)
	require.Len(t, cat.Elements, 1)

	el := cat.Elements[0]
	require.Equal(t, "mica", el.Prefix)
	require.Equal(t, "AssetName", el.LocalName)
	require.Equal(t, 0, el.Order)
	require.True(t, el.RequiredForType("OTHR"))
	require.False(t, el.RequiredForType("EMT"))
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	doc := strings.Replace(testCatalogHeader, `"1.0.0"`, `"2.0.0"`, 1) + `
  - name: mica:AssetName
    label: "Name"
    section: asset
    kind: string
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
`
	_, err := Load([]byte(doc))
	require.Error(t, err)
	require.Contains(t, err.Error(), "outside supported range")
}

func TestLoadRejectsMalformedVersion(t *testing.T) {
	doc := strings.Replace(testCatalogHeader, `"1.0.0"`, `"latest"`, 1) + `
  - name: mica:AssetName
    label: "Name"
    section: asset
    kind: string
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
`
	_, err := Load([]byte(doc))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid version")
}

func TestLoadRejectsDuplicateName(t *testing.T) {
	_, err := loadTestCatalog(t, `
  - name: mica:AssetName
    label: "Name"
    section: asset
    kind: string
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
  - name: mica:AssetName
    label: "Name again"
    section: asset
    kind: string
    period: duration
    field: asset.assetSymbol
    appliesTo: [OTHR]
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate name")
}

func TestLoadRejectsUndeclaredPrefix(t *testing.T) {
	_, err := loadTestCatalog(t, `
  - name: esrs:AssetName
    label: "Name"
    section: asset
    kind: string
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "undeclared namespace prefix")
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	_, err := loadTestCatalog(t, `
  - name: mica:AssetName
    label: "Name"
    section: asset
    kind: blob
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown kind")
}

func TestLoadRejectsUnknownFieldPath(t *testing.T) {
	_, err := loadTestCatalog(t, `
  - name: mica:AssetColour
    label: "Colour"
    section: asset
    kind: string
    period: duration
    field: asset.colour
    appliesTo: [OTHR]
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown field path")
}

func TestLoadRejectsUnknownSection(t *testing.T) {
	_, err := loadTestCatalog(t, `
  - name: mica:AssetName
    label: "Name"
    section: holdings
    kind: string
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown section")
}

func TestLoadRejectsFieldOutsideSection(t *testing.T) {
	_, err := loadTestCatalog(t, `
  - name: mica:AssetName
    label: "Name"
    section: offeror
    kind: string
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "outside section")
}

func TestLoadRejectsAbstractWithField(t *testing.T) {
	_, err := loadTestCatalog(t, `
  - name: mica:AssetAbstract
    label: "Asset [abstract]"
    section: asset
    kind: string
    period: duration
    abstract: true
    field: asset.assetName
    appliesTo: [OTHR]
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not bind a field")
}

func TestLoadRejectsRequiredOutsideAppliesTo(t *testing.T) {
	_, err := loadTestCatalog(t, `
  - name: mica:AssetName
    label: "Name"
    section: asset
    kind: string
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
    requiredFor: [EMT]
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "outside appliesTo")
}

func TestLoadRejectsRequiredAndRecommendedOverlap(t *testing.T) {
	_, err := loadTestCatalog(t, `
  - name: mica:AssetName
    label: "Name"
    section: asset
    kind: string
    period: duration
    field: asset.assetName
    appliesTo: [OTHR]
    requiredFor: [OTHR]
    recommendedFor: [OTHR]
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "both required and recommended")
}

func TestElementKindNumeric(t *testing.T) {
	require.True(t, KindMonetary.Numeric())
	require.True(t, KindInteger.Numeric())
	require.True(t, KindDecimal.Numeric())
	require.True(t, KindPercentage.Numeric())
	require.False(t, KindString.Numeric())
	require.False(t, KindTextBlock.Numeric())
	require.False(t, KindBoolean.Numeric())
	require.False(t, KindDate.Numeric())
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	ix, err := DefaultIndex()
	require.NoError(t, err)
	require.Equal(t, "1.2.0", ix.Version())
	require.NotEmpty(t, ix.EntryPoint())
	require.Contains(t, ix.Namespaces(), "mica")

	// Same shared index on repeated calls.
	again, err := DefaultIndex()
	require.NoError(t, err)
	require.Same(t, ix, again)
}
