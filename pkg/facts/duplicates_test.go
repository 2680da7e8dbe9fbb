package facts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindDuplicatesDistinctTriples(t *testing.T) {
	list := []Fact{
		{Element: "mica:AssetName", Context: ContextDuration, Value: "WPX"},
		{Element: "mica:AssetSymbol", Context: ContextDuration, Value: "WPX"},
		{Element: "mica:AssetName", Context: ContextInstant, Value: "WPX"},
		{Element: "mica:TotalSupply", Context: ContextInstant, Unit: UnitPure, Value: "100"},
		{Element: "mica:TotalSupply", Context: ContextInstant, Unit: "unit_eur", Value: "100"},
	}
	require.Empty(t, FindDuplicates(list))
}

func TestFindDuplicatesCollidingTriple(t *testing.T) {
	list := []Fact{
		{Element: "mica:TotalSupply", Context: ContextInstant, Unit: UnitPure, Value: "100"},
		{Element: "mica:AssetName", Context: ContextDuration, Value: "WPX"},
		{Element: "mica:TotalSupply", Context: ContextInstant, Unit: UnitPure, Value: "200"},
		{Element: "mica:TotalSupply", Context: ContextInstant, Unit: UnitPure, Value: "300"},
	}

	dups := FindDuplicates(list)
	require.Len(t, dups, 1)
	require.Equal(t, "mica:TotalSupply", dups[0].Element)
	require.Equal(t, ContextInstant, dups[0].Context)
	require.Equal(t, UnitPure, dups[0].Unit)
	require.Equal(t, 3, dups[0].Count)
	require.Equal(t, []string{"100", "200", "300"}, dups[0].Values, "values keep encounter order")
}

func TestFindDuplicatesAbsentUnitIsItsOwnKey(t *testing.T) {
	list := []Fact{
		{Element: "mica:AssetName", Context: ContextDuration, Value: "first"},
		{Element: "mica:AssetName", Context: ContextDuration, Value: "second"},
		{Element: "mica:AssetName", Context: ContextDuration, Unit: UnitPure, Value: "third"},
	}

	dups := FindDuplicates(list)
	require.Len(t, dups, 1, "the unit-bearing fact does not join the unitless group")
	require.Empty(t, dups[0].Unit)
	require.Equal(t, 2, dups[0].Count)
}

func TestFindDuplicatesGroupOrder(t *testing.T) {
	list := []Fact{
		{Element: "mica:AssetSymbol", Context: ContextDuration, Value: "WPX"},
		{Element: "mica:AssetName", Context: ContextDuration, Value: "a"},
		{Element: "mica:AssetSymbol", Context: ContextDuration, Value: "WPX"},
		{Element: "mica:AssetName", Context: ContextDuration, Value: "b"},
	}

	dups := FindDuplicates(list)
	require.Len(t, dups, 2)
	require.Equal(t, "mica:AssetSymbol", dups[0].Element, "groups come in first-encounter order")
	require.Equal(t, "mica:AssetName", dups[1].Element)
}

func TestDuplicateValuesTruncated(t *testing.T) {
	long := strings.Repeat("x", 80)
	list := []Fact{
		{Element: "mica:WhitePaperSummary", Context: ContextDuration, Value: long},
		{Element: "mica:WhitePaperSummary", Context: ContextDuration, Value: "short"},
	}

	dups := FindDuplicates(list)
	require.Len(t, dups, 1)
	require.Equal(t, strings.Repeat("x", 50)+"...", dups[0].Values[0])
	require.Equal(t, "short", dups[0].Values[1])
}

func TestDuplicateMessage(t *testing.T) {
	d := Duplicate{
		Element: "mica:TotalSupply",
		Context: ContextInstant,
		Unit:    UnitPure,
		Count:   2,
		Values:  []string{"100", "200"},
	}
	msg := d.Message()
	require.Contains(t, msg, "mica:TotalSupply")
	require.Contains(t, msg, "2 times")
	require.Contains(t, msg, "100; 200")

	unitless := Duplicate{Element: "mica:AssetName", Context: ContextDuration, Count: 2, Values: []string{"a", "b"}}
	require.Contains(t, unitless.Message(), "(unit none)")
}
