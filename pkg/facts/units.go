package facts

import "strings"

// UnitPure is the dimensionless unit every non-monetary numeric fact binds
// to.
const UnitPure = "unit_pure"

// DefaultCurrency is the fallback for monetary fields whose currency code
// is missing or unrecognized.
const DefaultCurrency = "EUR"

// Unit is one measurement unit declared in the document header.
type Unit struct {
	ID      string `json:"id"`
	Measure string `json:"measure"`
}

// supportedCurrencies are the ISO 4217 codes the unit catalog declares:
// the euro first, then the remaining EU/EEA currencies, then the major
// reserve currencies offers are commonly denominated in.
var supportedCurrencies = []string{
	"EUR", "BGN", "CZK", "DKK", "HUF", "ISK", "NOK", "PLN", "RON", "SEK",
	"USD", "GBP", "CHF", "JPY",
}

// Catalog returns every declarable unit in stable order: the pure unit,
// then the supported currencies.
func Catalog() []Unit {
	out := make([]Unit, 0, len(supportedCurrencies)+1)
	out = append(out, Unit{ID: UnitPure, Measure: "xbrli:pure"})
	for _, code := range supportedCurrencies {
		out = append(out, Unit{
			ID:      "unit_" + strings.ToLower(code),
			Measure: "iso4217:" + code,
		})
	}
	return out
}

// KnownCurrency reports whether the catalog declares a unit for the code.
func KnownCurrency(code string) bool {
	c := strings.ToUpper(strings.TrimSpace(code))
	for _, known := range supportedCurrencies {
		if known == c {
			return true
		}
	}
	return false
}

// currencyUnitID resolves a currency code to its unit identifier, falling
// back to the default currency for anything unrecognized.
func currencyUnitID(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !KnownCurrency(c) {
		c = DefaultCurrency
	}
	return "unit_" + strings.ToLower(c)
}

// UnitsFor filters the catalog down to the units a fact list actually
// references, preserving catalog order and dropping duplicates.
func UnitsFor(list []Fact) []Unit {
	referenced := make(map[string]bool)
	for _, f := range list {
		if f.Unit != "" {
			referenced[f.Unit] = true
		}
	}
	var out []Unit
	for _, u := range Catalog() {
		if referenced[u.ID] {
			out = append(out, u)
		}
	}
	return out
}
