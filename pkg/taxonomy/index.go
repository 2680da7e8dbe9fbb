package taxonomy

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// Index provides O(1) element lookup by qualified and local name plus
// ordered filtered views. Build it once with NewIndex and share it; all
// methods are read-only.
type Index struct {
	catalog   *Catalog
	byName    map[string]*Element
	byLocal   map[string]*Element
	bySection map[whitepaper.Section][]*Element
}

// NewIndex builds the lookup structures for a loaded catalog.
func NewIndex(cat *Catalog) *Index {
	ix := &Index{
		catalog:   cat,
		byName:    make(map[string]*Element, len(cat.Elements)),
		byLocal:   make(map[string]*Element, len(cat.Elements)),
		bySection: make(map[whitepaper.Section][]*Element),
	}
	for _, el := range cat.Elements {
		ix.byName[el.Name] = el
		ix.byLocal[el.LocalName] = el
		ix.bySection[el.Section] = append(ix.bySection[el.Section], el)
	}
	return ix
}

// Version returns the loaded catalog version.
func (ix *Index) Version() string { return ix.catalog.Version }

// EntryPoint returns the taxonomy schema URL referenced by generated
// documents.
func (ix *Index) EntryPoint() string { return ix.catalog.EntryPoint }

// Namespaces returns the catalog's prefix-to-URI map. Callers must treat
// the map as read-only.
func (ix *Index) Namespaces() map[string]string { return ix.catalog.Namespaces }

// Elements returns every element in declaration order.
func (ix *Index) Elements() []*Element { return ix.catalog.Elements }

// ByName looks up an element by qualified name ("mica:OfferorLegalName").
func (ix *Index) ByName(name string) (*Element, bool) {
	el, ok := ix.byName[name]
	return el, ok
}

// ByLocalName looks up an element by local name ("OfferorLegalName").
func (ix *Index) ByLocalName(local string) (*Element, bool) {
	el, ok := ix.byLocal[local]
	return el, ok
}

// BySection returns the section's elements in declaration order.
func (ix *Index) BySection(section whitepaper.Section) []*Element {
	return ix.bySection[section]
}

// ByTokenType returns every element applicable to a token type, in
// declaration order, abstract headers included.
func (ix *Index) ByTokenType(tt whitepaper.TokenType) []*Element {
	var out []*Element
	for _, el := range ix.catalog.Elements {
		if el.AppliesToType(tt) {
			out = append(out, el)
		}
	}
	return out
}

// ByTokenTypeAndSection returns the section's elements applicable to a
// token type, in declaration order.
func (ix *Index) ByTokenTypeAndSection(tt whitepaper.TokenType, section whitepaper.Section) []*Element {
	var out []*Element
	for _, el := range ix.bySection[section] {
		if el.AppliesToType(tt) {
			out = append(out, el)
		}
	}
	return out
}

// ByKind returns every element of the given kind in declaration order.
func (ix *Index) ByKind(kind ElementKind) []*Element {
	var out []*Element
	for _, el := range ix.catalog.Elements {
		if el.Kind == kind {
			out = append(out, el)
		}
	}
	return out
}

// SearchByLabel returns elements whose label or documentation contains the
// query, case-insensitively. Both sides are NFKC normalized so ligatures
// and width variants match their plain forms. An empty query matches
// nothing.
func (ix *Index) SearchByLabel(query string) []*Element {
	if query == "" {
		return nil
	}
	q := searchFold(query)
	var out []*Element
	for _, el := range ix.catalog.Elements {
		if strings.Contains(searchFold(el.Label), q) ||
			strings.Contains(searchFold(el.Documentation), q) {
			out = append(out, el)
		}
	}
	return out
}

func searchFold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// ReportableElements returns every non-abstract element in declaration
// order.
func (ix *Index) ReportableElements() []*Element {
	var out []*Element
	for _, el := range ix.catalog.Elements {
		if !el.Abstract {
			out = append(out, el)
		}
	}
	return out
}

// ReportableFor returns the non-abstract elements applicable to a token
// type, in declaration order. This is the set the fact builder walks.
func (ix *Index) ReportableFor(tt whitepaper.TokenType) []*Element {
	var out []*Element
	for _, el := range ix.catalog.Elements {
		if !el.Abstract && el.AppliesToType(tt) {
			out = append(out, el)
		}
	}
	return out
}

// SectionCount aggregates how many reportable elements a section carries
// for one token type.
type SectionCount struct {
	Total       int `json:"total"`
	Required    int `json:"required"`
	Recommended int `json:"recommended"`
}

// SectionCounts partitions the reportable element counts by section for a
// token type. Sections with no applicable elements are omitted.
func (ix *Index) SectionCounts(tt whitepaper.TokenType) map[whitepaper.Section]SectionCount {
	counts := make(map[whitepaper.Section]SectionCount)
	for _, el := range ix.catalog.Elements {
		if el.Abstract || !el.AppliesToType(tt) {
			continue
		}
		c := counts[el.Section]
		c.Total++
		if el.RequiredForType(tt) {
			c.Required++
		}
		if el.RecommendedForType(tt) {
			c.Recommended++
		}
		counts[el.Section] = c
	}
	return counts
}
