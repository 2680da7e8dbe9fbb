// Package taxonomy loads the versioned catalog of reportable white paper
// elements and indexes it for lookup. The catalog is read once per process
// and shared read-only; engines receive the index as an explicit dependency
// rather than through package-level state.
package taxonomy

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// CatalogConstraint is the semver range of catalog versions this engine
// understands. Catalogs outside the range are rejected at load time.
const CatalogConstraint = "^1.0"

// ElementKind classifies the data a taxonomy element carries.
type ElementKind string

const (
	KindString     ElementKind = "string"
	KindTextBlock  ElementKind = "textBlock"
	KindBoolean    ElementKind = "boolean"
	KindDate       ElementKind = "date"
	KindMonetary   ElementKind = "monetary"
	KindInteger    ElementKind = "integer"
	KindDecimal    ElementKind = "decimal"
	KindPercentage ElementKind = "percentage"
)

// Valid reports whether k is a known kind.
func (k ElementKind) Valid() bool {
	switch k {
	case KindString, KindTextBlock, KindBoolean, KindDate,
		KindMonetary, KindInteger, KindDecimal, KindPercentage:
		return true
	}
	return false
}

// Numeric reports whether facts of this kind are candidates for numeric
// inline tagging with unit and precision attributes.
func (k ElementKind) Numeric() bool {
	switch k {
	case KindMonetary, KindInteger, KindDecimal, KindPercentage:
		return true
	}
	return false
}

// PeriodKind is the reporting period shape a fact of this element binds to.
type PeriodKind string

const (
	PeriodInstant  PeriodKind = "instant"
	PeriodDuration PeriodKind = "duration"
)

// Valid reports whether p is a known period kind.
func (p PeriodKind) Valid() bool {
	return p == PeriodInstant || p == PeriodDuration
}

// Element is one reportable (or abstract grouping) taxonomy concept.
// Elements are immutable after load.
type Element struct {
	// Name is the qualified element name, e.g. "mica:OfferorLegalName".
	Name          string             `yaml:"name"`
	Label         string             `yaml:"label"`
	Documentation string             `yaml:"documentation,omitempty"`
	Section       whitepaper.Section `yaml:"section"`
	Kind          ElementKind        `yaml:"kind"`
	Period        PeriodKind         `yaml:"period"`
	Abstract      bool               `yaml:"abstract,omitempty"`
	Nillable      bool               `yaml:"nillable,omitempty"`

	// Field is the record field path the element reports, empty for
	// abstract elements.
	Field string `yaml:"field,omitempty"`

	AppliesTo      []whitepaper.TokenType `yaml:"appliesTo"`
	RequiredFor    []whitepaper.TokenType `yaml:"requiredFor,omitempty"`
	RecommendedFor []whitepaper.TokenType `yaml:"recommendedFor,omitempty"`

	// Decimals overrides the kind's default precision when set.
	Decimals *int `yaml:"decimals,omitempty"`

	// Derived at load time, not part of the catalog file.
	Prefix    string `yaml:"-"`
	LocalName string `yaml:"-"`
	Order     int    `yaml:"-"`
}

func containsType(types []whitepaper.TokenType, tt whitepaper.TokenType) bool {
	for _, t := range types {
		if t == tt {
			return true
		}
	}
	return false
}

// AppliesToType reports whether the element is reportable for a token type.
func (e *Element) AppliesToType(tt whitepaper.TokenType) bool {
	return containsType(e.AppliesTo, tt)
}

// RequiredForType reports whether the element is mandatory for a token type.
func (e *Element) RequiredForType(tt whitepaper.TokenType) bool {
	return containsType(e.RequiredFor, tt)
}

// RecommendedForType reports whether the element is recommended (warning
// rather than error when absent) for a token type.
func (e *Element) RecommendedForType(tt whitepaper.TokenType) bool {
	return containsType(e.RecommendedFor, tt)
}

// Catalog is a parsed taxonomy catalog file.
type Catalog struct {
	Version    string            `yaml:"version"`
	EntryPoint string            `yaml:"entryPoint"`
	Namespaces map[string]string `yaml:"namespaces"`
	Elements   []*Element        `yaml:"elements"`
}

var elementNameRe = regexp.MustCompile(`^[a-z][a-z0-9]*:[A-Z][A-Za-z0-9]*$`)

// Load parses and validates a catalog document.
// Validation is strict: a catalog that names unknown kinds, undeclared
// namespace prefixes, or unknown record fields is rejected outright so a
// bad catalog can never half-load.
func Load(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := checkCatalogVersion(cat.Version); err != nil {
		return nil, err
	}
	if cat.EntryPoint == "" {
		return nil, fmt.Errorf("catalog %s: missing entryPoint", cat.Version)
	}
	if len(cat.Elements) == 0 {
		return nil, fmt.Errorf("catalog %s: no elements", cat.Version)
	}

	seen := make(map[string]bool, len(cat.Elements))
	seenLocal := make(map[string]bool, len(cat.Elements))
	for i, el := range cat.Elements {
		if !elementNameRe.MatchString(el.Name) {
			return nil, fmt.Errorf("element %d: invalid name %q", i, el.Name)
		}
		prefix, local, _ := strings.Cut(el.Name, ":")
		if _, ok := cat.Namespaces[prefix]; !ok {
			return nil, fmt.Errorf("element %s: undeclared namespace prefix %q", el.Name, prefix)
		}
		if seen[el.Name] {
			return nil, fmt.Errorf("element %s: duplicate name", el.Name)
		}
		if seenLocal[local] {
			return nil, fmt.Errorf("element %s: duplicate local name %q", el.Name, local)
		}
		seen[el.Name] = true
		seenLocal[local] = true

		if el.Label == "" {
			return nil, fmt.Errorf("element %s: missing label", el.Name)
		}
		if !el.Kind.Valid() {
			return nil, fmt.Errorf("element %s: unknown kind %q", el.Name, el.Kind)
		}
		if !el.Period.Valid() {
			return nil, fmt.Errorf("element %s: unknown period %q", el.Name, el.Period)
		}
		if !el.Section.Valid() {
			return nil, fmt.Errorf("element %s: unknown section %q", el.Name, el.Section)
		}
		if el.Abstract {
			if el.Field != "" {
				return nil, fmt.Errorf("element %s: abstract element must not bind a field", el.Name)
			}
		} else {
			if el.Field == "" {
				return nil, fmt.Errorf("element %s: missing field path", el.Name)
			}
			if !whitepaper.KnownPath(el.Field) {
				return nil, fmt.Errorf("element %s: unknown field path %q", el.Name, el.Field)
			}
			if whitepaper.SectionOfPath(el.Field) != el.Section {
				return nil, fmt.Errorf("element %s: field %q outside section %q", el.Name, el.Field, el.Section)
			}
		}
		if len(el.AppliesTo) == 0 {
			return nil, fmt.Errorf("element %s: empty appliesTo", el.Name)
		}
		for _, tt := range el.AppliesTo {
			if !tt.Valid() {
				return nil, fmt.Errorf("element %s: unknown token type %q in appliesTo", el.Name, tt)
			}
		}
		for _, tt := range el.RequiredFor {
			if !el.AppliesToType(tt) {
				return nil, fmt.Errorf("element %s: requiredFor %q outside appliesTo", el.Name, tt)
			}
		}
		for _, tt := range el.RecommendedFor {
			if !el.AppliesToType(tt) {
				return nil, fmt.Errorf("element %s: recommendedFor %q outside appliesTo", el.Name, tt)
			}
			if el.RequiredForType(tt) {
				return nil, fmt.Errorf("element %s: %q both required and recommended", el.Name, tt)
			}
		}

		el.Prefix = prefix
		el.LocalName = local
		el.Order = i
	}

	return &cat, nil
}

func checkCatalogVersion(version string) error {
	if version == "" {
		return fmt.Errorf("catalog: missing version")
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("catalog: invalid version %q: %w", version, err)
	}
	constraint, err := semver.NewConstraint(CatalogConstraint)
	if err != nil {
		return fmt.Errorf("catalog: invalid engine constraint %q: %w", CatalogConstraint, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("catalog version %s outside supported range %s", version, CatalogConstraint)
	}
	return nil
}

//go:embed catalog.yaml
var embeddedCatalog []byte

var (
	defaultOnce  sync.Once
	defaultIndex *Index
	defaultErr   error
)

// DefaultIndex loads and indexes the embedded catalog. The result is built
// once and shared; it is safe for unsynchronized concurrent reads.
func DefaultIndex() (*Index, error) {
	defaultOnce.Do(func() {
		cat, err := Load(embeddedCatalog)
		if err != nil {
			defaultErr = fmt.Errorf("embedded catalog: %w", err)
			return
		}
		defaultIndex = NewIndex(cat)
	})
	return defaultIndex, defaultErr
}
