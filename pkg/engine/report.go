package engine

import (
	"time"

	"github.com/regberg-labs/micapress/pkg/rules"
	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// Category names one of the four validation passes a report merges.
type Category string

const (
	CategoryExistence  Category = "existence"
	CategoryValue      Category = "value"
	CategoryIdentifier Category = "identifier"
	CategoryDuplicate  Category = "duplicate"
)

// Fixed assertion counts for the passes that are not table-driven: the
// identifier pass always covers the offeror, issuer and operator codes,
// and the duplicate pass is one sweep over the built fact list.
const (
	identifierAssertionCount = 3
	duplicateAssertionCount  = 1
)

// Breakdown counts one category's findings by severity.
type Breakdown struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// AssertionCounts totals the assertions each pass carries for the
// record's token type, fired or not. Compliance dashboards divide the
// finding counts by these to show coverage. Passes a mode skips count
// zero, so Total always matches what actually ran.
type AssertionCounts struct {
	Existence  int `json:"existence"`
	Value      int `json:"value"`
	Identifier int `json:"identifier"`
	Duplicate  int `json:"duplicate"`
	Total      int `json:"total"`
}

// Report is the merged outcome of one validation call, shaped for direct
// serialization to a client. Findings appear twice: flat in Errors and
// Warnings for listing, and counted per category in Categories for
// breakdown panels. Valid is false exactly when Errors is non-empty;
// warnings never affect it.
type Report struct {
	ReportID    string                 `json:"reportId"`
	GeneratedAt time.Time              `json:"generatedAt"`
	TokenType   whitepaper.TokenType   `json:"tokenType"`
	Valid       bool                   `json:"valid"`
	Errors      []rules.Issue          `json:"errors"`
	Warnings    []rules.Issue          `json:"warnings"`
	Categories  map[Category]Breakdown `json:"categories"`
	Assertions  AssertionCounts        `json:"assertions"`

	// ContentHash is the canonical-JSON SHA-256 of the report's
	// deterministic fields. Two validations of the same record produce
	// the same hash even though their ids and timestamps differ.
	ContentHash string `json:"contentHash"`
}

// reportDigest is the subset of a report the content hash covers. Run
// identity stays out so identical inputs hash identically across runs.
type reportDigest struct {
	TokenType  whitepaper.TokenType   `json:"tokenType"`
	Valid      bool                   `json:"valid"`
	Errors     []rules.Issue          `json:"errors"`
	Warnings   []rules.Issue          `json:"warnings"`
	Categories map[Category]Breakdown `json:"categories"`
	Assertions AssertionCounts        `json:"assertions"`
}

func (r *Report) digest() reportDigest {
	return reportDigest{
		TokenType:  r.TokenType,
		Valid:      r.Valid,
		Errors:     r.Errors,
		Warnings:   r.Warnings,
		Categories: r.Categories,
		Assertions: r.Assertions,
	}
}

// GenerateResult carries one generated document and its fingerprint.
type GenerateResult struct {
	Document     string    `json:"document"`
	DocumentHash string    `json:"documentHash"`
	FactCount    int       `json:"factCount"`
	GeneratedAt  time.Time `json:"generatedAt"`
}
