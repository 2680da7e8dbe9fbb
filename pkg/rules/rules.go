// Package rules implements the existence and value assertion engines for
// white paper validation. Existence assertions derive from the taxonomy
// catalog's required/recommended markings plus a fixed overlay of
// conditional requirements gated by CEL expressions over the record; value
// assertions are a fixed table of range, ordering and format checks applied
// to fields that are present. Both engines are pure functions of the record
// and share the read-only taxonomy index.
package rules

import (
	"encoding/json"
	"fmt"

	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// Severity grades an assertion failure. Errors block validity; warnings
// never do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one assertion failure, tagged with the stable rule identifier
// external consumers filter on.
type Issue struct {
	RuleID   string   `json:"ruleId"`
	Severity Severity `json:"severity"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
}

// Result groups one engine pass's failures by severity.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

func (r *Result) add(iss Issue) {
	if iss.Severity == SeverityError {
		r.Errors = append(r.Errors, iss)
	} else {
		r.Warnings = append(r.Warnings, iss)
	}
}

// Summary counts the assertions an engine carries: how many in total, how
// many mandatory, how many merely recommended. Both engines report the same
// shape so category totals add up in the validation report.
type Summary struct {
	Total       int `json:"total"`
	Required    int `json:"required"`
	Recommended int `json:"recommended"`
}

// recordInput converts a record into the CEL evaluation activation. The
// JSON round-trip yields the same map shape conditions are written
// against: absent sections and fields have no key at all.
func recordInput(rec *whitepaper.Record) (map[string]any, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("remarshal record: %w", err)
	}
	return map[string]any{"record": m}, nil
}
