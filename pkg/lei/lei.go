// Package lei validates ISO 17442 legal entity identifiers: 20-character
// format, ISO 7064 MOD 97-10 checksum, and the offeror/issuer/operator
// composition rules for white paper records. The optional registry
// cross-check is an injected collaborator; everything else is pure.
package lei

import (
	"context"
	"fmt"
	"strings"
)

// Rule identifiers carried by findings. External consumers filter on
// these, so they are stable.
const (
	// --- Identifier rules ---
	RuleMissing          = "LEI_MISSING"
	RuleFormat           = "LEI_FORMAT"
	RuleChecksum         = "LEI_CHECKSUM"
	RuleRegistryNotFound = "LEI_REGISTRY_NOT_FOUND"
)

// Record field paths reported in findings.
const (
	FieldOfferor  = "offeror.legalEntityIdentifier"
	FieldIssuer   = "issuer.legalEntityIdentifier"
	FieldOperator = "operator.legalEntityIdentifier"
)

// Finding is one identifier failure tagged with its rule.
type Finding struct {
	RuleID  string `json:"ruleId"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegistryStatus is the outcome of a remote registry cross-check.
type RegistryStatus string

const (
	// RegistryConfirmed means the registry returned a live record.
	RegistryConfirmed RegistryStatus = "CONFIRMED"
	// RegistryNotFound means the registry affirmatively knows no such
	// identifier. This is the only negative outcome.
	RegistryNotFound RegistryStatus = "NOT_FOUND"
	// RegistryUnconfirmed covers timeouts, network errors and unexpected
	// responses: the check neither confirms nor contradicts the code.
	RegistryUnconfirmed RegistryStatus = "UNCONFIRMED"
)

// RegistryOutcome carries the registry's answer for a lookup.
type RegistryOutcome struct {
	Status             RegistryStatus `json:"status"`
	LegalName          string         `json:"legalName,omitempty"`
	EntityStatus       string         `json:"entityStatus,omitempty"`
	RegistrationStatus string         `json:"registrationStatus,omitempty"`
	Country            string         `json:"country,omitempty"`
}

// Registry looks up an identifier in a remote register. Implementations
// must enforce their own timeout and fold every failure mode except an
// affirmative not-found into RegistryUnconfirmed; Lookup never blocks
// beyond that timeout and never returns an error.
type Registry interface {
	Lookup(ctx context.Context, code string) RegistryOutcome
}

// Options configures a validation call.
type Options struct {
	// Registry enables the remote cross-check when non-nil. Format and
	// checksum failures skip the lookup.
	Registry Registry
}

// Result is the structured outcome of validating one identifier.
type Result struct {
	// Code is the uppercased input.
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
	// Finding holds the first failure, nil when valid.
	Finding *Finding `json:"finding,omitempty"`
	// Registry is set when a registry cross-check ran.
	Registry *RegistryOutcome `json:"registry,omitempty"`
}

// IsValidFormat reports whether code has the ISO 17442 shape after
// uppercasing: 20 characters, the first 18 alphanumeric, the final 2
// decimal digits.
func IsValidFormat(code string) bool {
	c := strings.ToUpper(code)
	if len(c) != 20 {
		return false
	}
	for i := 0; i < 18; i++ {
		ch := c[i]
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			return false
		}
	}
	return c[18] >= '0' && c[18] <= '9' && c[19] >= '0' && c[19] <= '9'
}

// ValidChecksum reports whether the code passes ISO 7064 MOD 97-10:
// with letters expanded to their two-digit values (A=10 … Z=35), the
// resulting numeral must be congruent to 1 modulo 97. Format-invalid
// codes fail without a checksum computation.
func ValidChecksum(code string) bool {
	if !IsValidFormat(code) {
		return false
	}
	c := strings.ToUpper(code)
	acc := 0
	for i := 0; i < len(c); i++ {
		ch := c[i]
		if ch >= '0' && ch <= '9' {
			acc = (acc*10 + int(ch-'0')) % 97
		} else {
			acc = (acc*100 + int(ch-'A') + 10) % 97
		}
	}
	return acc == 1
}

// Validate runs the ordered identifier checks for one code: missing,
// then format, then checksum, then (when requested and locally valid)
// the registry cross-check. The first failure wins.
func Validate(ctx context.Context, code string, opts Options) Result {
	res := Result{Code: strings.ToUpper(strings.TrimSpace(code))}

	if res.Code == "" {
		res.Finding = &Finding{
			RuleID:  RuleMissing,
			Message: "legal entity identifier is missing",
		}
		return res
	}
	if !IsValidFormat(res.Code) {
		res.Finding = &Finding{
			RuleID:  RuleFormat,
			Message: fmt.Sprintf("legal entity identifier %q is not a valid 20-character ISO 17442 code", res.Code),
		}
		return res
	}
	if !ValidChecksum(res.Code) {
		res.Finding = &Finding{
			RuleID:  RuleChecksum,
			Message: fmt.Sprintf("legal entity identifier %q fails the ISO 7064 MOD 97-10 checksum", res.Code),
		}
		return res
	}

	res.Valid = true
	if opts.Registry != nil {
		outcome := opts.Registry.Lookup(ctx, res.Code)
		res.Registry = &outcome
		if outcome.Status == RegistryNotFound {
			res.Valid = false
			res.Finding = &Finding{
				RuleID:  RuleRegistryNotFound,
				Message: fmt.Sprintf("legal entity identifier %q is not listed in the registry", res.Code),
			}
		}
	}
	return res
}

// Identifiers carries the up to three identifier fields of a record.
type Identifiers struct {
	Offeror  string
	Issuer   string
	Operator string
}

// ValidateAll applies the composition rules: the offeror identifier is
// always required and fully validated; issuer and operator identifiers
// are validated only when supplied, not a recognized "not applicable"
// sentinel, and different from the offeror's code. Findings carry the
// record field path they concern.
func ValidateAll(ctx context.Context, ids Identifiers, opts Options) []Finding {
	var findings []Finding

	offeror := Validate(ctx, ids.Offeror, opts)
	if offeror.Finding != nil {
		f := *offeror.Finding
		f.Field = FieldOfferor
		findings = append(findings, f)
	}

	for _, secondary := range []struct {
		code  string
		field string
	}{
		{ids.Issuer, FieldIssuer},
		{ids.Operator, FieldOperator},
	} {
		code := strings.TrimSpace(secondary.code)
		if code == "" || NotApplicable(code) {
			continue
		}
		if strings.EqualFold(code, offeror.Code) {
			continue
		}
		res := Validate(ctx, code, opts)
		if res.Finding != nil {
			f := *res.Finding
			f.Field = secondary.field
			findings = append(findings, f)
		}
	}
	return findings
}
