package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/regberg-labs/micapress/pkg/taxonomy"
	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// Assertion is one existence rule: the named field must be present, either
// unconditionally (derived from the catalog's required/recommended
// markings) or when its CEL condition holds against the record.
type Assertion struct {
	RuleID    string             `json:"ruleId"`
	Field     string             `json:"field"`
	Element   string             `json:"element"`
	Section   whitepaper.Section `json:"section"`
	Severity  Severity           `json:"severity"`
	Condition string             `json:"condition,omitempty"`
	Message   string             `json:"message"`
}

// overlayAssertions are the conditional requirements the static catalog
// cannot express: fields that become mandatory (or recommended) only when
// a gating field or section is supplied. Rule identifiers follow the same
// EXIST_ scheme as the derived assertions.
func overlayAssertions() []Assertion {
	const (
		publicOffering = `has(record.offer) && has(record.offer.isPublicOffering) && record.offer.isPublicOffering == true`
		issuerDeclared = `has(record.issuer)`
		operatorDrawn  = `has(record.operator)`
	)
	return []Assertion{
		{
			RuleID:    "EXIST_SUBSCRIPTION_PERIOD_START",
			Field:     "offer.subscriptionPeriodStart",
			Severity:  SeverityError,
			Condition: publicOffering,
			Message:   "Start date of the subscription period is required for an offer to the public",
		},
		{
			RuleID:    "EXIST_SUBSCRIPTION_PERIOD_END",
			Field:     "offer.subscriptionPeriodEnd",
			Severity:  SeverityError,
			Condition: publicOffering,
			Message:   "End date of the subscription period is required for an offer to the public",
		},

		{
			RuleID:    "EXIST_ISSUER_LEGAL_NAME",
			Field:     "issuer.legalName",
			Severity:  SeverityError,
			Condition: issuerDeclared,
			Message:   "Legal name of the issuer is required when an issuer is declared",
		},
		{
			RuleID:    "EXIST_ISSUER_COUNTRY",
			Field:     "issuer.country",
			Severity:  SeverityError,
			Condition: issuerDeclared,
			Message:   "Country of incorporation of the issuer is required when an issuer is declared",
		},
		{
			RuleID:    "EXIST_ISSUER_LEGAL_FORM",
			Field:     "issuer.legalForm",
			Severity:  SeverityWarning,
			Condition: issuerDeclared,
			Message:   "Legal form of the issuer is recommended when an issuer is declared",
		},
		{
			RuleID:    "EXIST_ISSUER_REGISTERED_ADDRESS",
			Field:     "issuer.registeredAddress",
			Severity:  SeverityWarning,
			Condition: issuerDeclared,
			Message:   "Registered address of the issuer is recommended when an issuer is declared",
		},
		{
			RuleID:    "EXIST_ISSUER_BUSINESS_ACTIVITY",
			Field:     "issuer.businessActivity",
			Severity:  SeverityWarning,
			Condition: issuerDeclared,
			Message:   "Principal business activity of the issuer is recommended when an issuer is declared",
		},

		{
			RuleID:    "EXIST_OPERATOR_LEGAL_NAME",
			Field:     "operator.legalName",
			Severity:  SeverityError,
			Condition: operatorDrawn,
			Message:   "Legal name of the trading platform operator is required when the operator drew up the white paper",
		},
		{
			RuleID:    "EXIST_OPERATOR_COUNTRY",
			Field:     "operator.country",
			Severity:  SeverityError,
			Condition: operatorDrawn,
			Message:   "Country of incorporation of the trading platform operator is required when the operator drew up the white paper",
		},
		{
			RuleID:    "EXIST_REASON_FOR_DRAWING_UP_WHITE_PAPER",
			Field:     "operator.reasonForDrawingUp",
			Severity:  SeverityError,
			Condition: operatorDrawn,
			Message:   "Reason why the operator drew up the white paper is required when the operator drew up the white paper",
		},
		{
			RuleID:    "EXIST_OPERATOR_LEGAL_FORM",
			Field:     "operator.legalForm",
			Severity:  SeverityWarning,
			Condition: operatorDrawn,
			Message:   "Legal form of the trading platform operator is recommended when the operator drew up the white paper",
		},
		{
			RuleID:    "EXIST_OPERATOR_WEBSITE",
			Field:     "operator.website",
			Severity:  SeverityWarning,
			Condition: operatorDrawn,
			Message:   "Website of the trading platform operator is recommended when the operator drew up the white paper",
		},
	}
}

// ExistenceEngine evaluates field-presence assertions for one token type.
// Construct it once per index and share it; evaluation is read-only.
type ExistenceEngine struct {
	index      *taxonomy.Index
	conditions *conditionSet
	assertions map[whitepaper.TokenType][]Assertion
}

// NewExistenceEngine derives the per-token-type assertion sets from the
// index and pre-compiles every overlay condition. A catalog/overlay
// mismatch (an overlay field with no backing element) fails construction.
func NewExistenceEngine(ix *taxonomy.Index) (*ExistenceEngine, error) {
	conditions, err := newConditionSet()
	if err != nil {
		return nil, err
	}

	byField := make(map[string]*taxonomy.Element)
	for _, el := range ix.ReportableElements() {
		byField[el.Field] = el
	}

	overlays := overlayAssertions()
	for i := range overlays {
		oa := &overlays[i]
		el, ok := byField[oa.Field]
		if !ok {
			return nil, fmt.Errorf("overlay assertion %s: no element reports field %q", oa.RuleID, oa.Field)
		}
		oa.Element = el.Name
		oa.Section = whitepaper.SectionOfPath(oa.Field)
		if err := conditions.compile(oa.Condition); err != nil {
			return nil, fmt.Errorf("overlay assertion %s: %w", oa.RuleID, err)
		}
	}

	e := &ExistenceEngine{
		index:      ix,
		conditions: conditions,
		assertions: make(map[whitepaper.TokenType][]Assertion),
	}
	for _, tt := range whitepaper.AllTokenTypes() {
		e.assertions[tt] = buildAssertions(ix, byField, overlays, tt)
	}
	return e, nil
}

// buildAssertions walks the sections in annex order: first the catalog's
// static markings, then the overlay entries whose element applies to the
// token type. The result is the fixed evaluation order.
func buildAssertions(ix *taxonomy.Index, byField map[string]*taxonomy.Element, overlays []Assertion, tt whitepaper.TokenType) []Assertion {
	var out []Assertion
	for _, section := range whitepaper.SectionOrder() {
		for _, el := range ix.ByTokenTypeAndSection(tt, section) {
			if el.Abstract {
				continue
			}
			switch {
			case el.RequiredForType(tt):
				out = append(out, Assertion{
					RuleID:   existRuleID(el.LocalName),
					Field:    el.Field,
					Element:  el.Name,
					Section:  section,
					Severity: SeverityError,
					Message:  fmt.Sprintf("%s is required for %s white papers", el.Label, tt),
				})
			case el.RecommendedForType(tt):
				out = append(out, Assertion{
					RuleID:   existRuleID(el.LocalName),
					Field:    el.Field,
					Element:  el.Name,
					Section:  section,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("%s is recommended for %s white papers", el.Label, tt),
				})
			}
		}
		for _, oa := range overlays {
			if oa.Section != section {
				continue
			}
			if el := byField[oa.Field]; el == nil || !el.AppliesToType(tt) {
				continue
			}
			out = append(out, oa)
		}
	}
	return out
}

// existRuleID derives the stable rule identifier from an element local
// name: OfferorLegalName becomes EXIST_OFFEROR_LEGAL_NAME.
func existRuleID(local string) string {
	runes := []rune(local)
	var b strings.Builder
	b.WriteString("EXIST_")
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Assertions returns the engine's ordered assertion set for a token type.
// The slice is shared; callers must not modify it.
func (e *ExistenceEngine) Assertions(tt whitepaper.TokenType) []Assertion {
	return e.assertions[tt]
}

// Evaluate checks every applicable assertion against the record. An
// assertion whose condition is unmet is skipped silently; a met (or
// unconditional) assertion over an absent field yields an error or a
// warning per its severity.
func (e *ExistenceEngine) Evaluate(rec *whitepaper.Record, tt whitepaper.TokenType) (Result, error) {
	var res Result
	input, err := recordInput(rec)
	if err != nil {
		return res, err
	}
	for _, a := range e.assertions[tt] {
		if a.Condition != "" && !e.conditions.met(a.Condition, input) {
			continue
		}
		if _, present := rec.FieldByPath(a.Field); present {
			continue
		}
		res.add(Issue{RuleID: a.RuleID, Severity: a.Severity, Field: a.Field, Message: a.Message})
	}
	return res, nil
}

// Summary returns the overall assertion counts for a token type.
func (e *ExistenceEngine) Summary(tt whitepaper.TokenType) Summary {
	var s Summary
	for _, a := range e.assertions[tt] {
		s.Total++
		if a.Severity == SeverityError {
			s.Required++
		} else {
			s.Recommended++
		}
	}
	return s
}

// SummaryBySection partitions the assertion counts by owning section, in
// the shape external dashboards consume. Sections without assertions are
// omitted.
func (e *ExistenceEngine) SummaryBySection(tt whitepaper.TokenType) map[whitepaper.Section]Summary {
	out := make(map[whitepaper.Section]Summary)
	for _, a := range e.assertions[tt] {
		s := out[a.Section]
		s.Total++
		if a.Severity == SeverityError {
			s.Required++
		} else {
			s.Recommended++
		}
		out[a.Section] = s
	}
	return out
}
