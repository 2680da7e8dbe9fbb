package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// Value rule identifiers. Stable: external consumers filter and suppress
// on these, so renaming one is a breaking change.
const (
	// --- Hard errors ---
	RuleDateOrder           = "VAL_DATE_ORDER"
	RuleNumericPositive     = "VAL_NUMERIC_POSITIVE"
	RuleMonetaryNonNegative = "VAL_MONETARY_NON_NEGATIVE"
	RulePercentageBounds    = "VAL_PERCENTAGE_BOUNDS"
	RuleCountryFormat       = "VAL_COUNTRY_FORMAT"
	RuleDocumentDateFormat  = "VAL_DOCUMENT_DATE_FORMAT"
	RuleLanguageFormat      = "VAL_LANGUAGE_FORMAT"
	RuleEnergyNonNegative   = "VAL_ENERGY_NON_NEGATIVE"

	// --- Soft warnings ---
	RuleURLFormat         = "VAL_URL_FORMAT"
	RuleEmailFormat       = "VAL_EMAIL_FORMAT"
	RuleLanguageRegion    = "VAL_LANGUAGE_REGION"
	RuleOfferCompleteness = "VAL_OFFER_COMPLETENESS"
	RuleSymbolUppercase   = "VAL_SYMBOL_UPPERCASE"
)

const dateLayout = "2006-01-02"

var (
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	countryRe  = regexp.MustCompile(`^[A-Z]{2}$`)
	languageRe = regexp.MustCompile(`^[a-z]{2}$`)
)

// regionalLanguages lists the ISO 639-1 codes of the official languages of
// the EU member states plus the EEA EFTA states. A well-formed code
// outside the list draws a warning, not an error.
var regionalLanguages = map[string]bool{
	"bg": true, "cs": true, "da": true, "de": true, "el": true,
	"en": true, "es": true, "et": true, "fi": true, "fr": true,
	"ga": true, "hr": true, "hu": true, "is": true, "it": true,
	"lt": true, "lv": true, "mt": true, "nl": true, "no": true,
	"pl": true, "pt": true, "ro": true, "sk": true, "sl": true,
	"sv": true,
}

// ValueRule is one entry of the fixed value assertion table. Check runs
// only over fields that are present; absence is the existence engine's
// concern.
type ValueRule struct {
	RuleID      string
	Severity    Severity
	Description string
	Check       func(*whitepaper.Record) []Issue
}

// ValueEngine evaluates the fixed value rule table against a record.
type ValueEngine struct {
	rules []ValueRule
}

// NewValueEngine returns an engine carrying the default rule table.
func NewValueEngine() *ValueEngine {
	return &ValueEngine{rules: defaultValueRules()}
}

func defaultValueRules() []ValueRule {
	return []ValueRule{
		{
			RuleID:      RuleDateOrder,
			Severity:    SeverityError,
			Description: "Subscription period end date must not precede its start date",
			Check:       checkDateOrder,
		},
		{
			RuleID:      RuleNumericPositive,
			Severity:    SeverityError,
			Description: "Supply and unit quantities must be greater than zero",
			Check:       checkNumericPositive,
		},
		{
			RuleID:      RuleMonetaryNonNegative,
			Severity:    SeverityError,
			Description: "Monetary amounts must not be negative",
			Check:       checkMonetaryNonNegative,
		},
		{
			RuleID:      RulePercentageBounds,
			Severity:    SeverityError,
			Description: "Percentages must lie between 0 and 100",
			Check:       checkPercentageBounds,
		},
		{
			RuleID:      RuleCountryFormat,
			Severity:    SeverityError,
			Description: "Country codes must be two upper-case letters",
			Check:       checkCountryFormat,
		},
		{
			RuleID:      RuleDocumentDateFormat,
			Severity:    SeverityError,
			Description: "Document date must be a valid YYYY-MM-DD date",
			Check:       checkDocumentDateFormat,
		},
		{
			RuleID:      RuleLanguageFormat,
			Severity:    SeverityError,
			Description: "Language code must be two lower-case letters",
			Check:       checkLanguageFormat,
		},
		{
			RuleID:      RuleEnergyNonNegative,
			Severity:    SeverityError,
			Description: "Sustainability indicators must not be negative",
			Check:       checkEnergyNonNegative,
		},
		{
			RuleID:      RuleURLFormat,
			Severity:    SeverityWarning,
			Description: "Website fields should be valid absolute URLs",
			Check:       checkURLFormat,
		},
		{
			RuleID:      RuleEmailFormat,
			Severity:    SeverityWarning,
			Description: "Contact e-mail addresses should be well-formed",
			Check:       checkEmailFormat,
		},
		{
			RuleID:      RuleLanguageRegion,
			Severity:    SeverityWarning,
			Description: "Language should be an official EU or EEA language",
			Check:       checkLanguageRegion,
		},
		{
			RuleID:      RuleOfferCompleteness,
			Severity:    SeverityWarning,
			Description: "A public offering should state a price or a subscription goal",
			Check:       checkOfferCompleteness,
		},
		{
			RuleID:      RuleSymbolUppercase,
			Severity:    SeverityWarning,
			Description: "Ticker symbols should be fully upper-case",
			Check:       checkSymbolUppercase,
		},
	}
}

// Rules returns the engine's rule table. The slice is shared; callers
// must not modify it.
func (e *ValueEngine) Rules() []ValueRule { return e.rules }

// Evaluate runs every rule against the record and stamps each raised
// issue with its rule's identifier and severity.
func (e *ValueEngine) Evaluate(rec *whitepaper.Record) Result {
	var res Result
	for _, rule := range e.rules {
		for _, iss := range rule.Check(rec) {
			iss.RuleID = rule.RuleID
			iss.Severity = rule.Severity
			res.add(iss)
		}
	}
	return res
}

// Summary reports the rule counts in the same shape as the existence
// engine: error-severity rules count as required, warning-severity as
// recommended.
func (e *ValueEngine) Summary() Summary {
	var s Summary
	for _, rule := range e.rules {
		s.Total++
		if rule.Severity == SeverityError {
			s.Required++
		} else {
			s.Recommended++
		}
	}
	return s
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func checkDateOrder(r *whitepaper.Record) []Issue {
	if r.Offer == nil || r.Offer.SubscriptionPeriodStart == "" || r.Offer.SubscriptionPeriodEnd == "" {
		return nil
	}
	start, err := time.Parse(dateLayout, r.Offer.SubscriptionPeriodStart)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, r.Offer.SubscriptionPeriodEnd)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return []Issue{{
			Field:   "offer.subscriptionPeriodEnd",
			Message: fmt.Sprintf("subscription period end %s precedes its start %s", r.Offer.SubscriptionPeriodEnd, r.Offer.SubscriptionPeriodStart),
		}}
	}
	return nil
}

func checkNumericPositive(r *whitepaper.Record) []Issue {
	var issues []Issue
	quantities := []struct {
		field string
		label string
		value *float64
	}{
		{"asset.totalSupply", "total supply", supplyOf(r)},
		{"offer.totalUnitsOffered", "total number of units offered", unitsOf(r)},
	}
	for _, q := range quantities {
		if q.value != nil && *q.value <= 0 {
			issues = append(issues, Issue{
				Field:   q.field,
				Message: fmt.Sprintf("%s must be greater than zero, got %s", q.label, formatNumber(*q.value)),
			})
		}
	}
	return issues
}

func supplyOf(r *whitepaper.Record) *float64 {
	if r.Asset == nil {
		return nil
	}
	return r.Asset.TotalSupply
}

func unitsOf(r *whitepaper.Record) *float64 {
	if r.Offer == nil {
		return nil
	}
	return r.Offer.TotalUnitsOffered
}

func checkMonetaryNonNegative(r *whitepaper.Record) []Issue {
	if r.Offer == nil {
		return nil
	}
	var issues []Issue
	amounts := []struct {
		field string
		label string
		value *whitepaper.Monetary
	}{
		{"offer.offerPrice", "offer price", r.Offer.OfferPrice},
		{"offer.minimumSubscriptionGoal", "minimum subscription goal", r.Offer.MinimumSubscriptionGoal},
		{"offer.maximumSubscriptionGoal", "maximum subscription goal", r.Offer.MaximumSubscriptionGoal},
	}
	for _, a := range amounts {
		if a.value != nil && a.value.Amount < 0 {
			issues = append(issues, Issue{
				Field:   a.field,
				Message: fmt.Sprintf("%s must not be negative, got %s", a.label, formatNumber(a.value.Amount)),
			})
		}
	}
	return issues
}

func checkPercentageBounds(r *whitepaper.Record) []Issue {
	if r.Sustainability == nil || r.Sustainability.RenewableEnergyPercentage == nil {
		return nil
	}
	v := *r.Sustainability.RenewableEnergyPercentage
	if v < 0 || v > 100 {
		return []Issue{{
			Field:   "sustainability.renewableEnergyPercentage",
			Message: fmt.Sprintf("share of renewable energy must lie between 0 and 100, got %s", formatNumber(v)),
		}}
	}
	return nil
}

func checkCountryFormat(r *whitepaper.Record) []Issue {
	var issues []Issue
	countries := []struct {
		field string
		value string
	}{
		{"offeror.country", sectionString(r.Offeror != nil, func() string { return r.Offeror.Country })},
		{"issuer.country", sectionString(r.Issuer != nil, func() string { return r.Issuer.Country })},
		{"operator.country", sectionString(r.Operator != nil, func() string { return r.Operator.Country })},
	}
	for _, c := range countries {
		if c.value != "" && !countryRe.MatchString(c.value) {
			issues = append(issues, Issue{
				Field:   c.field,
				Message: fmt.Sprintf("country code %q must be two upper-case letters (ISO 3166-1 alpha-2)", c.value),
			})
		}
	}
	return issues
}

func sectionString(present bool, get func() string) string {
	if !present {
		return ""
	}
	return get()
}

func checkDocumentDateFormat(r *whitepaper.Record) []Issue {
	if r.DocumentDate == "" {
		return nil
	}
	if !dateRe.MatchString(r.DocumentDate) {
		return []Issue{{
			Field:   "documentDate",
			Message: fmt.Sprintf("document date %q must use the YYYY-MM-DD format", r.DocumentDate),
		}}
	}
	if _, err := time.Parse(dateLayout, r.DocumentDate); err != nil {
		return []Issue{{
			Field:   "documentDate",
			Message: fmt.Sprintf("document date %q is not a valid calendar date", r.DocumentDate),
		}}
	}
	return nil
}

func checkLanguageFormat(r *whitepaper.Record) []Issue {
	if r.Language == "" || languageRe.MatchString(r.Language) {
		return nil
	}
	return []Issue{{
		Field:   "language",
		Message: fmt.Sprintf("language code %q must be two lower-case letters (ISO 639-1)", r.Language),
	}}
}

// checkLanguageRegion warns about well-formed codes outside the regional
// allow-list. A format violation suppresses the warning so one root cause
// does not signal twice.
func checkLanguageRegion(r *whitepaper.Record) []Issue {
	if r.Language == "" || !languageRe.MatchString(r.Language) {
		return nil
	}
	if regionalLanguages[r.Language] {
		return nil
	}
	return []Issue{{
		Field:   "language",
		Message: fmt.Sprintf("language %q is not an official language of the EU or the EEA", r.Language),
	}}
}

func checkURLFormat(r *whitepaper.Record) []Issue {
	var issues []Issue
	sites := []struct {
		field string
		value string
	}{
		{"offeror.website", sectionString(r.Offeror != nil, func() string { return r.Offeror.Website })},
		{"operator.website", sectionString(r.Operator != nil, func() string { return r.Operator.Website })},
		{"project.website", sectionString(r.Project != nil, func() string { return r.Project.Website })},
	}
	for _, s := range sites {
		if s.value == "" {
			continue
		}
		if !govalidator.IsRequestURL(s.value) || !govalidator.IsURL(s.value) {
			issues = append(issues, Issue{
				Field:   s.field,
				Message: fmt.Sprintf("%q is not a valid absolute URL", s.value),
			})
		}
	}
	return issues
}

func checkEmailFormat(r *whitepaper.Record) []Issue {
	if r.Offeror == nil || r.Offeror.ContactEmail == "" {
		return nil
	}
	if govalidator.IsEmail(r.Offeror.ContactEmail) {
		return nil
	}
	return []Issue{{
		Field:   "offeror.contactEmail",
		Message: fmt.Sprintf("%q is not a valid e-mail address", r.Offeror.ContactEmail),
	}}
}

func checkOfferCompleteness(r *whitepaper.Record) []Issue {
	o := r.Offer
	if o == nil || o.IsPublicOffering == nil || !*o.IsPublicOffering {
		return nil
	}
	if o.OfferPrice != nil || o.MinimumSubscriptionGoal != nil || o.MaximumSubscriptionGoal != nil {
		return nil
	}
	return []Issue{{
		Field:   "offer",
		Message: "an offer to the public should state an offer price or a subscription goal",
	}}
}

func checkSymbolUppercase(r *whitepaper.Record) []Issue {
	if r.Asset == nil || r.Asset.AssetSymbol == "" {
		return nil
	}
	if r.Asset.AssetSymbol == strings.ToUpper(r.Asset.AssetSymbol) {
		return nil
	}
	return []Issue{{
		Field:   "asset.assetSymbol",
		Message: fmt.Sprintf("ticker symbol %q should be fully upper-case", r.Asset.AssetSymbol),
	}}
}

func checkEnergyNonNegative(r *whitepaper.Record) []Issue {
	if r.Sustainability == nil {
		return nil
	}
	var issues []Issue
	indicators := []struct {
		field string
		label string
		value *float64
	}{
		{"sustainability.energyConsumption", "energy consumption", r.Sustainability.EnergyConsumption},
		{"sustainability.energyIntensity", "energy intensity", r.Sustainability.EnergyIntensity},
		{"sustainability.ghgEmissions", "greenhouse gas emissions", r.Sustainability.GHGEmissions},
	}
	for _, ind := range indicators {
		if ind.value != nil && *ind.value < 0 {
			issues = append(issues, Issue{
				Field:   ind.field,
				Message: fmt.Sprintf("%s must not be negative, got %s", ind.label, formatNumber(*ind.value)),
			})
		}
	}
	return issues
}
