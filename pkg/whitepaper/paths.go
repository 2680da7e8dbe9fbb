package whitepaper

import (
	"sort"
	"strings"
)

// Section names one annex part of the white paper.
type Section string

const (
	SectionDocument       Section = "document"
	SectionSummary        Section = "summary"
	SectionOfferor        Section = "offeror"
	SectionIssuer         Section = "issuer"
	SectionOperator       Section = "operator"
	SectionProject        Section = "project"
	SectionOffer          Section = "offer"
	SectionAsset          Section = "asset"
	SectionRights         Section = "rights"
	SectionTechnology     Section = "technology"
	SectionRisks          Section = "risks"
	SectionSustainability Section = "sustainability"
)

// Valid reports whether s is one of the known annex sections.
func (s Section) Valid() bool {
	switch s {
	case SectionDocument, SectionSummary, SectionOfferor, SectionIssuer,
		SectionOperator, SectionProject, SectionOffer, SectionAsset,
		SectionRights, SectionTechnology, SectionRisks, SectionSustainability:
		return true
	}
	return false
}

// SectionOrder returns all sections in annex order. The order is fixed; it
// drives assertion ordering and document assembly.
func SectionOrder() []Section {
	return []Section{
		SectionDocument,
		SectionSummary,
		SectionOfferor,
		SectionIssuer,
		SectionOperator,
		SectionProject,
		SectionOffer,
		SectionAsset,
		SectionRights,
		SectionTechnology,
		SectionRisks,
		SectionSustainability,
	}
}

// Title returns the section's display heading, following the annex part
// lettering of the published disclosure format.
func (s Section) Title() string {
	switch s {
	case SectionDocument:
		return "General information"
	case SectionSummary:
		return "Summary"
	case SectionOfferor:
		return "Part A: Information about the offeror"
	case SectionIssuer:
		return "Part B: Information about the issuer"
	case SectionOperator:
		return "Part C: Information about the trading platform operator"
	case SectionProject:
		return "Part D: Information about the crypto-asset project"
	case SectionOffer:
		return "Part E: Information about the offer to the public or admission to trading"
	case SectionAsset:
		return "Part F: Information about the crypto-assets"
	case SectionRights:
		return "Part G: Rights and obligations attached to the crypto-assets"
	case SectionTechnology:
		return "Part H: Information on the underlying technology"
	case SectionRisks:
		return "Part I: Information on the risks"
	case SectionSustainability:
		return "Part J: Climate and environment-related adverse impacts"
	}
	return string(s)
}

// SectionOfPath derives the owning section from a field path. Top-level
// metadata fields (documentDate, language) belong to the document section.
func SectionOfPath(path string) Section {
	head, _, found := strings.Cut(path, ".")
	if !found {
		switch path {
		case "documentDate", "language", "tokenType":
			return SectionDocument
		}
	}
	return Section(head)
}

type fieldGetter func(*Record) (any, bool)

// str treats the empty string as absent.
func str(s string) (any, bool) {
	return s, s != ""
}

func boolVal(b *bool) (any, bool) {
	if b == nil {
		return false, false
	}
	return *b, true
}

func floatVal(f *float64) (any, bool) {
	if f == nil {
		return 0.0, false
	}
	return *f, true
}

func monVal(m *Monetary) (any, bool) {
	if m == nil {
		return Monetary{}, false
	}
	return *m, true
}

func sectVal(present bool) (any, bool) {
	return present, present
}

// Per-section adapters guard against a nil section before dereferencing.

func summaryField(get func(*Summary) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Summary == nil {
			return nil, false
		}
		return get(r.Summary)
	}
}

func offerorField(get func(*Offeror) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Offeror == nil {
			return nil, false
		}
		return get(r.Offeror)
	}
}

func issuerField(get func(*Issuer) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Issuer == nil {
			return nil, false
		}
		return get(r.Issuer)
	}
}

func operatorField(get func(*Operator) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Operator == nil {
			return nil, false
		}
		return get(r.Operator)
	}
}

func projectField(get func(*Project) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Project == nil {
			return nil, false
		}
		return get(r.Project)
	}
}

func offerField(get func(*Offer) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Offer == nil {
			return nil, false
		}
		return get(r.Offer)
	}
}

func assetField(get func(*Asset) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Asset == nil {
			return nil, false
		}
		return get(r.Asset)
	}
}

func rightsField(get func(*Rights) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Rights == nil {
			return nil, false
		}
		return get(r.Rights)
	}
}

func technologyField(get func(*Technology) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Technology == nil {
			return nil, false
		}
		return get(r.Technology)
	}
}

func risksField(get func(*Risks) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Risks == nil {
			return nil, false
		}
		return get(r.Risks)
	}
}

func sustainabilityField(get func(*Sustainability) (any, bool)) fieldGetter {
	return func(r *Record) (any, bool) {
		if r.Sustainability == nil {
			return nil, false
		}
		return get(r.Sustainability)
	}
}

// fieldTable maps every addressable field path to its typed accessor.
// Paths double as the externally reported field identifiers, so they are
// stable: renaming one is a breaking change for downstream consumers.
var fieldTable = map[string]fieldGetter{
	"tokenType":    func(r *Record) (any, bool) { return str(string(r.TokenType)) },
	"documentDate": func(r *Record) (any, bool) { return str(r.DocumentDate) },
	"language":     func(r *Record) (any, bool) { return str(r.Language) },

	"summary":        func(r *Record) (any, bool) { return sectVal(r.Summary != nil) },
	"offeror":        func(r *Record) (any, bool) { return sectVal(r.Offeror != nil) },
	"issuer":         func(r *Record) (any, bool) { return sectVal(r.Issuer != nil) },
	"operator":       func(r *Record) (any, bool) { return sectVal(r.Operator != nil) },
	"project":        func(r *Record) (any, bool) { return sectVal(r.Project != nil) },
	"offer":          func(r *Record) (any, bool) { return sectVal(r.Offer != nil) },
	"asset":          func(r *Record) (any, bool) { return sectVal(r.Asset != nil) },
	"rights":         func(r *Record) (any, bool) { return sectVal(r.Rights != nil) },
	"technology":     func(r *Record) (any, bool) { return sectVal(r.Technology != nil) },
	"risks":          func(r *Record) (any, bool) { return sectVal(r.Risks != nil) },
	"sustainability": func(r *Record) (any, bool) { return sectVal(r.Sustainability != nil) },

	"summary.summaryText":         summaryField(func(s *Summary) (any, bool) { return str(s.SummaryText) }),
	"summary.warningStatement":    summaryField(func(s *Summary) (any, bool) { return str(s.WarningStatement) }),
	"summary.complianceStatement": summaryField(func(s *Summary) (any, bool) { return str(s.ComplianceStatement) }),
	"summary.keyInformation":      summaryField(func(s *Summary) (any, bool) { return str(s.KeyInformation) }),

	"offeror.legalName":             offerorField(func(o *Offeror) (any, bool) { return str(o.LegalName) }),
	"offeror.legalForm":             offerorField(func(o *Offeror) (any, bool) { return str(o.LegalForm) }),
	"offeror.registeredAddress":     offerorField(func(o *Offeror) (any, bool) { return str(o.RegisteredAddress) }),
	"offeror.headOffice":            offerorField(func(o *Offeror) (any, bool) { return str(o.HeadOffice) }),
	"offeror.country":               offerorField(func(o *Offeror) (any, bool) { return str(o.Country) }),
	"offeror.registrationDate":      offerorField(func(o *Offeror) (any, bool) { return str(o.RegistrationDate) }),
	"offeror.legalEntityIdentifier": offerorField(func(o *Offeror) (any, bool) { return str(o.LegalEntityIdentifier) }),
	"offeror.parentCompany":         offerorField(func(o *Offeror) (any, bool) { return str(o.ParentCompany) }),
	"offeror.contactPhone":          offerorField(func(o *Offeror) (any, bool) { return str(o.ContactPhone) }),
	"offeror.contactEmail":          offerorField(func(o *Offeror) (any, bool) { return str(o.ContactEmail) }),
	"offeror.website":               offerorField(func(o *Offeror) (any, bool) { return str(o.Website) }),
	"offeror.businessActivity":      offerorField(func(o *Offeror) (any, bool) { return str(o.BusinessActivity) }),
	"offeror.financialCondition":    offerorField(func(o *Offeror) (any, bool) { return str(o.FinancialCondition) }),

	"issuer.legalName":             issuerField(func(i *Issuer) (any, bool) { return str(i.LegalName) }),
	"issuer.legalForm":             issuerField(func(i *Issuer) (any, bool) { return str(i.LegalForm) }),
	"issuer.registeredAddress":     issuerField(func(i *Issuer) (any, bool) { return str(i.RegisteredAddress) }),
	"issuer.country":               issuerField(func(i *Issuer) (any, bool) { return str(i.Country) }),
	"issuer.legalEntityIdentifier": issuerField(func(i *Issuer) (any, bool) { return str(i.LegalEntityIdentifier) }),
	"issuer.businessActivity":      issuerField(func(i *Issuer) (any, bool) { return str(i.BusinessActivity) }),

	"operator.legalName":             operatorField(func(o *Operator) (any, bool) { return str(o.LegalName) }),
	"operator.legalForm":             operatorField(func(o *Operator) (any, bool) { return str(o.LegalForm) }),
	"operator.registeredAddress":     operatorField(func(o *Operator) (any, bool) { return str(o.RegisteredAddress) }),
	"operator.country":               operatorField(func(o *Operator) (any, bool) { return str(o.Country) }),
	"operator.legalEntityIdentifier": operatorField(func(o *Operator) (any, bool) { return str(o.LegalEntityIdentifier) }),
	"operator.businessActivity":      operatorField(func(o *Operator) (any, bool) { return str(o.BusinessActivity) }),
	"operator.website":               operatorField(func(o *Operator) (any, bool) { return str(o.Website) }),
	"operator.reasonForDrawingUp":    operatorField(func(o *Operator) (any, bool) { return str(o.ReasonForDrawingUp) }),

	"project.projectName":         projectField(func(p *Project) (any, bool) { return str(p.ProjectName) }),
	"project.abbreviation":        projectField(func(p *Project) (any, bool) { return str(p.Abbreviation) }),
	"project.description":         projectField(func(p *Project) (any, bool) { return str(p.Description) }),
	"project.keyFeatures":         projectField(func(p *Project) (any, bool) { return str(p.KeyFeatures) }),
	"project.teamDescription":     projectField(func(p *Project) (any, bool) { return str(p.TeamDescription) }),
	"project.advisorsDescription": projectField(func(p *Project) (any, bool) { return str(p.AdvisorsDescription) }),
	"project.roadmap":             projectField(func(p *Project) (any, bool) { return str(p.Roadmap) }),
	"project.plannedUseOfFunds":   projectField(func(p *Project) (any, bool) { return str(p.PlannedUseOfFunds) }),
	"project.website":             projectField(func(p *Project) (any, bool) { return str(p.Website) }),

	"offer.isPublicOffering":         offerField(func(o *Offer) (any, bool) { return boolVal(o.IsPublicOffering) }),
	"offer.reasonForOffer":           offerField(func(o *Offer) (any, bool) { return str(o.ReasonForOffer) }),
	"offer.offerPrice":               offerField(func(o *Offer) (any, bool) { return monVal(o.OfferPrice) }),
	"offer.priceDeterminationMethod": offerField(func(o *Offer) (any, bool) { return str(o.PriceDeterminationMethod) }),
	"offer.minimumSubscriptionGoal":  offerField(func(o *Offer) (any, bool) { return monVal(o.MinimumSubscriptionGoal) }),
	"offer.maximumSubscriptionGoal":  offerField(func(o *Offer) (any, bool) { return monVal(o.MaximumSubscriptionGoal) }),
	"offer.totalUnitsOffered":        offerField(func(o *Offer) (any, bool) { return floatVal(o.TotalUnitsOffered) }),
	"offer.oversubscriptionAccepted": offerField(func(o *Offer) (any, bool) { return boolVal(o.OversubscriptionAccepted) }),
	"offer.targetedHolders":          offerField(func(o *Offer) (any, bool) { return str(o.TargetedHolders) }),
	"offer.subscriptionPeriodStart":  offerField(func(o *Offer) (any, bool) { return str(o.SubscriptionPeriodStart) }),
	"offer.subscriptionPeriodEnd":    offerField(func(o *Offer) (any, bool) { return str(o.SubscriptionPeriodEnd) }),
	"offer.purchaseMethods":          offerField(func(o *Offer) (any, bool) { return str(o.PurchaseMethods) }),
	"offer.refundMechanism":          offerField(func(o *Offer) (any, bool) { return str(o.RefundMechanism) }),
	"offer.rightOfWithdrawal":        offerField(func(o *Offer) (any, bool) { return str(o.RightOfWithdrawal) }),
	"offer.distributionPlan":         offerField(func(o *Offer) (any, bool) { return str(o.DistributionPlan) }),

	"asset.assetName":          assetField(func(a *Asset) (any, bool) { return str(a.AssetName) }),
	"asset.assetSymbol":        assetField(func(a *Asset) (any, bool) { return str(a.AssetSymbol) }),
	"asset.totalSupply":        assetField(func(a *Asset) (any, bool) { return floatVal(a.TotalSupply) }),
	"asset.characteristics":    assetField(func(a *Asset) (any, bool) { return str(a.Characteristics) }),
	"asset.functionality":      assetField(func(a *Asset) (any, bool) { return str(a.Functionality) }),
	"asset.plannedApplication": assetField(func(a *Asset) (any, bool) { return str(a.PlannedApplication) }),

	"rights.rightsDescription":            rightsField(func(g *Rights) (any, bool) { return str(g.RightsDescription) }),
	"rights.conditionsForExercise":        rightsField(func(g *Rights) (any, bool) { return str(g.ConditionsForExercise) }),
	"rights.transferRestrictions":         rightsField(func(g *Rights) (any, bool) { return str(g.TransferRestrictions) }),
	"rights.supplyModificationConditions": rightsField(func(g *Rights) (any, bool) { return str(g.SupplyModificationConditions) }),
	"rights.redemptionRights":             rightsField(func(g *Rights) (any, bool) { return str(g.RedemptionRights) }),
	"rights.claimOnIssuer":                rightsField(func(g *Rights) (any, bool) { return boolVal(g.ClaimOnIssuer) }),
	"rights.applicableLaw":                rightsField(func(g *Rights) (any, bool) { return str(g.ApplicableLaw) }),
	"rights.competentCourt":               rightsField(func(g *Rights) (any, bool) { return str(g.CompetentCourt) }),

	"technology.distributedLedger":   technologyField(func(t *Technology) (any, bool) { return str(t.DistributedLedger) }),
	"technology.protocols":           technologyField(func(t *Technology) (any, bool) { return str(t.Protocols) }),
	"technology.consensusMechanism":  technologyField(func(t *Technology) (any, bool) { return str(t.ConsensusMechanism) }),
	"technology.incentiveMechanisms": technologyField(func(t *Technology) (any, bool) { return str(t.IncentiveMechanisms) }),
	"technology.useOfDlt":            technologyField(func(t *Technology) (any, bool) { return boolVal(t.UseOfDLT) }),
	"technology.auditOutcome":        technologyField(func(t *Technology) (any, bool) { return str(t.AuditOutcome) }),

	"risks.offerRelatedRisks":      risksField(func(k *Risks) (any, bool) { return str(k.OfferRelatedRisks) }),
	"risks.issuerRelatedRisks":     risksField(func(k *Risks) (any, bool) { return str(k.IssuerRelatedRisks) }),
	"risks.assetRelatedRisks":      risksField(func(k *Risks) (any, bool) { return str(k.AssetRelatedRisks) }),
	"risks.projectRelatedRisks":    risksField(func(k *Risks) (any, bool) { return str(k.ProjectRelatedRisks) }),
	"risks.technologyRelatedRisks": risksField(func(k *Risks) (any, bool) { return str(k.TechnologyRelatedRisks) }),
	"risks.mitigationMeasures":     risksField(func(k *Risks) (any, bool) { return str(k.MitigationMeasures) }),

	"sustainability.consensusMechanismDescription": sustainabilityField(func(s *Sustainability) (any, bool) { return str(s.ConsensusMechanismDescription) }),
	"sustainability.energyConsumption":             sustainabilityField(func(s *Sustainability) (any, bool) { return floatVal(s.EnergyConsumption) }),
	"sustainability.energyConsumptionSources":      sustainabilityField(func(s *Sustainability) (any, bool) { return str(s.EnergyConsumptionSources) }),
	"sustainability.renewableEnergyPercentage":     sustainabilityField(func(s *Sustainability) (any, bool) { return floatVal(s.RenewableEnergyPercentage) }),
	"sustainability.energyIntensity":               sustainabilityField(func(s *Sustainability) (any, bool) { return floatVal(s.EnergyIntensity) }),
	"sustainability.ghgEmissions":                  sustainabilityField(func(s *Sustainability) (any, bool) { return floatVal(s.GHGEmissions) }),
}

// FieldByPath resolves a field path ("offeror.legalName") to its value.
// The second return reports presence: section paths report whether the
// section struct is set, scalar paths whether a usable value was supplied.
// Unknown paths report absent.
func (r *Record) FieldByPath(path string) (any, bool) {
	getter, ok := fieldTable[path]
	if !ok {
		return nil, false
	}
	return getter(r)
}

// KnownPath reports whether path names an addressable record field.
func KnownPath(path string) bool {
	_, ok := fieldTable[path]
	return ok
}

// FieldPaths returns every addressable field path, sorted for stable output.
func FieldPaths() []string {
	paths := make([]string, 0, len(fieldTable))
	for p := range fieldTable {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
