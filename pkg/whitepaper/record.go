// Package whitepaper defines the structured crypto-asset white paper record
// exchanged with the upstream field-mapping service.
//
// The record mirrors the disclosure annexes of Regulation (EU) 2023/1114
// (MiCA): one optional struct per annex part, each a flat set of typed
// fields. Sections and fields a submission does not cover are simply nil or
// empty; presence requirements are the rule engines' concern, not the
// model's.
package whitepaper

// TokenType selects the applicable disclosure annex.
type TokenType string

const (
	TokenTypeOther TokenType = "OTHR" // other crypto-assets (Annex I)
	TokenTypeART   TokenType = "ART"  // asset-referenced tokens (Annex II)
	TokenTypeEMT   TokenType = "EMT"  // e-money tokens (Annex III)
)

// AllTokenTypes lists the supported token types in annex order.
func AllTokenTypes() []TokenType {
	return []TokenType{TokenTypeOther, TokenTypeART, TokenTypeEMT}
}

// Valid reports whether t is one of the three recognized token types.
func (t TokenType) Valid() bool {
	return t == TokenTypeOther || t == TokenTypeART || t == TokenTypeEMT
}

// Monetary is an amount with an ISO 4217 currency code.
type Monetary struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

// Record is one structured white paper submission.
//
// Optional scalar fields use pointers (or the empty string) so that "not
// provided" stays distinguishable from a deliberate zero/false. The engines
// never mutate a Record.
type Record struct {
	TokenType    TokenType `json:"tokenType"`
	DocumentDate string    `json:"documentDate,omitempty"` // YYYY-MM-DD
	Language     string    `json:"language,omitempty"`     // ISO 639-1

	Summary        *Summary        `json:"summary,omitempty"`
	Offeror        *Offeror        `json:"offeror,omitempty"`
	Issuer         *Issuer         `json:"issuer,omitempty"`
	Operator       *Operator       `json:"operator,omitempty"`
	Project        *Project        `json:"project,omitempty"`
	Offer          *Offer          `json:"offer,omitempty"`
	Asset          *Asset          `json:"asset,omitempty"`
	Rights         *Rights         `json:"rights,omitempty"`
	Technology     *Technology     `json:"technology,omitempty"`
	Risks          *Risks          `json:"risks,omitempty"`
	Sustainability *Sustainability `json:"sustainability,omitempty"`
}

// Summary carries the mandated summary and compliance statements.
type Summary struct {
	SummaryText         string `json:"summaryText,omitempty"`
	WarningStatement    string `json:"warningStatement,omitempty"`
	ComplianceStatement string `json:"complianceStatement,omitempty"`
	KeyInformation      string `json:"keyInformation,omitempty"`
}

// Offeror identifies the offeror or person seeking admission to trading
// (Annex Part A).
type Offeror struct {
	LegalName             string `json:"legalName,omitempty"`
	LegalForm             string `json:"legalForm,omitempty"`
	RegisteredAddress     string `json:"registeredAddress,omitempty"`
	HeadOffice            string `json:"headOffice,omitempty"`
	Country               string `json:"country,omitempty"` // ISO 3166-1 alpha-2
	RegistrationDate      string `json:"registrationDate,omitempty"`
	LegalEntityIdentifier string `json:"legalEntityIdentifier,omitempty"`
	ParentCompany         string `json:"parentCompany,omitempty"`
	ContactPhone          string `json:"contactPhone,omitempty"`
	ContactEmail          string `json:"contactEmail,omitempty"`
	Website               string `json:"website,omitempty"`
	BusinessActivity      string `json:"businessActivity,omitempty"`
	FinancialCondition    string `json:"financialCondition,omitempty"`
}

// Issuer identifies the issuer where different from the offeror
// (Annex Part B).
type Issuer struct {
	LegalName             string `json:"legalName,omitempty"`
	LegalForm             string `json:"legalForm,omitempty"`
	RegisteredAddress     string `json:"registeredAddress,omitempty"`
	Country               string `json:"country,omitempty"`
	LegalEntityIdentifier string `json:"legalEntityIdentifier,omitempty"`
	BusinessActivity      string `json:"businessActivity,omitempty"`
}

// Operator identifies the operator of the trading platform where it drew up
// the white paper (Annex Part C).
type Operator struct {
	LegalName             string `json:"legalName,omitempty"`
	LegalForm             string `json:"legalForm,omitempty"`
	RegisteredAddress     string `json:"registeredAddress,omitempty"`
	Country               string `json:"country,omitempty"`
	LegalEntityIdentifier string `json:"legalEntityIdentifier,omitempty"`
	BusinessActivity      string `json:"businessActivity,omitempty"`
	Website               string `json:"website,omitempty"`
	ReasonForDrawingUp    string `json:"reasonForDrawingUp,omitempty"`
}

// Project describes the crypto-asset project (Annex Part D).
type Project struct {
	ProjectName         string `json:"projectName,omitempty"`
	Abbreviation        string `json:"abbreviation,omitempty"`
	Description         string `json:"description,omitempty"`
	KeyFeatures         string `json:"keyFeatures,omitempty"`
	TeamDescription     string `json:"teamDescription,omitempty"`
	AdvisorsDescription string `json:"advisorsDescription,omitempty"`
	Roadmap             string `json:"roadmap,omitempty"`
	PlannedUseOfFunds   string `json:"plannedUseOfFunds,omitempty"`
	Website             string `json:"website,omitempty"`
}

// Offer describes the offer to the public or the admission to trading
// (Annex Part E).
type Offer struct {
	IsPublicOffering         *bool     `json:"isPublicOffering,omitempty"`
	ReasonForOffer           string    `json:"reasonForOffer,omitempty"`
	OfferPrice               *Monetary `json:"offerPrice,omitempty"`
	PriceDeterminationMethod string    `json:"priceDeterminationMethod,omitempty"`
	MinimumSubscriptionGoal  *Monetary `json:"minimumSubscriptionGoal,omitempty"`
	MaximumSubscriptionGoal  *Monetary `json:"maximumSubscriptionGoal,omitempty"`
	TotalUnitsOffered        *float64  `json:"totalUnitsOffered,omitempty"`
	OversubscriptionAccepted *bool     `json:"oversubscriptionAccepted,omitempty"`
	TargetedHolders          string    `json:"targetedHolders,omitempty"` // ALL, QUALIFIED, RETAIL
	SubscriptionPeriodStart  string    `json:"subscriptionPeriodStart,omitempty"`
	SubscriptionPeriodEnd    string    `json:"subscriptionPeriodEnd,omitempty"`
	PurchaseMethods          string    `json:"purchaseMethods,omitempty"`
	RefundMechanism          string    `json:"refundMechanism,omitempty"`
	RightOfWithdrawal        string    `json:"rightOfWithdrawal,omitempty"`
	DistributionPlan         string    `json:"distributionPlan,omitempty"`
}

// Asset describes the characteristics of the crypto-asset (Annex Part F).
type Asset struct {
	AssetName          string   `json:"assetName,omitempty"`
	AssetSymbol        string   `json:"assetSymbol,omitempty"`
	TotalSupply        *float64 `json:"totalSupply,omitempty"`
	Characteristics    string   `json:"characteristics,omitempty"`
	Functionality      string   `json:"functionality,omitempty"`
	PlannedApplication string   `json:"plannedApplication,omitempty"`
}

// Rights describes the rights and obligations attached to the crypto-asset
// (Annex Part G).
type Rights struct {
	RightsDescription            string `json:"rightsDescription,omitempty"`
	ConditionsForExercise        string `json:"conditionsForExercise,omitempty"`
	TransferRestrictions         string `json:"transferRestrictions,omitempty"`
	SupplyModificationConditions string `json:"supplyModificationConditions,omitempty"`
	RedemptionRights             string `json:"redemptionRights,omitempty"`
	ClaimOnIssuer                *bool  `json:"claimOnIssuer,omitempty"`
	ApplicableLaw                string `json:"applicableLaw,omitempty"`
	CompetentCourt               string `json:"competentCourt,omitempty"`
}

// Technology describes the underlying distributed ledger technology
// (Annex Part H).
type Technology struct {
	DistributedLedger   string `json:"distributedLedger,omitempty"`
	Protocols           string `json:"protocols,omitempty"`
	ConsensusMechanism  string `json:"consensusMechanism,omitempty"`
	IncentiveMechanisms string `json:"incentiveMechanisms,omitempty"`
	UseOfDLT            *bool  `json:"useOfDlt,omitempty"`
	AuditOutcome        string `json:"auditOutcome,omitempty"`
}

// Risks lists the principal risk disclosures (Annex Part I).
type Risks struct {
	OfferRelatedRisks      string `json:"offerRelatedRisks,omitempty"`
	IssuerRelatedRisks     string `json:"issuerRelatedRisks,omitempty"`
	AssetRelatedRisks      string `json:"assetRelatedRisks,omitempty"`
	ProjectRelatedRisks    string `json:"projectRelatedRisks,omitempty"`
	TechnologyRelatedRisks string `json:"technologyRelatedRisks,omitempty"`
	MitigationMeasures     string `json:"mitigationMeasures,omitempty"`
}

// Sustainability carries the principal adverse impact indicators on climate
// per the Article 6(10) sustainability disclosures (Annex Part J).
type Sustainability struct {
	ConsensusMechanismDescription string   `json:"consensusMechanismDescription,omitempty"`
	EnergyConsumption             *float64 `json:"energyConsumption,omitempty"` // kWh per calendar year
	EnergyConsumptionSources      string   `json:"energyConsumptionSources,omitempty"`
	RenewableEnergyPercentage     *float64 `json:"renewableEnergyPercentage,omitempty"`
	EnergyIntensity               *float64 `json:"energyIntensity,omitempty"` // kWh per transaction
	GHGEmissions                  *float64 `json:"ghgEmissions,omitempty"`    // tCO2e per calendar year
}

// Bool returns a pointer to b, for building records in literals and tests.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
