// Package engine is the orchestration layer: it merges the identifier,
// existence, value and duplicate passes into one validation report and
// assembles the inline-tagged disclosure document.
//
// An Engine is immutable after New and safe for concurrent use. Every
// call builds its own fact list and report; the only shared state is the
// read-only taxonomy index and the compiled rule tables.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/regberg-labs/micapress/pkg/canonical"
	"github.com/regberg-labs/micapress/pkg/facts"
	"github.com/regberg-labs/micapress/pkg/ixbrl"
	"github.com/regberg-labs/micapress/pkg/lei"
	"github.com/regberg-labs/micapress/pkg/observability"
	"github.com/regberg-labs/micapress/pkg/rules"
	"github.com/regberg-labs/micapress/pkg/taxonomy"
	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// Engine runs validation passes and document generation over white paper
// records.
type Engine struct {
	index     *taxonomy.Index
	existence *rules.ExistenceEngine
	value     *rules.ValueEngine
	builder   *ixbrl.DocumentBuilder

	registry      lei.Registry
	obs           *observability.Provider
	logger        *slog.Logger
	now           func() time.Time
	newID         func() string
	fragmentLimit int
}

// Option configures the engine.
type Option func(*Engine)

// WithIndex substitutes the taxonomy index. The default is the embedded
// catalog.
func WithIndex(ix *taxonomy.Index) Option {
	return func(e *Engine) { e.index = ix }
}

// WithRegistry wires the remote identifier register ValidateWithRegistry
// cross-checks against.
func WithRegistry(r lei.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithObservability sets the telemetry provider. The default is an inert
// one.
func WithObservability(p *observability.Provider) Option {
	return func(e *Engine) { e.obs = p }
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock fixes the time source, for reproducible timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithFragmentLimit overrides the continuation split threshold used when
// rendering long text facts.
func WithFragmentLimit(limit int) Option {
	return func(e *Engine) { e.fragmentLimit = limit }
}

// New builds an engine, compiling the rule tables against the configured
// taxonomy index.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(e)
	}

	if e.index == nil {
		ix, err := taxonomy.DefaultIndex()
		if err != nil {
			return nil, err
		}
		e.index = ix
	}
	existence, err := rules.NewExistenceEngine(e.index)
	if err != nil {
		return nil, fmt.Errorf("existence engine: %w", err)
	}
	e.existence = existence
	e.value = rules.NewValueEngine()
	e.builder = ixbrl.NewDocumentBuilder(e.index, ixbrl.NewTagger(e.fragmentLimit))

	if e.logger == nil {
		e.logger = slog.Default().With("component", "engine")
	}
	if e.obs == nil {
		obs, err := observability.New(context.Background(), nil)
		if err != nil {
			return nil, fmt.Errorf("observability: %w", err)
		}
		e.obs = obs
	}
	return e, nil
}

// runOptions selects which passes a validation call runs and how its
// findings are narrowed.
type runOptions struct {
	quick    bool
	registry lei.Registry
	field    string
}

// Validate runs every pass over the record and merges the findings into
// one report. Identifier checks stay local: no registry lookup happens
// even when one is configured.
func (e *Engine) Validate(ctx context.Context, rec *whitepaper.Record) (*Report, error) {
	return e.run(ctx, rec, runOptions{})
}

// ValidateWithRegistry is Validate plus the remote registry cross-check
// for identifiers that pass the local format and checksum checks. Without
// a configured registry it degrades to a plain Validate.
func (e *Engine) ValidateWithRegistry(ctx context.Context, rec *whitepaper.Record) (*Report, error) {
	if e.registry == nil {
		e.logger.WarnContext(ctx, "registry cross-check requested but no registry is configured")
		return e.run(ctx, rec, runOptions{})
	}
	return e.run(ctx, rec, runOptions{registry: e.registry})
}

// QuickValidate runs only the existence and identifier passes, for fast
// interactive feedback while a submission is being drafted. The skipped
// passes contribute nothing to the assertion counts.
func (e *Engine) QuickValidate(ctx context.Context, rec *whitepaper.Record) (*Report, error) {
	return e.run(ctx, rec, runOptions{quick: true})
}

// ValidateField runs the full pass set and keeps only the findings for
// one field path, for live per-field feedback. Validity reflects the
// narrowed findings; assertion counts keep the full-engine totals.
func (e *Engine) ValidateField(ctx context.Context, rec *whitepaper.Record, field string) (*Report, error) {
	return e.run(ctx, rec, runOptions{field: field})
}

func (e *Engine) run(ctx context.Context, rec *whitepaper.Record, opts runOptions) (rep *Report, err error) {
	tt := rec.TokenType
	if !tt.Valid() {
		// Unrecognized types validate against the broadest annex; the
		// missing-type existence error still fires.
		tt = whitepaper.TokenTypeOther
	}

	ctx, done := e.obs.TrackOperation(ctx, "validate",
		observability.ValidationOperation(string(tt), opts.quick)...)
	defer func() { done(err) }()

	existence, err := e.existence.Evaluate(rec, tt)
	if err != nil {
		return nil, fmt.Errorf("existence pass: %w", err)
	}

	var value rules.Result
	if !opts.quick {
		value = e.value.Evaluate(rec)
	}

	identifier := identifierIssues(ctx, rec, opts.registry)

	var duplicate []rules.Issue
	if !opts.quick {
		duplicate = duplicateIssues(facts.NewBuilder(e.index).Build(rec))
	}

	if opts.field != "" {
		existence = filterResult(existence, opts.field)
		value = filterResult(value, opts.field)
		identifier = filterIssues(identifier, opts.field)
		duplicate = filterIssues(duplicate, opts.field)
	}

	rep = &Report{
		ReportID:    e.newID(),
		GeneratedAt: e.now().UTC(),
		TokenType:   tt,
		Categories: map[Category]Breakdown{
			CategoryExistence:  {Errors: len(existence.Errors), Warnings: len(existence.Warnings)},
			CategoryIdentifier: {Errors: len(identifier)},
		},
		Assertions: e.assertionCounts(tt, opts.quick),
	}
	if !opts.quick {
		rep.Categories[CategoryValue] = Breakdown{Errors: len(value.Errors), Warnings: len(value.Warnings)}
		rep.Categories[CategoryDuplicate] = Breakdown{Errors: len(duplicate)}
	}

	rep.Errors = append(rep.Errors, existence.Errors...)
	rep.Errors = append(rep.Errors, value.Errors...)
	rep.Errors = append(rep.Errors, identifier...)
	rep.Errors = append(rep.Errors, duplicate...)
	rep.Warnings = append(rep.Warnings, existence.Warnings...)
	rep.Warnings = append(rep.Warnings, value.Warnings...)
	rep.Valid = len(rep.Errors) == 0

	hash, err := canonical.Hash(rep.digest())
	if err != nil {
		return nil, fmt.Errorf("content hash: %w", err)
	}
	rep.ContentHash = hash

	e.logger.InfoContext(ctx, "validation complete",
		"reportId", rep.ReportID,
		"tokenType", string(tt),
		"quick", opts.quick,
		"valid", rep.Valid,
		"errors", len(rep.Errors),
		"warnings", len(rep.Warnings))
	return rep, nil
}

// assertionCounts totals what each pass carries for the token type.
// Skipped passes count zero so the grand total matches what ran.
func (e *Engine) assertionCounts(tt whitepaper.TokenType, quick bool) AssertionCounts {
	c := AssertionCounts{
		Existence:  e.existence.Summary(tt).Total,
		Identifier: identifierAssertionCount,
	}
	if !quick {
		c.Value = e.value.Summary().Total
		c.Duplicate = duplicateAssertionCount
	}
	c.Total = c.Existence + c.Value + c.Identifier + c.Duplicate
	return c
}

// Generate builds the fact list and assembles the self-contained
// inline-tagged document. Generation never fails on a well-formed record:
// unknown currencies, missing dates and absent sections all fall back to
// documented defaults.
func (e *Engine) Generate(ctx context.Context, rec *whitepaper.Record) *GenerateResult {
	tt := rec.TokenType
	if !tt.Valid() {
		tt = whitepaper.TokenTypeOther
	}

	ctx, done := e.obs.TrackOperation(ctx, "generate",
		observability.GenerationOperation(string(tt))...)
	defer done(nil)

	list := facts.NewBuilder(e.index).Build(rec)
	instant := e.instantDate(rec)

	doc := e.builder.Build(ixbrl.Document{
		Title:       documentTitle(rec),
		Language:    rec.Language,
		TokenType:   tt,
		EntityLEI:   entityLEI(rec),
		InstantDate: instant,
		PeriodStart: periodStart(instant),
		PeriodEnd:   instant,
		Facts:       list,
		Units:       facts.UnitsFor(list),
	})

	res := &GenerateResult{
		Document:     doc,
		DocumentHash: canonical.HashBytes([]byte(doc)),
		FactCount:    len(list),
		GeneratedAt:  e.now().UTC(),
	}

	e.logger.InfoContext(ctx, "document generated",
		"tokenType", string(tt),
		"facts", res.FactCount,
		"bytes", len(doc),
		"hash", res.DocumentHash)
	return res
}

// instantDate is the record's document date when it parses, else the
// clock's current date.
func (e *Engine) instantDate(rec *whitepaper.Record) string {
	if _, err := time.Parse("2006-01-02", rec.DocumentDate); err == nil {
		return rec.DocumentDate
	}
	return e.now().UTC().Format("2006-01-02")
}

// periodStart opens the duration context on January 1 of the instant's
// year, so the duration covers the reporting year to date.
func periodStart(instant string) string {
	return instant[:4] + "-01-01"
}

func entityLEI(rec *whitepaper.Record) string {
	if rec.Offeror == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(rec.Offeror.LegalEntityIdentifier))
}

// documentTitle derives the title from the asset name when one is
// present; the document builder supplies the generic fallback.
func documentTitle(rec *whitepaper.Record) string {
	if rec.Asset == nil {
		return ""
	}
	name := strings.TrimSpace(rec.Asset.AssetName)
	if name == "" {
		return ""
	}
	return name + " Crypto-Asset White Paper"
}

// identifierIssues runs the composed identifier checks and lifts the
// findings into the shared issue shape. Identifier failures are always
// hard errors.
func identifierIssues(ctx context.Context, rec *whitepaper.Record, registry lei.Registry) []rules.Issue {
	var ids lei.Identifiers
	if rec.Offeror != nil {
		ids.Offeror = rec.Offeror.LegalEntityIdentifier
	}
	if rec.Issuer != nil {
		ids.Issuer = rec.Issuer.LegalEntityIdentifier
	}
	if rec.Operator != nil {
		ids.Operator = rec.Operator.LegalEntityIdentifier
	}

	var out []rules.Issue
	for _, f := range lei.ValidateAll(ctx, ids, lei.Options{Registry: registry}) {
		out = append(out, rules.Issue{
			RuleID:   f.RuleID,
			Severity: rules.SeverityError,
			Field:    f.Field,
			Message:  f.Message,
		})
	}
	return out
}

// duplicateIssues lifts duplicate groups into issues, one per colliding
// group. The field carries the element name since a group can span
// several record fields.
func duplicateIssues(list []facts.Fact) []rules.Issue {
	var out []rules.Issue
	for _, d := range facts.FindDuplicates(list) {
		out = append(out, rules.Issue{
			RuleID:   facts.RuleDuplicate,
			Severity: rules.SeverityError,
			Field:    d.Element,
			Message:  d.Message(),
		})
	}
	return out
}

func filterResult(r rules.Result, field string) rules.Result {
	return rules.Result{
		Errors:   filterIssues(r.Errors, field),
		Warnings: filterIssues(r.Warnings, field),
	}
}

func filterIssues(list []rules.Issue, field string) []rules.Issue {
	var out []rules.Issue
	for _, iss := range list {
		if iss.Field == field {
			out = append(out, iss)
		}
	}
	return out
}
