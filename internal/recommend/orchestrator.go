package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/propfinder/internal/narrative"
	"github.com/evcraddock/propfinder/internal/portfolio"
	"github.com/evcraddock/propfinder/internal/scoring"
	"github.com/evcraddock/propfinder/internal/search"
)

// DefaultMaxRecommendations bounds a report when the caller does not.
const DefaultMaxRecommendations = 10

// Searcher is the slice of the search service the orchestrator needs.
type Searcher interface {
	Search(ctx context.Context, f search.Filters) (*search.Result, error)
}

// Orchestrator runs the end-to-end recommendation flow. The narrative
// generator is optional; without one every summary uses the deterministic
// template.
type Orchestrator struct {
	searcher  Searcher
	engine    *scoring.Engine
	generator narrative.Generator
	max       int
	now       func() time.Time
	log       *slog.Logger
}

// NewOrchestrator creates an orchestrator. generator may be nil.
func NewOrchestrator(searcher Searcher, engine *scoring.Engine, generator narrative.Generator, max int) *Orchestrator {
	if max <= 0 {
		max = DefaultMaxRecommendations
	}
	return &Orchestrator{
		searcher:  searcher,
		engine:    engine,
		generator: generator,
		max:       max,
		now:       time.Now,
		log:       slog.Default().With("component", "recommend"),
	}
}

// SetClock overrides the orchestrator clock for tests.
func (o *Orchestrator) SetClock(now func() time.Time) { o.now = now }

// SetMax changes the report size cap.
func (o *Orchestrator) SetMax(max int) {
	if max > 0 {
		o.max = max
	}
}

// Generate builds a full recommendation report for the profile. Invalid
// filter ranges surface as-is; any other pipeline failure is wrapped in
// ErrGenerationFailed. Narrative failure alone never fails the call.
func (o *Orchestrator) Generate(ctx context.Context, profile *scoring.Profile) (*Report, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrGenerationFailed)
	}

	result, err := o.searcher.Search(ctx, filtersFromProfile(profile))
	if err != nil {
		if errors.Is(err, search.ErrInvalidFilterRange) {
			return nil, err
		}
		return nil, fmt.Errorf("searching properties: %v: %w", err, ErrGenerationFailed)
	}

	recs := o.engine.Rank(profile, result.Properties, o.max)
	analysis := portfolio.Analyze(recs)

	report := &Report{
		ID:              uuid.NewString(),
		Recommendations: recs,
		Portfolio:       analysis,
		Approximate:     result.Meta.Approximate,
		GeneratedAt:     o.now(),
	}
	report.Insights = buildInsights(recs, analysis)
	report.Summary = o.summarize(ctx, report)

	o.log.Info("report generated",
		"report_id", report.ID,
		"recommendations", len(recs),
		"approximate", report.Approximate)
	return report, nil
}

// summarize asks the narrative collaborator for a paragraph and degrades to
// the deterministic template when it is absent or fails.
func (o *Orchestrator) summarize(ctx context.Context, report *Report) string {
	if o.generator == nil {
		return fallbackSummary(report)
	}

	text, err := o.generator.Summarize(ctx, buildPrompt(report))
	if err != nil {
		o.log.Warn("narrative generation failed, using template", "error", err)
		return fallbackSummary(report)
	}
	return text
}

// filtersFromProfile translates the investment profile into search filters.
// Preferred property types are deliberately NOT used as an upstream filter:
// off-type properties stay in the result and are penalized by the type-match
// score instead.
func filtersFromProfile(p *scoring.Profile) search.Filters {
	f := search.Filters{}

	if p.BudgetMin > 0 || p.BudgetMax > 0 {
		fin := &search.FinancialFilter{}
		if p.BudgetMin > 0 {
			min := p.BudgetMin
			fin.MinPrice = &min
		}
		if p.BudgetMax > 0 {
			// Allow a modest overshoot so near-budget properties are
			// scored (and penalized) rather than never seen.
			max := p.BudgetMax * 1.25
			fin.MaxPrice = &max
		}
		f.Financial = fin
	}

	if len(p.PreferredCities) > 0 || len(p.PreferredStates) > 0 {
		f.Location = &search.LocationFilter{
			Cities: p.PreferredCities,
			States: p.PreferredStates,
		}
	}

	return f
}
