package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/evcraddock/propfinder/internal/property"
)

// Confidence is the qualitative score bucket.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// reasonThreshold is the sub-score above which a factor earns a match reason.
const reasonThreshold = 80

// Recommendation is a scored property. It is produced once and never mutated.
type Recommendation struct {
	Property              property.Record  `json:"property"`
	Score                 float64          `json:"score"`
	Confidence            Confidence       `json:"confidence"`
	MatchReasons          []string         `json:"match_reasons"`
	RiskFactors           []string         `json:"risk_factors"`
	OpportunityHighlights []string         `json:"opportunity_highlights"`
	Returns               ProjectedReturns `json:"projected_returns"`
}

// Engine computes composite scores. Weight tables and strategy scorers are
// injected so alternatives can be swapped in without touching the engine.
type Engine struct {
	weights    Weights
	strategies map[Strategy]StrategyScorer
	now        func() time.Time
}

// NewEngine creates a scoring engine with the given weight table.
func NewEngine(w Weights) *Engine {
	return &Engine{
		weights:    w,
		strategies: DefaultStrategyScorers(),
		now:        time.Now,
	}
}

// NewDefaultEngine creates an engine with the production weight table.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultWeights())
}

// SetClock overrides the engine clock for deterministic tests.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// RegisterStrategy installs or replaces the scorer for a strategy.
func (e *Engine) RegisterStrategy(s Strategy, fn StrategyScorer) {
	e.strategies[s] = fn
}

// Score rates one property against the profile. The composite is a weighted
// sum of independent 0-100 sub-scores, normalized by the weight total.
func (e *Engine) Score(p *Profile, r *property.Record) Recommendation {
	now := e.now()

	strategyScore := e.strategyScore(p.Strategy, r, now)
	risk := riskScore(p.RiskTolerance, r, now)
	budget := budgetScore(p, r)
	typeMatch := typeMatchScore(p, r)
	criteria := criteriaScore(p, r)
	location := locationScore(p, r)
	market := marketScore(r)

	total := e.weights.Total()
	composite := (strategyScore*e.weights.Strategy +
		risk*e.weights.Risk +
		budget*e.weights.Budget +
		typeMatch*e.weights.TypeMatch +
		criteria*e.weights.Criteria +
		location*e.weights.Location +
		market*e.weights.Market) / total

	rec := Recommendation{
		Property:   *r,
		Score:      capScore(composite),
		Confidence: confidenceFor(composite),
		Returns:    projectReturns(r, p.Timeline()),
	}
	rec.MatchReasons = matchReasons(p, strategyScore, risk, budget, typeMatch, location)
	rec.RiskFactors = riskFactors(p, r, now)
	rec.OpportunityHighlights = opportunityHighlights(p, r)
	return rec
}

// Rank scores every record and returns recommendations sorted descending by
// score, truncated to limit (0 means no truncation).
func (e *Engine) Rank(p *Profile, records []property.Record, limit int) []Recommendation {
	recs := make([]Recommendation, 0, len(records))
	for i := range records {
		recs = append(recs, e.Score(p, &records[i]))
	}
	sortRecommendations(recs)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func sortRecommendations(recs []Recommendation) {
	// Score descending, then record ID for a deterministic order.
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Property.ID < recs[j].Property.ID
	})
}

func (e *Engine) strategyScore(s Strategy, r *property.Record, now time.Time) float64 {
	if fn, ok := e.strategies[s]; ok {
		return capScore(fn(r, now))
	}
	return 50 // unknown strategy scores neutral
}

// budgetScore rates price fit against the budget range.
func budgetScore(p *Profile, r *property.Record) float64 {
	price := r.Listing.Price
	if p.BudgetMin <= 0 && p.BudgetMax <= 0 {
		return 70 // no budget stated
	}
	if p.BudgetMin > 0 && price < p.BudgetMin {
		return 60 // below the target allocation
	}
	if p.BudgetMax > 0 && price > p.BudgetMax {
		over := (price - p.BudgetMax) / p.BudgetMax
		switch {
		case over <= 0.10:
			return 50
		case over <= 0.25:
			return 25
		default:
			return 0
		}
	}
	return 100
}

// typeMatchScore is a hard gate expressed as a score: preferred type gets
// 100, anything else gets 0. Off-type properties are deliberately not
// excluded upstream, only penalized here.
func typeMatchScore(p *Profile, r *property.Record) float64 {
	if len(p.PreferredTypes) == 0 {
		return 100
	}
	for _, t := range p.PreferredTypes {
		if r.Type == t {
			return 100
		}
	}
	return 0
}

// criteriaScore averages pass/fail over the stated criteria. A record missing
// a stated field fails that criterion; unknown data never satisfies a
// threshold.
func criteriaScore(p *Profile, r *property.Record) float64 {
	var met, total float64

	if c := p.Criteria.MinCapRate; c != nil {
		total++
		if r.Listing.CapRate != nil && *r.Listing.CapRate >= *c {
			met++
		}
	}
	if o := p.Criteria.MinOccupancy; o != nil {
		total++
		if r.Listing.Occupancy != nil && *r.Listing.Occupancy >= *o {
			met++
		}
	}
	if d := p.Criteria.MaxDaysOnMarket; d != nil {
		total++
		if r.Market.DaysOnMarket != nil && *r.Market.DaysOnMarket <= *d {
			met++
		}
	}
	if s := p.Criteria.MinSqft; s != nil {
		total++
		if r.Listing.Sqft >= *s {
			met++
		}
	}

	if total == 0 {
		return 100
	}
	return met / total * 100
}

// locationScore rates place preference: exact city 100, state 70, elsewhere
// 30, neutral 60 when no preference is stated.
func locationScore(p *Profile, r *property.Record) float64 {
	if len(p.PreferredCities) == 0 && len(p.PreferredStates) == 0 {
		return 60
	}
	for _, c := range p.PreferredCities {
		if strings.EqualFold(strings.TrimSpace(c), r.Address.City) {
			return 100
		}
	}
	for _, s := range p.PreferredStates {
		if strings.EqualFold(strings.TrimSpace(s), r.Address.State) {
			return 70
		}
	}
	return 30
}

// marketScore rates listing freshness by days on market; unknown is neutral.
func marketScore(r *property.Record) float64 {
	d := r.Market.DaysOnMarket
	if d == nil {
		return 50
	}
	switch {
	case *d < 30:
		return 90
	case *d < 60:
		return 75
	case *d < 90:
		return 60
	case *d < 120:
		return 45
	default:
		return 30
	}
}

func confidenceFor(score float64) Confidence {
	switch {
	case score > 80:
		return ConfidenceHigh
	case score > 60:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func matchReasons(p *Profile, strategy, risk, budget, typeMatch, location float64) []string {
	reasons := []string{}
	if strategy > reasonThreshold {
		reasons = append(reasons, fmt.Sprintf("Strong fit for a %s strategy", p.Strategy))
	}
	if risk > reasonThreshold {
		reasons = append(reasons, fmt.Sprintf("Profile matches %s risk tolerance", p.RiskTolerance))
	}
	if budget > reasonThreshold {
		reasons = append(reasons, "Comfortably within budget")
	}
	if typeMatch > reasonThreshold && len(p.PreferredTypes) > 0 {
		reasons = append(reasons, "Preferred property type")
	}
	if location > reasonThreshold {
		reasons = append(reasons, "Located in a preferred market")
	}
	return reasons
}

func riskFactors(p *Profile, r *property.Record, now time.Time) []string {
	factors := []string{}
	if o := r.Listing.Occupancy; o != nil && *o < 70 {
		factors = append(factors, fmt.Sprintf("Low occupancy (%.0f%%)", *o))
	}
	if d := r.Market.DaysOnMarket; d != nil && *d > 90 {
		factors = append(factors, fmt.Sprintf("On market %d days", *d))
	}
	if age := r.Age(now); age > 40 {
		factors = append(factors, fmt.Sprintf("Older building (%d years)", age))
	}
	if r.Listing.CapRate == nil && r.Listing.NOI == nil {
		factors = append(factors, "No reported income data")
	}
	if p.BudgetMax > 0 && r.Listing.Price > p.BudgetMax {
		factors = append(factors, "Priced above stated budget")
	}
	if r.Synthetic {
		factors = append(factors, "Approximate data from fallback generation")
	}
	return factors
}

func opportunityHighlights(p *Profile, r *property.Record) []string {
	highlights := []string{}
	if c := r.Listing.CapRate; c != nil && *c > 8 {
		highlights = append(highlights, fmt.Sprintf("High cap rate (%.1f%%)", *c))
	}
	if psf := r.EffectivePricePerSqft(); psf > 0 && psf < 150 {
		highlights = append(highlights, fmt.Sprintf("Priced at $%.0f/sqft, below typical replacement cost", psf))
	}
	if o := r.Listing.Occupancy; o != nil && *o < 80 && (p.Strategy == StrategyValueAdd || p.Strategy == StrategyOpportunistic) {
		highlights = append(highlights, "Lease-up upside from current vacancy")
	}
	if r.Type == property.TypeLand && p.Strategy == StrategyDevelopment {
		highlights = append(highlights, "Entitled land for ground-up development")
	}
	if d := r.Market.DaysOnMarket; d != nil && *d > 90 {
		highlights = append(highlights, "Long market exposure may give negotiating leverage")
	}
	return highlights
}
