package scoring

import (
	"time"

	"github.com/evcraddock/propfinder/internal/property"
)

// StrategyScorer rates how well a property serves one investment strategy,
// 0-100. Implementations must be deterministic for a given record and clock.
type StrategyScorer func(r *property.Record, now time.Time) float64

// DefaultStrategyScorers returns the production per-strategy heuristics. The
// base values and bonus thresholds are hand-tuned and preserved as tuned.
func DefaultStrategyScorers() map[Strategy]StrategyScorer {
	return map[Strategy]StrategyScorer{
		StrategyCashFlow:      scoreCashFlow,
		StrategyAppreciation:  scoreAppreciation,
		StrategyValueAdd:      scoreValueAdd,
		StrategyDevelopment:   scoreDevelopment,
		StrategyCore:          scoreCore,
		StrategyOpportunistic: scoreOpportunistic,
	}
}

func scoreCashFlow(r *property.Record, _ time.Time) float64 {
	score := 30.0
	if c := r.Listing.CapRate; c != nil {
		switch {
		case *c > 8:
			score += 40
		case *c > 6:
			score += 25
		case *c > 4:
			score += 10
		}
	}
	if o := r.Listing.Occupancy; o != nil {
		switch {
		case *o > 90:
			score += 30
		case *o > 80:
			score += 20
		case *o > 70:
			score += 10
		}
	}
	return capScore(score)
}

func scoreAppreciation(r *property.Record, _ time.Time) float64 {
	score := 50.0
	if r.Type == property.TypeOffice || r.Type == property.TypeMixedUse {
		score += 20
	}
	if psf := r.EffectivePricePerSqft(); psf > 0 && psf < 200 {
		score += 20
	}
	return capScore(score)
}

func scoreValueAdd(r *property.Record, now time.Time) float64 {
	score := 40.0
	if o := r.Listing.Occupancy; o != nil {
		switch {
		case *o < 80:
			score += 25
		case *o < 90:
			score += 15
		}
	}
	if age := r.Age(now); age >= 0 {
		switch {
		case age > 20:
			score += 25
		case age > 10:
			score += 15
		}
	}
	return capScore(score)
}

func scoreDevelopment(r *property.Record, _ time.Time) float64 {
	if r.Type == property.TypeLand {
		return 90
	}
	return 20
}

func scoreCore(r *property.Record, _ time.Time) float64 {
	score := 30.0
	if c := r.Listing.CapRate; c != nil && *c >= 5 && *c <= 7 {
		score += 25
	}
	if o := r.Listing.Occupancy; o != nil && *o > 85 {
		score += 25
	}
	if r.Type == property.TypeOffice || r.Type == property.TypeMultifamily {
		score += 20
	}
	return capScore(score)
}

func scoreOpportunistic(r *property.Record, _ time.Time) float64 {
	score := 40.0
	if d := r.Market.DaysOnMarket; d != nil && *d > 90 {
		score += 20
	}
	if o := r.Listing.Occupancy; o != nil && *o < 70 {
		score += 25
	}
	if r.Type == property.TypeLand {
		score += 15
	}
	return capScore(score)
}

// riskScore rates the property against the investor's risk appetite.
// Conservative and aggressive reward opposite signal sets: stability versus
// repositioning upside.
func riskScore(tolerance RiskTolerance, r *property.Record, now time.Time) float64 {
	switch tolerance {
	case RiskConservative:
		score := 30.0
		if o := r.Listing.Occupancy; o != nil {
			switch {
			case *o > 90:
				score += 30
			case *o > 80:
				score += 15
			}
		}
		if age := r.Age(now); age >= 0 {
			switch {
			case age < 15:
				score += 25
			case age < 30:
				score += 10
			}
		}
		if c := r.Listing.CapRate; c != nil && *c >= 4 && *c <= 8 {
			score += 15
		}
		return capScore(score)

	case RiskAggressive:
		score := 30.0
		if c := r.Listing.CapRate; c != nil {
			switch {
			case *c > 9:
				score += 30
			case *c > 7:
				score += 20
			}
		}
		if o := r.Listing.Occupancy; o != nil {
			switch {
			case *o < 70:
				score += 25
			case *o < 85:
				score += 10
			}
		}
		if age := r.Age(now); age > 30 {
			score += 15
		}
		return capScore(score)

	default: // moderate
		score := 50.0
		if c := r.Listing.CapRate; c != nil && *c >= 5 && *c <= 9 {
			score += 25
		}
		if o := r.Listing.Occupancy; o != nil && *o >= 75 {
			score += 25
		}
		return capScore(score)
	}
}

func capScore(s float64) float64 {
	if s > 100 {
		return 100
	}
	if s < 0 {
		return 0
	}
	return s
}
