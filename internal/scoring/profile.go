// Package scoring ranks properties against a user's investment profile with
// a weighted multi-factor score.
package scoring

import (
	"fmt"

	"github.com/evcraddock/propfinder/internal/property"
)

// Strategy is an investment strategy.
type Strategy string

const (
	StrategyCashFlow      Strategy = "cash-flow"
	StrategyAppreciation  Strategy = "appreciation"
	StrategyValueAdd      Strategy = "value-add"
	StrategyDevelopment   Strategy = "development"
	StrategyCore          Strategy = "core"
	StrategyOpportunistic Strategy = "opportunistic"
)

// ValidStrategies is the set of recognized strategies.
var ValidStrategies = []Strategy{
	StrategyCashFlow, StrategyAppreciation, StrategyValueAdd,
	StrategyDevelopment, StrategyCore, StrategyOpportunistic,
}

// IsValid reports whether s is a recognized strategy.
func (s Strategy) IsValid() bool {
	for _, v := range ValidStrategies {
		if s == v {
			return true
		}
	}
	return false
}

// RiskTolerance is the investor's appetite for risk.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// IsValid reports whether r is a recognized risk tolerance.
func (r RiskTolerance) IsValid() bool {
	switch r {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// Criteria are optional hard thresholds the investor cares about.
type Criteria struct {
	MinCapRate      *float64 `json:"min_cap_rate,omitempty" yaml:"min_cap_rate,omitempty"`
	MinOccupancy    *float64 `json:"min_occupancy,omitempty" yaml:"min_occupancy,omitempty"`
	MaxDaysOnMarket *int     `json:"max_days_on_market,omitempty" yaml:"max_days_on_market,omitempty"`
	MinSqft         *float64 `json:"min_sqft,omitempty" yaml:"min_sqft,omitempty"`
}

// Profile is an immutable description of what the investor wants. It is a
// pure scoring input; the engine never mutates it.
type Profile struct {
	Strategy        Strategy        `json:"strategy" yaml:"strategy"`
	RiskTolerance   RiskTolerance   `json:"risk_tolerance" yaml:"risk_tolerance"`
	BudgetMin       float64         `json:"budget_min" yaml:"budget_min"`
	BudgetMax       float64         `json:"budget_max" yaml:"budget_max"`
	PreferredTypes  []property.Type `json:"preferred_types" yaml:"preferred_types"`
	PreferredCities []string        `json:"preferred_cities,omitempty" yaml:"preferred_cities,omitempty"`
	PreferredStates []string        `json:"preferred_states,omitempty" yaml:"preferred_states,omitempty"`
	Criteria        Criteria        `json:"criteria" yaml:"criteria"`
	TimelineYears   int             `json:"timeline_years" yaml:"timeline_years"`
}

// Validate checks the profile for usable values.
func (p *Profile) Validate() error {
	if !p.Strategy.IsValid() {
		return fmt.Errorf("unknown strategy %q", p.Strategy)
	}
	if !p.RiskTolerance.IsValid() {
		return fmt.Errorf("unknown risk tolerance %q", p.RiskTolerance)
	}
	if p.BudgetMin > 0 && p.BudgetMax > 0 && p.BudgetMin > p.BudgetMax {
		return fmt.Errorf("budget range %v..%v inverted", p.BudgetMin, p.BudgetMax)
	}
	for _, t := range p.PreferredTypes {
		if !t.IsValid() {
			return fmt.Errorf("unknown property type %q", t)
		}
	}
	return nil
}

// Timeline returns the holding period in years, defaulting to 5.
func (p *Profile) Timeline() int {
	if p.TimelineYears > 0 {
		return p.TimelineYears
	}
	return 5
}
