// Package recommend composes the search, scoring, and portfolio components
// into end-to-end investment recommendations.
package recommend

import (
	"errors"
	"time"

	"github.com/evcraddock/propfinder/internal/portfolio"
	"github.com/evcraddock/propfinder/internal/scoring"
)

// ErrGenerationFailed wraps any unrecovered pipeline error at the
// orchestrator boundary.
var ErrGenerationFailed = errors.New("recommendation generation failed")

// MarketInsights summarize market conditions across the recommendation set.
type MarketInsights struct {
	HotMarkets    []string `json:"hot_markets"`
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
}

// Report is a complete recommendation response: scored properties ordered by
// score descending, a portfolio rollup, market insights, and a narrative
// summary.
type Report struct {
	ID              string                   `json:"id"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
	Portfolio       portfolio.Analysis       `json:"portfolio"`
	Insights        MarketInsights           `json:"insights"`
	Summary         string                   `json:"summary"`
	Approximate     bool                     `json:"approximate,omitempty"`
	GeneratedAt     time.Time                `json:"generated_at"`
}
