// Package portfolio rolls a recommendation set up into diversification, risk,
// and return figures.
package portfolio

import (
	"github.com/evcraddock/propfinder/internal/property"
	"github.com/evcraddock/propfinder/internal/scoring"
)

// targetTypeCount is the number of distinct property types considered fully
// diversified.
const targetTypeCount = 4

// RiskDistribution buckets recommendations by confidence tier.
type RiskDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Analysis is the portfolio-level rollup of a recommendation set.
type Analysis struct {
	DiversificationScore float64          `json:"diversification_score"` // 0-100
	RiskDistribution     RiskDistribution `json:"risk_distribution"`
	ExpectedReturn       float64          `json:"expected_return"` // mean estimated ROI, percent
	TotalValue           float64          `json:"total_value"`
	PropertyTypes        int              `json:"property_types"`
}

// Analyze computes the rollup. It is deterministic and makes no external
// calls; an empty set yields the zero analysis.
func Analyze(recs []scoring.Recommendation) Analysis {
	var a Analysis
	if len(recs) == 0 {
		return a
	}

	types := make(map[property.Type]bool)
	var roiSum float64
	for _, rec := range recs {
		types[rec.Property.Type] = true
		roiSum += rec.Returns.EstimatedROI
		a.TotalValue += rec.Property.Listing.Price

		switch rec.Confidence {
		case scoring.ConfidenceHigh:
			a.RiskDistribution.High++
		case scoring.ConfidenceMedium:
			a.RiskDistribution.Medium++
		default:
			a.RiskDistribution.Low++
		}
	}

	a.PropertyTypes = len(types)
	a.DiversificationScore = float64(len(types)) / targetTypeCount * 100
	if a.DiversificationScore > 100 {
		a.DiversificationScore = 100
	}
	a.ExpectedReturn = roiSum / float64(len(recs))
	return a
}
