package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evcraddock/propfinder/internal/portfolio"
	"github.com/evcraddock/propfinder/internal/scoring"
)

// maxHotMarkets caps how many cities the insights call out.
const maxHotMarkets = 3

// buildInsights derives market insights from the scored set: city grouping
// for hot markets plus templated risk and opportunity notes.
func buildInsights(recs []scoring.Recommendation, analysis portfolio.Analysis) MarketInsights {
	insights := MarketInsights{
		HotMarkets:    []string{},
		Risks:         []string{},
		Opportunities: []string{},
	}
	if len(recs) == 0 {
		insights.Risks = append(insights.Risks, "No properties matched the profile; consider widening the search criteria.")
		return insights
	}

	counts := make(map[string]int)
	for _, rec := range recs {
		city := strings.TrimSpace(rec.Property.Address.City)
		if city != "" {
			counts[city]++
		}
	}
	cities := make([]string, 0, len(counts))
	for city := range counts {
		cities = append(cities, city)
	}
	sort.Slice(cities, func(i, j int) bool {
		if counts[cities[i]] != counts[cities[j]] {
			return counts[cities[i]] > counts[cities[j]]
		}
		return cities[i] < cities[j]
	})
	if len(cities) > maxHotMarkets {
		cities = cities[:maxHotMarkets]
	}
	insights.HotMarkets = cities

	if analysis.DiversificationScore < 50 {
		insights.Risks = append(insights.Risks, "Recommendations concentrate in few property types; diversification is limited.")
	}
	if analysis.RiskDistribution.Low > analysis.RiskDistribution.High {
		insights.Risks = append(insights.Risks, "Most matches carry low confidence; treat projections cautiously.")
	}
	if len(insights.Risks) == 0 {
		insights.Risks = append(insights.Risks, "Standard market risks apply: interest rate movements and local vacancy shifts.")
	}

	if analysis.ExpectedReturn >= 10 {
		insights.Opportunities = append(insights.Opportunities,
			fmt.Sprintf("Expected portfolio return of %.1f%% exceeds typical market benchmarks.", analysis.ExpectedReturn))
	}
	if analysis.RiskDistribution.High > 0 {
		insights.Opportunities = append(insights.Opportunities,
			fmt.Sprintf("%d high-confidence matches merit immediate review.", analysis.RiskDistribution.High))
	}
	if len(insights.Opportunities) == 0 {
		insights.Opportunities = append(insights.Opportunities, "Monitor these markets for new listings matching the profile.")
	}
	return insights
}

// buildPrompt renders the report data into a summarization prompt for the
// narrative collaborator.
func buildPrompt(report *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize these commercial property recommendations for an investor.\n")
	fmt.Fprintf(&b, "Matches: %d. Expected portfolio return: %.1f%%. Diversification score: %.0f/100.\n",
		len(report.Recommendations), report.Portfolio.ExpectedReturn, report.Portfolio.DiversificationScore)
	if len(report.Insights.HotMarkets) > 0 {
		fmt.Fprintf(&b, "Active markets: %s.\n", strings.Join(report.Insights.HotMarkets, ", "))
	}
	for i, rec := range report.Recommendations {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&b, "- %s %s in %s, $%.0f, score %.0f (%s confidence)\n",
			rec.Property.Type, rec.Property.Address.Street, rec.Property.Address.City,
			rec.Property.Listing.Price, rec.Score, rec.Confidence)
	}
	return b.String()
}

// fallbackSummary is the deterministic templated paragraph used when the
// narrative collaborator is unavailable or errors.
func fallbackSummary(report *Report) string {
	if len(report.Recommendations) == 0 {
		return "No properties matched the investment profile. Widening the budget range, preferred property types, or target markets may surface more candidates."
	}

	top := report.Recommendations[0]
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d properties matching the investment profile. ", len(report.Recommendations))
	fmt.Fprintf(&b, "The strongest match is a %s property in %s scoring %.0f with %s confidence. ",
		top.Property.Type, top.Property.Address.City, top.Score, top.Confidence)
	fmt.Fprintf(&b, "The set projects a %.1f%% expected annual return with a diversification score of %.0f/100.",
		report.Portfolio.ExpectedReturn, report.Portfolio.DiversificationScore)
	if len(report.Insights.HotMarkets) > 0 {
		fmt.Fprintf(&b, " Activity concentrates in %s.", strings.Join(report.Insights.HotMarkets, ", "))
	}
	if report.Approximate {
		b.WriteString(" Figures are approximate: live listing sources were unavailable and fallback data was used.")
	}
	return b.String()
}
