package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/propfinder/internal/recommend"
	"github.com/evcraddock/propfinder/internal/search"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSearchResult prints a search result as a table plus statistics.
func printSearchResult(r *search.Result) error {
	if len(r.Properties) == 0 {
		fmt.Println("No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tCITY\tTYPE\tPRICE\tCAP\tOCC\tDOM\tSOURCE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t----\t-----\t---\t---\t---\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range r.Properties {
		capRate := "-"
		if p.Listing.CapRate != nil {
			capRate = fmt.Sprintf("%.1f%%", *p.Listing.CapRate)
		}
		occ := "-"
		if p.Listing.Occupancy != nil {
			occ = fmt.Sprintf("%.0f%%", *p.Listing.Occupancy)
		}
		dom := "-"
		if p.Market.DaysOnMarket != nil {
			dom = fmt.Sprintf("%d", *p.Market.DaysOnMarket)
		}
		src := p.Source
		if p.Synthetic {
			src += " (approx)"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Address.City, p.Type, formatMoney(p.Listing.Price), capRate, occ, dom, src); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Println()
	fmt.Printf("Results: %d", r.Meta.TotalCount)
	if r.Meta.CacheHit {
		fmt.Print("  (cached)")
	}
	if r.Meta.Approximate {
		fmt.Print("  (approximate fallback data)")
	}
	fmt.Println()
	fmt.Printf("Sources: %s\n", strings.Join(r.Meta.SourcesUsed, ", "))
	if r.Metrics.Count > 0 {
		fmt.Printf("Mean price: $%s  Range: $%s-$%s  Total value: $%s\n",
			formatMoney(r.Metrics.MeanPrice), formatMoney(r.Metrics.MinPrice),
			formatMoney(r.Metrics.MaxPrice), formatMoney(r.Metrics.TotalValue))
		if r.Metrics.MeanCapRate > 0 {
			fmt.Printf("Mean cap rate: %.1f%%  Mean DOM: %.0f days\n", r.Metrics.MeanCapRate, r.Metrics.MeanDaysOnMarket)
		}
	}

	if len(r.Summary.Hotspots) > 0 {
		fmt.Println("\nHotspots:")
		for _, h := range r.Summary.Hotspots {
			fmt.Printf("  %-16s %d listings, mean $%s (%s)\n", h.City, h.Count, formatMoney(h.MeanPrice), h.Trend)
		}
	}
	for _, rec := range r.Summary.Recommendations {
		fmt.Printf("  * %s\n", rec)
	}
	return nil
}

// printReport prints a recommendation report in text format.
func printReport(r *recommend.Report) error {
	if len(r.Recommendations) == 0 {
		fmt.Println("No recommendations.")
		fmt.Println(r.Summary)
		return nil
	}

	for i, rec := range r.Recommendations {
		fmt.Printf("%d. [%.0f %s] %s %s, %s — $%s\n",
			i+1, rec.Score, rec.Confidence,
			rec.Property.Type, rec.Property.Address.Street, rec.Property.Address.City,
			formatMoney(rec.Property.Listing.Price))
		for _, reason := range rec.MatchReasons {
			fmt.Printf("     + %s\n", reason)
		}
		for _, risk := range rec.RiskFactors {
			fmt.Printf("     ! %s\n", risk)
		}
		for _, opp := range rec.OpportunityHighlights {
			fmt.Printf("     ^ %s\n", opp)
		}
		fmt.Printf("     ROI %.1f%%/yr, cash flow $%s/mo, %.1f%% total over hold\n",
			rec.Returns.EstimatedROI, formatMoney(rec.Returns.MonthlyCashFlow), rec.Returns.TotalReturn)
	}

	fmt.Println()
	fmt.Printf("Portfolio: diversification %.0f/100, expected return %.1f%%, confidence high/med/low %d/%d/%d\n",
		r.Portfolio.DiversificationScore, r.Portfolio.ExpectedReturn,
		r.Portfolio.RiskDistribution.High, r.Portfolio.RiskDistribution.Medium, r.Portfolio.RiskDistribution.Low)
	if len(r.Insights.HotMarkets) > 0 {
		fmt.Printf("Hot markets: %s\n", strings.Join(r.Insights.HotMarkets, ", "))
	}
	fmt.Println()
	fmt.Println(r.Summary)
	return nil
}

// formatMoney renders a dollar amount with thousands separators, dropping
// cents.
func formatMoney(v float64) string {
	n := int64(v)
	if n < 0 {
		return "-" + formatMoney(-v)
	}

	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
