package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evcraddock/propfinder/internal/property"
)

// maxHotspots caps how many localities the summary surfaces.
const maxHotspots = 5

// trendThreshold is the relative price-history delta separating rising and
// cooling from stable.
const trendThreshold = 0.02

// Hotspot is a locality with a disproportionately high share of results.
type Hotspot struct {
	City      string  `json:"city"`
	Count     int     `json:"count"`
	MeanPrice float64 `json:"mean_price"`
	Trend     string  `json:"trend"` // "rising", "stable", or "cooling"
}

// MarketSummary describes the shape of a result set by locality.
type MarketSummary struct {
	Hotspots        []Hotspot `json:"hotspots"`
	Recommendations []string  `json:"recommendations"`
}

// Summarize groups records by city, surfaces the top hotspots by count, and
// derives generic strategy recommendations from the statistic distribution.
func Summarize(records []property.Record, metrics Metrics) MarketSummary {
	summary := MarketSummary{Hotspots: []Hotspot{}}
	if len(records) == 0 {
		return summary
	}

	type cityAgg struct {
		count int
		total float64
		delta float64 // summed relative price-history movement
		deltaN int
	}
	cities := make(map[string]*cityAgg)
	for _, r := range records {
		city := strings.TrimSpace(r.Address.City)
		if city == "" {
			city = "Unknown"
		}
		agg := cities[city]
		if agg == nil {
			agg = &cityAgg{}
			cities[city] = agg
		}
		agg.count++
		agg.total += r.Listing.Price
		if d, ok := historyDelta(r.Market.PriceHistory); ok {
			agg.delta += d
			agg.deltaN++
		}
	}

	hotspots := make([]Hotspot, 0, len(cities))
	for city, agg := range cities {
		h := Hotspot{
			City:      city,
			Count:     agg.count,
			MeanPrice: agg.total / float64(agg.count),
			Trend:     "stable",
		}
		if agg.deltaN > 0 {
			mean := agg.delta / float64(agg.deltaN)
			switch {
			case mean > trendThreshold:
				h.Trend = "rising"
			case mean < -trendThreshold:
				h.Trend = "cooling"
			}
		}
		hotspots = append(hotspots, h)
	}

	// Count descending, then city name for a stable order.
	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Count != hotspots[j].Count {
			return hotspots[i].Count > hotspots[j].Count
		}
		return hotspots[i].City < hotspots[j].City
	})
	if len(hotspots) > maxHotspots {
		hotspots = hotspots[:maxHotspots]
	}
	summary.Hotspots = hotspots
	summary.Recommendations = recommendations(metrics)
	return summary
}

// historyDelta returns the relative move from the first to the last recorded
// price, when at least two points exist.
func historyDelta(history []property.PricePoint) (float64, bool) {
	if len(history) < 2 {
		return 0, false
	}
	first, last := history[0].Price, history[len(history)-1].Price
	if first <= 0 {
		return 0, false
	}
	return (last - first) / first, true
}

// recommendations derives 1-3 generic strategy notes from the result-set
// statistics.
func recommendations(m Metrics) []string {
	var recs []string
	if m.MeanCapRate >= 7 {
		recs = append(recs, fmt.Sprintf("Mean cap rate of %.1f%% favors income-focused strategies in this market.", m.MeanCapRate))
	} else if m.MeanCapRate > 0 && m.MeanCapRate < 5 {
		recs = append(recs, fmt.Sprintf("Compressed cap rates (%.1f%% mean) suggest pricing for appreciation rather than income.", m.MeanCapRate))
	}
	if m.MeanDaysOnMarket > 90 {
		recs = append(recs, fmt.Sprintf("Listings average %.0f days on market; sellers may be open to negotiation.", m.MeanDaysOnMarket))
	} else if m.MeanDaysOnMarket > 0 && m.MeanDaysOnMarket < 30 {
		recs = append(recs, "Inventory is moving quickly; act promptly on strong matches.")
	}
	if len(recs) < 3 && m.Count > 0 {
		recs = append(recs, fmt.Sprintf("Market conditions appear balanced across %d matching listings.", m.Count))
	}
	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs
}
