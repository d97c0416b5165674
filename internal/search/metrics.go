package search

import "github.com/evcraddock/propfinder/internal/property"

// Metrics are summary statistics for a result set. Means are taken over the
// records that report the field.
type Metrics struct {
	Count            int     `json:"count"`
	MeanPrice        float64 `json:"mean_price"`
	MeanCapRate      float64 `json:"mean_cap_rate"`
	MeanPricePerSqft float64 `json:"mean_price_per_sqft"`
	MeanDaysOnMarket float64 `json:"mean_days_on_market"`
	MinPrice         float64 `json:"min_price"`
	MaxPrice         float64 `json:"max_price"`
	TotalValue       float64 `json:"total_value"`
}

// Aggregate reduces a record list to Metrics. Empty input yields the zero
// struct, never an error, so callers never branch on absence.
func Aggregate(records []property.Record) Metrics {
	var m Metrics
	if len(records) == 0 {
		return m
	}

	m.Count = len(records)
	m.MinPrice = records[0].Listing.Price

	var capSum, capN, psfSum, psfN, domSum, domN float64
	for _, r := range records {
		p := r.Listing.Price
		m.TotalValue += p
		if p < m.MinPrice {
			m.MinPrice = p
		}
		if p > m.MaxPrice {
			m.MaxPrice = p
		}
		if r.Listing.CapRate != nil {
			capSum += *r.Listing.CapRate
			capN++
		}
		if psf := r.EffectivePricePerSqft(); psf > 0 {
			psfSum += psf
			psfN++
		}
		if r.Market.DaysOnMarket != nil {
			domSum += float64(*r.Market.DaysOnMarket)
			domN++
		}
	}

	m.MeanPrice = m.TotalValue / float64(m.Count)
	if capN > 0 {
		m.MeanCapRate = capSum / capN
	}
	if psfN > 0 {
		m.MeanPricePerSqft = psfSum / psfN
	}
	if domN > 0 {
		m.MeanDaysOnMarket = domSum / domN
	}
	return m
}
