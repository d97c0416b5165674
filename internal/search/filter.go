package search

import (
	"github.com/evcraddock/propfinder/internal/property"
)

// ApplyFilters applies the predicates upstream sources cannot express:
// occupancy range, year-built range, cap-rate range, and max days on market.
// It is a pure function and preserves input order. A record missing a
// filtered field is excluded; unknown data never passes a numeric filter.
func ApplyFilters(records []property.Record, f *Filters) []property.Record {
	if f == nil {
		return records
	}

	out := make([]property.Record, 0, len(records))
	for _, r := range records {
		if passes(&r, f) {
			out = append(out, r)
		}
	}
	return out
}

func passes(r *property.Record, f *Filters) bool {
	if inv := f.Investment; inv != nil {
		if inv.MinCapRate != nil || inv.MaxCapRate != nil {
			if r.Listing.CapRate == nil {
				return false
			}
			if inv.MinCapRate != nil && *r.Listing.CapRate < *inv.MinCapRate {
				return false
			}
			if inv.MaxCapRate != nil && *r.Listing.CapRate > *inv.MaxCapRate {
				return false
			}
		}
		if inv.MinOccupancy != nil || inv.MaxOccupancy != nil {
			if r.Listing.Occupancy == nil {
				return false
			}
			if inv.MinOccupancy != nil && *r.Listing.Occupancy < *inv.MinOccupancy {
				return false
			}
			if inv.MaxOccupancy != nil && *r.Listing.Occupancy > *inv.MaxOccupancy {
				return false
			}
		}
	}

	if ph := f.Physical; ph != nil && (ph.MinYearBuilt != nil || ph.MaxYearBuilt != nil) {
		if r.Listing.YearBuilt == nil {
			return false
		}
		if ph.MinYearBuilt != nil && *r.Listing.YearBuilt < *ph.MinYearBuilt {
			return false
		}
		if ph.MaxYearBuilt != nil && *r.Listing.YearBuilt > *ph.MaxYearBuilt {
			return false
		}
	}

	if m := f.Market; m != nil && m.MaxDaysOnMarket != nil {
		if r.Market.DaysOnMarket == nil {
			return false
		}
		if *r.Market.DaysOnMarket > *m.MaxDaysOnMarket {
			return false
		}
	}

	if fin := f.Financial; fin != nil && fin.MaxPricePerSqft != nil {
		psf := r.EffectivePricePerSqft()
		if psf <= 0 || psf > *fin.MaxPricePerSqft {
			return false
		}
	}

	return true
}
