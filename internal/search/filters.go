// Package search implements the property search pipeline: filter
// normalization, cached multi-source aggregation, post-filtering, and
// result-set statistics.
package search

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/evcraddock/propfinder/internal/property"
)

// BoundingBox is a geographic search area.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// LocationFilter constrains results by place.
type LocationFilter struct {
	Cities      []string     `json:"cities,omitempty"`
	States      []string     `json:"states,omitempty"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
}

// FinancialFilter constrains results by listing price.
type FinancialFilter struct {
	MinPrice        *float64 `json:"min_price,omitempty"`
	MaxPrice        *float64 `json:"max_price,omitempty"`
	MaxPricePerSqft *float64 `json:"max_price_per_sqft,omitempty"`
}

// PhysicalFilter constrains results by building characteristics.
type PhysicalFilter struct {
	MinSqft      *float64 `json:"min_sqft,omitempty"`
	MaxSqft      *float64 `json:"max_sqft,omitempty"`
	MinYearBuilt *int     `json:"min_year_built,omitempty"`
	MaxYearBuilt *int     `json:"max_year_built,omitempty"`
}

// MarketFilter constrains results by market activity.
type MarketFilter struct {
	MaxDaysOnMarket *int `json:"max_days_on_market,omitempty"`
}

// InvestmentFilter constrains results by investment metrics.
type InvestmentFilter struct {
	MinCapRate   *float64 `json:"min_cap_rate,omitempty"`
	MaxCapRate   *float64 `json:"max_cap_rate,omitempty"`
	MinOccupancy *float64 `json:"min_occupancy,omitempty"`
	MaxOccupancy *float64 `json:"max_occupancy,omitempty"`
}

// Filters is the full set of search constraints. Every dimension is optional;
// a nil dimension means unconstrained. Nil pointer fields inside a dimension
// likewise mean unconstrained, so there is no ambiguity between "zero" and
// "unset".
type Filters struct {
	Location   *LocationFilter   `json:"location,omitempty"`
	Types      []property.Type   `json:"types,omitempty"`
	Financial  *FinancialFilter  `json:"financial,omitempty"`
	Physical   *PhysicalFilter   `json:"physical,omitempty"`
	Market     *MarketFilter     `json:"market,omitempty"`
	Investment *InvestmentFilter `json:"investment,omitempty"`
	Limit      int               `json:"limit,omitempty"`
}

// Validate checks every numeric range for min <= max. It runs before any
// upstream call so a bad range never costs a network round trip.
func (f *Filters) Validate() error {
	type frange struct {
		name     string
		min, max *float64
	}
	var ranges []frange

	if f.Financial != nil {
		ranges = append(ranges, frange{"price", f.Financial.MinPrice, f.Financial.MaxPrice})
	}
	if f.Physical != nil {
		ranges = append(ranges, frange{"sqft", f.Physical.MinSqft, f.Physical.MaxSqft})
		if f.Physical.MinYearBuilt != nil && f.Physical.MaxYearBuilt != nil && *f.Physical.MinYearBuilt > *f.Physical.MaxYearBuilt {
			return fmt.Errorf("year built %d..%d: %w", *f.Physical.MinYearBuilt, *f.Physical.MaxYearBuilt, ErrInvalidFilterRange)
		}
	}
	if f.Investment != nil {
		ranges = append(ranges,
			frange{"cap rate", f.Investment.MinCapRate, f.Investment.MaxCapRate},
			frange{"occupancy", f.Investment.MinOccupancy, f.Investment.MaxOccupancy},
		)
	}
	for _, r := range ranges {
		if r.min != nil && r.max != nil && *r.min > *r.max {
			return fmt.Errorf("%s %v..%v: %w", r.name, *r.min, *r.max, ErrInvalidFilterRange)
		}
	}

	if f.Location != nil && f.Location.BoundingBox != nil {
		b := f.Location.BoundingBox
		if b.MinLat > b.MaxLat || b.MinLng > b.MaxLng {
			return fmt.Errorf("bounding box: %w", ErrInvalidFilterRange)
		}
	}
	if f.Market != nil && f.Market.MaxDaysOnMarket != nil && *f.Market.MaxDaysOnMarket < 0 {
		return fmt.Errorf("max days on market %d: %w", *f.Market.MaxDaysOnMarket, ErrInvalidFilterRange)
	}
	return nil
}

// Signature returns a deterministic serialization of the filters, used as the
// cache key. Unordered sets are sorted first so logically identical filters
// always produce the same signature.
func (f *Filters) Signature() string {
	c := *f

	if len(c.Types) > 0 {
		types := make([]property.Type, len(c.Types))
		copy(types, c.Types)
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		c.Types = types
	}
	if c.Location != nil {
		loc := *c.Location
		loc.Cities = sortedLower(loc.Cities)
		loc.States = sortedLower(loc.States)
		c.Location = &loc
	}

	// Encoding a struct cannot fail; field order is fixed by declaration.
	data, _ := json.Marshal(&c)
	return string(data)
}

func sortedLower(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	sort.Strings(out)
	return out
}
