// Package property provides the normalized commercial property record model.
package property

import (
	"fmt"
	"time"
)

// Type classifies a commercial property.
type Type string

const (
	TypeOffice      Type = "office"
	TypeRetail      Type = "retail"
	TypeIndustrial  Type = "industrial"
	TypeMultifamily Type = "multifamily"
	TypeMixedUse    Type = "mixed-use"
	TypeLand        Type = "land"
)

// ValidTypes is the set of recognized property types.
var ValidTypes = []Type{TypeOffice, TypeRetail, TypeIndustrial, TypeMultifamily, TypeMixedUse, TypeLand}

// IsValid reports whether t is a recognized property type.
func (t Type) IsValid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Address is a postal address broken into components.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip,omitempty"`
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing holds the financial details of an active listing.
// Optional fields are pointers; nil means the upstream source did not report them.
type Listing struct {
	Price        float64  `json:"price"`
	PricePerSqft float64  `json:"price_per_sqft,omitempty"`
	Sqft         float64  `json:"sqft,omitempty"`
	YearBuilt    *int     `json:"year_built,omitempty"`
	Occupancy    *float64 `json:"occupancy,omitempty"` // percent, 0-100
	CapRate      *float64 `json:"cap_rate,omitempty"`  // percent
	NOI          *float64 `json:"noi,omitempty"`       // annual net operating income
}

// PricePoint is one observation in a listing's price history.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// MarketData holds market activity for a listing.
type MarketData struct {
	DaysOnMarket *int         `json:"days_on_market,omitempty"`
	PriceHistory []PricePoint `json:"price_history,omitempty"`
}

// Projections are upstream-provided investment projections, when available.
type Projections struct {
	EstimatedROI float64 `json:"estimated_roi"`
	Appreciation float64 `json:"appreciation"`
}

// Record is a property listing normalized across upstream sources.
type Record struct {
	ID          string       `json:"id"`
	Address     Address      `json:"address"`
	Coordinates Coordinates  `json:"coordinates"`
	Type        Type         `json:"type"`
	Listing     Listing      `json:"listing"`
	Market      MarketData   `json:"market"`
	Zoning      string       `json:"zoning,omitempty"`
	Projections *Projections `json:"projections,omitempty"`
	Source      string       `json:"source"`
	Synthetic   bool         `json:"synthetic,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Validate checks the record invariants: coordinates in range and a
// non-negative price.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record missing id")
	}
	if r.Coordinates.Lat < -90 || r.Coordinates.Lat > 90 {
		return fmt.Errorf("record %s: latitude %v out of range", r.ID, r.Coordinates.Lat)
	}
	if r.Coordinates.Lng < -180 || r.Coordinates.Lng > 180 {
		return fmt.Errorf("record %s: longitude %v out of range", r.ID, r.Coordinates.Lng)
	}
	if r.Listing.Price < 0 {
		return fmt.Errorf("record %s: negative price %v", r.ID, r.Listing.Price)
	}
	if r.Type != "" && !r.Type.IsValid() {
		return fmt.Errorf("record %s: unknown property type %q", r.ID, r.Type)
	}
	return nil
}

// EffectivePricePerSqft returns the listed price per square foot, deriving it
// from price and square footage when the source did not report one.
func (r *Record) EffectivePricePerSqft() float64 {
	if r.Listing.PricePerSqft > 0 {
		return r.Listing.PricePerSqft
	}
	if r.Listing.Sqft > 0 {
		return r.Listing.Price / r.Listing.Sqft
	}
	return 0
}

// Age returns the building age in years relative to now, or -1 when the year
// built is unknown.
func (r *Record) Age(now time.Time) int {
	if r.Listing.YearBuilt == nil {
		return -1
	}
	age := now.Year() - *r.Listing.YearBuilt
	if age < 0 {
		age = 0
	}
	return age
}
