package source

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/evcraddock/propfinder/internal/property"
)

// SyntheticName marks fallback-generated provenance.
const SyntheticName = "synthetic"

// syntheticCount is how many records the fallback generates per search.
const syntheticCount = 8

var syntheticCities = []struct {
	city, state string
	lat, lng    float64
}{
	{"Austin", "TX", 30.2672, -97.7431},
	{"Denver", "CO", 39.7392, -104.9903},
	{"Nashville", "TN", 36.1627, -86.7816},
	{"Phoenix", "AZ", 33.4484, -112.0740},
	{"Charlotte", "NC", 35.2271, -80.8431},
}

// Synthetic generates clearly-flagged approximate records when every real
// source has failed, so downstream consumers always have a bounded result to
// render. The generator is deterministic for a given seed and clock.
type Synthetic struct {
	seed int64
	now  func() time.Time
}

// NewSynthetic creates a fallback generator. A zero seed falls back to 1 so
// the zero value is still deterministic.
func NewSynthetic(seed int64, now func() time.Time) *Synthetic {
	if seed == 0 {
		seed = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Synthetic{seed: seed, now: now}
}

// Name implements Source.
func (s *Synthetic) Name() string { return SyntheticName }

// Search implements Source, producing records shaped by the query so fallback
// data still resembles what was asked for.
func (s *Synthetic) Search(_ context.Context, q Query) ([]property.Record, error) {
	rng := rand.New(rand.NewSource(s.seed))
	now := s.now()

	types := q.Types
	if len(types) == 0 {
		types = property.ValidTypes
	}

	records := make([]property.Record, 0, syntheticCount)
	for i := 0; i < syntheticCount; i++ {
		loc := syntheticCities[i%len(syntheticCities)]
		city, state := loc.city, loc.state
		coords := property.Coordinates{
			Lat: loc.lat + rng.Float64()*0.1 - 0.05,
			Lng: loc.lng + rng.Float64()*0.1 - 0.05,
		}
		if len(q.Cities) > 0 {
			// The donor coordinates belong to the donor city; a
			// query-supplied city gets no claimed location.
			city = q.Cities[i%len(q.Cities)]
			state = ""
			coords = property.Coordinates{}
		}

		price := 500_000 + rng.Float64()*4_500_000
		if q.MinPrice != nil && price < *q.MinPrice {
			price = *q.MinPrice * (1 + rng.Float64()*0.2)
		}
		if q.MaxPrice != nil && price > *q.MaxPrice {
			price = *q.MaxPrice * (0.8 + rng.Float64()*0.2)
		}

		sqft := 5_000 + rng.Float64()*45_000
		occupancy := 60 + rng.Float64()*40
		capRate := 4 + rng.Float64()*6
		noi := price * capRate / 100
		yearBuilt := 1975 + rng.Intn(50)
		dom := 10 + rng.Intn(170)

		records = append(records, property.Record{
			ID: fmt.Sprintf("synthetic-%d", i+1),
			Address: property.Address{
				Street: fmt.Sprintf("%d Market St", 100+i*25),
				City:   city,
				State:  state,
			},
			Coordinates: coords,
			Type: types[i%len(types)],
			Listing: property.Listing{
				Price:     roundTo(price, 1000),
				Sqft:      roundTo(sqft, 100),
				YearBuilt: &yearBuilt,
				Occupancy: roundPtr(occupancy, 1),
				CapRate:   roundPtr(capRate, 0.1),
				NOI:       roundPtr(noi, 1000),
			},
			Market:    property.MarketData{DaysOnMarket: &dom},
			Source:    SyntheticName,
			Synthetic: true,
			UpdatedAt: now,
		})
	}
	return records, nil
}

// MarketMetrics implements Source with approximate area statistics.
func (s *Synthetic) MarketMetrics(_ context.Context, area string, pt property.Type) (*MarketMetrics, error) {
	rng := rand.New(rand.NewSource(s.seed))
	return &MarketMetrics{
		Area:          area,
		PropertyType:  string(pt),
		MedianPrice:   roundTo(1_000_000+rng.Float64()*2_000_000, 1000),
		MeanCapRate:   roundTo(5+rng.Float64()*2, 0.1),
		MeanDOM:       roundTo(30+rng.Float64()*60, 1),
		ActiveListing: 20 + rng.Intn(80),
	}, nil
}

func roundTo(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return float64(int64(v/unit+0.5)) * unit
}

func roundPtr(v, unit float64) *float64 {
	r := roundTo(v, unit)
	return &r
}
