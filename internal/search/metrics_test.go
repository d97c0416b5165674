package search

import (
	"testing"

	"github.com/evcraddock/propfinder/internal/property"
)

func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(nil)
	if m != (Metrics{}) {
		t.Fatalf("empty input should yield the zero struct, got %+v", m)
	}
}

func TestAggregate(t *testing.T) {
	records := []property.Record{
		record("a", func(r *property.Record) {
			r.Listing.Price = 1_000_000
			r.Listing.CapRate = fptr(6)
			r.Market.DaysOnMarket = iptr(30)
		}),
		record("b", func(r *property.Record) {
			r.Listing.Price = 3_000_000
			r.Listing.CapRate = fptr(8)
		}),
		record("c", func(r *property.Record) {
			r.Listing.Price = 2_000_000
		}),
	}

	m := Aggregate(records)
	if m.Count != 3 {
		t.Errorf("count = %d, want 3", m.Count)
	}
	if m.MeanPrice != 2_000_000 {
		t.Errorf("mean price = %v, want 2000000", m.MeanPrice)
	}
	if m.MinPrice != 1_000_000 || m.MaxPrice != 3_000_000 {
		t.Errorf("price range = %v-%v, want 1000000-3000000", m.MinPrice, m.MaxPrice)
	}
	if m.TotalValue != 6_000_000 {
		t.Errorf("total value = %v, want 6000000", m.TotalValue)
	}
	// Means are over the records reporting the field, not the full set.
	if m.MeanCapRate != 7 {
		t.Errorf("mean cap rate = %v, want 7", m.MeanCapRate)
	}
	if m.MeanDaysOnMarket != 30 {
		t.Errorf("mean DOM = %v, want 30", m.MeanDaysOnMarket)
	}
}

func TestAggregatePricePerSqft(t *testing.T) {
	records := []property.Record{
		record("a", func(r *property.Record) { r.Listing.PricePerSqft = 200 }),
		record("b", func(r *property.Record) {
			r.Listing.Price = 1_000_000
			r.Listing.Sqft = 10_000
		}),
	}

	m := Aggregate(records)
	if m.MeanPricePerSqft != 150 {
		t.Errorf("mean price/sqft = %v, want 150 (reported and derived both counted)", m.MeanPricePerSqft)
	}
}
