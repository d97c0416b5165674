package source

import (
	"context"
	"testing"
	"time"

	"github.com/evcraddock/propfinder/internal/property"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestSyntheticDeterministic(t *testing.T) {
	a, err := NewSynthetic(42, fixedClock).Search(context.Background(), Query{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSynthetic(42, fixedClock).Search(context.Background(), Query{})
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Listing.Price != b[i].Listing.Price {
			t.Errorf("record %d differs across identical seeds", i)
		}
	}
}

func TestSyntheticFlagsRecords(t *testing.T) {
	records, err := NewSynthetic(1, fixedClock).Search(context.Background(), Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) == 0 {
		t.Fatal("no records generated")
	}
	for _, r := range records {
		if !r.Synthetic {
			t.Errorf("record %s not flagged synthetic", r.ID)
		}
		if r.Source != SyntheticName {
			t.Errorf("record %s source = %s, want %s", r.ID, r.Source, SyntheticName)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("record %s invalid: %v", r.ID, err)
		}
	}
}

func TestSyntheticHonorsQueryShape(t *testing.T) {
	q := Query{
		Cities:   []string{"Tulsa"},
		Types:    []property.Type{property.TypeIndustrial},
		MinPrice: floatPtr(2_000_000),
		MaxPrice: floatPtr(3_000_000),
	}
	records, err := NewSynthetic(7, fixedClock).Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if r.Address.City != "Tulsa" {
			t.Errorf("record %s city = %s, want Tulsa", r.ID, r.Address.City)
		}
		// No donor coordinates may be claimed for a query-supplied city.
		if r.Coordinates != (property.Coordinates{}) {
			t.Errorf("record %s carries coordinates %+v for a city it was never located in", r.ID, r.Coordinates)
		}
		if r.Type != property.TypeIndustrial {
			t.Errorf("record %s type = %s, want industrial", r.ID, r.Type)
		}
		// Rounding to the nearest thousand can land just past the bound.
		if r.Listing.Price < 1_990_000 || r.Listing.Price > 3_010_000 {
			t.Errorf("record %s price %v outside requested band", r.ID, r.Listing.Price)
		}
	}
}

func TestSyntheticZeroSeed(t *testing.T) {
	a, _ := NewSynthetic(0, fixedClock).Search(context.Background(), Query{})
	b, _ := NewSynthetic(0, fixedClock).Search(context.Background(), Query{})
	for i := range a {
		if a[i].Listing.Price != b[i].Listing.Price {
			t.Fatal("zero seed is not deterministic")
		}
	}
}

func TestSyntheticMarketMetrics(t *testing.T) {
	m, err := NewSynthetic(3, fixedClock).MarketMetrics(context.Background(), "Austin", property.TypeOffice)
	if err != nil {
		t.Fatal(err)
	}
	if m.Area != "Austin" {
		t.Errorf("area = %s, want Austin", m.Area)
	}
	if m.MedianPrice <= 0 || m.MeanCapRate <= 0 {
		t.Errorf("implausible metrics: %+v", m)
	}
}

func floatPtr(v float64) *float64 { return &v }
