package cli

import (
	"testing"

	"github.com/evcraddock/propfinder/internal/property"
)

func TestBuildFilters(t *testing.T) {
	flags := &searchFlags{
		cities:          []string{"Austin"},
		types:           []string{"office", "retail"},
		minPrice:        500_000,
		maxPrice:        2_000_000,
		minCapRate:      5,
		minOccupancy:    80,
		minYearBuilt:    1990,
		maxDaysOnMarket: 90,
		limit:           25,
	}

	f, err := buildFilters(flags)
	if err != nil {
		t.Fatalf("buildFilters: %v", err)
	}

	if f.Location == nil || f.Location.Cities[0] != "Austin" {
		t.Errorf("location = %+v, want Austin", f.Location)
	}
	if len(f.Types) != 2 || f.Types[0] != property.TypeOffice {
		t.Errorf("types = %v", f.Types)
	}
	if f.Financial == nil || *f.Financial.MinPrice != 500_000 || *f.Financial.MaxPrice != 2_000_000 {
		t.Errorf("financial = %+v", f.Financial)
	}
	if f.Investment == nil || *f.Investment.MinCapRate != 5 || *f.Investment.MinOccupancy != 80 {
		t.Errorf("investment = %+v", f.Investment)
	}
	if f.Investment.MaxCapRate != nil || f.Investment.MaxOccupancy != nil {
		t.Errorf("unset bounds should stay nil: %+v", f.Investment)
	}
	if f.Physical == nil || *f.Physical.MinYearBuilt != 1990 || f.Physical.MaxYearBuilt != nil {
		t.Errorf("physical = %+v", f.Physical)
	}
	if f.Market == nil || *f.Market.MaxDaysOnMarket != 90 {
		t.Errorf("market = %+v", f.Market)
	}
	if f.Limit != 25 {
		t.Errorf("limit = %d, want 25", f.Limit)
	}
}

func TestBuildFiltersEmpty(t *testing.T) {
	f, err := buildFilters(&searchFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if f.Location != nil || f.Financial != nil || f.Physical != nil || f.Market != nil || f.Investment != nil {
		t.Errorf("zero flags should leave every dimension nil: %+v", f)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("empty filters should validate: %v", err)
	}
}

func TestBuildFiltersUnknownType(t *testing.T) {
	if _, err := buildFilters(&searchFlags{types: []string{"castle"}}); err == nil {
		t.Fatal("unknown property type should error")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1_000, "1,000"},
		{1_234_567, "1,234,567"},
		{2_000_000.75, "2,000,000"},
		{-42_000, "-42,000"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.in); got != tt.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
