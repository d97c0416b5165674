package scoring

import (
	"testing"

	"github.com/evcraddock/propfinder/internal/property"
)

func TestScoreCashFlow(t *testing.T) {
	tests := []struct {
		name string
		rec  property.Record
		want float64
	}{
		{"no data", property.Record{}, 30},
		{"high cap high occ", property.Record{Listing: property.Listing{CapRate: fptr(9), Occupancy: fptr(95)}}, 100},
		{"mid cap mid occ", property.Record{Listing: property.Listing{CapRate: fptr(7), Occupancy: fptr(85)}}, 75},
		{"low cap low occ", property.Record{Listing: property.Listing{CapRate: fptr(5), Occupancy: fptr(75)}}, 50},
		{"cap only", property.Record{Listing: property.Listing{CapRate: fptr(9)}}, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreCashFlow(&tt.rec, testClock()); got != tt.want {
				t.Errorf("scoreCashFlow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreAppreciation(t *testing.T) {
	tests := []struct {
		name string
		rec  property.Record
		want float64
	}{
		{"plain retail", property.Record{Type: property.TypeRetail}, 50},
		{"office", property.Record{Type: property.TypeOffice}, 70},
		{"mixed use cheap psf", property.Record{Type: property.TypeMixedUse, Listing: property.Listing{PricePerSqft: 150}}, 90},
		{"industrial cheap psf", property.Record{Type: property.TypeIndustrial, Listing: property.Listing{PricePerSqft: 180}}, 70},
		{"expensive psf", property.Record{Type: property.TypeRetail, Listing: property.Listing{PricePerSqft: 400}}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreAppreciation(&tt.rec, testClock()); got != tt.want {
				t.Errorf("scoreAppreciation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreValueAdd(t *testing.T) {
	old := 1995  // 30 years old at the test clock
	mid := 2012  // 13 years old
	tests := []struct {
		name string
		rec  property.Record
		want float64
	}{
		{"no data", property.Record{}, 40},
		{"vacant and old", property.Record{Listing: property.Listing{Occupancy: fptr(70), YearBuilt: &old}}, 90},
		{"partly leased newer", property.Record{Listing: property.Listing{Occupancy: fptr(85), YearBuilt: &mid}}, 70},
		{"stabilized", property.Record{Listing: property.Listing{Occupancy: fptr(96)}}, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreValueAdd(&tt.rec, testClock()); got != tt.want {
				t.Errorf("scoreValueAdd = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreDevelopment(t *testing.T) {
	land := property.Record{Type: property.TypeLand}
	if got := scoreDevelopment(&land, testClock()); got != 90 {
		t.Errorf("land score = %v, want 90", got)
	}
	office := property.Record{Type: property.TypeOffice}
	if got := scoreDevelopment(&office, testClock()); got != 20 {
		t.Errorf("improved property score = %v, want 20", got)
	}
}

func TestScoreCore(t *testing.T) {
	stabilized := property.Record{
		Type:    property.TypeMultifamily,
		Listing: property.Listing{CapRate: fptr(6), Occupancy: fptr(92)},
	}
	if got := scoreCore(&stabilized, testClock()); got != 100 {
		t.Errorf("stabilized multifamily = %v, want 100", got)
	}

	speculative := property.Record{
		Type:    property.TypeLand,
		Listing: property.Listing{CapRate: fptr(12)},
	}
	if got := scoreCore(&speculative, testClock()); got != 30 {
		t.Errorf("speculative land = %v, want base 30", got)
	}
}

func TestScoreOpportunistic(t *testing.T) {
	distressed := property.Record{
		Type:    property.TypeLand,
		Listing: property.Listing{Occupancy: fptr(50)},
		Market:  property.MarketData{DaysOnMarket: iptr(180)},
	}
	if got := scoreOpportunistic(&distressed, testClock()); got != 100 {
		t.Errorf("distressed land = %v, want 100", got)
	}

	stabilized := property.Record{
		Type:    property.TypeOffice,
		Listing: property.Listing{Occupancy: fptr(95)},
		Market:  property.MarketData{DaysOnMarket: iptr(20)},
	}
	if got := scoreOpportunistic(&stabilized, testClock()); got != 40 {
		t.Errorf("stabilized office = %v, want base 40", got)
	}
}

func TestRiskScoreConservative(t *testing.T) {
	newer := 2015
	safe := property.Record{
		Listing: property.Listing{CapRate: fptr(6), Occupancy: fptr(95), YearBuilt: &newer},
	}
	if got := riskScore(RiskConservative, &safe, testClock()); got != 100 {
		t.Errorf("stable asset = %v, want 100", got)
	}

	risky := property.Record{
		Listing: property.Listing{CapRate: fptr(12), Occupancy: fptr(50)},
	}
	if got := riskScore(RiskConservative, &risky, testClock()); got != 30 {
		t.Errorf("risky asset = %v, want base 30", got)
	}
}

func TestRiskScoreAggressive(t *testing.T) {
	old := 1985
	upside := property.Record{
		Listing: property.Listing{CapRate: fptr(10), Occupancy: fptr(60), YearBuilt: &old},
	}
	if got := riskScore(RiskAggressive, &upside, testClock()); got != 100 {
		t.Errorf("repositioning play = %v, want 100", got)
	}

	stable := property.Record{
		Listing: property.Listing{CapRate: fptr(5), Occupancy: fptr(95)},
	}
	if got := riskScore(RiskAggressive, &stable, testClock()); got != 30 {
		t.Errorf("stable asset = %v, want base 30", got)
	}
}

func TestRiskScoreModerate(t *testing.T) {
	balanced := property.Record{
		Listing: property.Listing{CapRate: fptr(7), Occupancy: fptr(85)},
	}
	if got := riskScore(RiskModerate, &balanced, testClock()); got != 100 {
		t.Errorf("balanced asset = %v, want 100", got)
	}

	unknown := property.Record{}
	if got := riskScore(RiskModerate, &unknown, testClock()); got != 50 {
		t.Errorf("no data = %v, want base 50", got)
	}
}

func TestCapScore(t *testing.T) {
	if got := capScore(120); got != 100 {
		t.Errorf("capScore(120) = %v, want 100", got)
	}
	if got := capScore(-5); got != 0 {
		t.Errorf("capScore(-5) = %v, want 0", got)
	}
	if got := capScore(55); got != 55 {
		t.Errorf("capScore(55) = %v, want 55", got)
	}
}
