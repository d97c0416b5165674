package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/evcraddock/propfinder/internal/property"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func testClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func testEngine() *Engine {
	e := NewDefaultEngine()
	e.SetClock(testClock)
	return e
}

func stabilizedMultifamily() property.Record {
	return property.Record{
		ID:      "mf-1",
		Address: property.Address{Street: "400 Lamar Blvd", City: "Austin", State: "TX"},
		Type:    property.TypeMultifamily,
		Listing: property.Listing{
			Price:     1_200_000,
			CapRate:   fptr(9),
			Occupancy: fptr(95),
		},
	}
}

func TestScoreStabilizedCashFlowDeal(t *testing.T) {
	p := &Profile{
		Strategy:       StrategyCashFlow,
		RiskTolerance:  RiskModerate,
		BudgetMin:      500_000,
		BudgetMax:      2_000_000,
		PreferredTypes: []property.Type{property.TypeMultifamily},
	}
	r := stabilizedMultifamily()

	rec := testEngine().Score(p, &r)

	// Strategy, risk, budget, type, and criteria all max out; location is
	// neutral 60 and unknown DOM is neutral 50, giving 93.5 exactly.
	if rec.Score != 93.5 {
		t.Errorf("score = %v, want 93.5", rec.Score)
	}
	if rec.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %s, want high", rec.Confidence)
	}
	if len(rec.MatchReasons) == 0 {
		t.Error("a near-perfect match should carry match reasons")
	}
}

func TestScoreBounds(t *testing.T) {
	profiles := []*Profile{
		{Strategy: StrategyCashFlow, RiskTolerance: RiskConservative},
		{Strategy: StrategyOpportunistic, RiskTolerance: RiskAggressive, BudgetMax: 100},
		{Strategy: StrategyDevelopment, RiskTolerance: RiskModerate, PreferredTypes: []property.Type{property.TypeLand}},
	}
	records := []property.Record{
		stabilizedMultifamily(),
		{ID: "empty", Type: property.TypeLand},
		{ID: "distressed", Type: property.TypeOffice, Listing: property.Listing{Price: 50_000_000, Occupancy: fptr(40)}},
	}

	e := testEngine()
	for _, p := range profiles {
		for i := range records {
			rec := e.Score(p, &records[i])
			if rec.Score < 0 || rec.Score > 100 {
				t.Errorf("score %v out of bounds for %s/%s", rec.Score, p.Strategy, records[i].ID)
			}
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	p := &Profile{Strategy: StrategyCore, RiskTolerance: RiskModerate}
	r := stabilizedMultifamily()

	e := testEngine()
	first := e.Score(p, &r)
	second := e.Score(p, &r)
	if first.Score != second.Score || first.Confidence != second.Confidence {
		t.Errorf("scoring is not idempotent: %v vs %v", first.Score, second.Score)
	}
}

func TestTypeMatchGate(t *testing.T) {
	p := &Profile{PreferredTypes: []property.Type{property.TypeOffice}}

	office := property.Record{Type: property.TypeOffice}
	retail := property.Record{Type: property.TypeRetail}
	if got := typeMatchScore(p, &office); got != 100 {
		t.Errorf("preferred type score = %v, want 100", got)
	}
	if got := typeMatchScore(p, &retail); got != 0 {
		t.Errorf("off-type score = %v, want 0", got)
	}

	open := &Profile{}
	if got := typeMatchScore(open, &retail); got != 100 {
		t.Errorf("no preference score = %v, want 100", got)
	}
}

func TestOffTypePenalizedNotExcluded(t *testing.T) {
	p := &Profile{
		Strategy:       StrategyCashFlow,
		RiskTolerance:  RiskModerate,
		PreferredTypes: []property.Type{property.TypeMultifamily},
	}
	offType := stabilizedMultifamily()
	offType.ID = "office-1"
	offType.Type = property.TypeOffice

	recs := testEngine().Rank(p, []property.Record{offType}, 0)
	if len(recs) != 1 {
		t.Fatalf("off-type property was excluded from ranking")
	}
	if recs[0].Score >= 90 {
		t.Errorf("off-type property scored %v, expected the type gate to drag it down", recs[0].Score)
	}
}

func TestBudgetScore(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		min   float64
		max   float64
		want  float64
	}{
		{"no budget", 1_000_000, 0, 0, 70},
		{"under min", 300_000, 500_000, 2_000_000, 60},
		{"within", 1_000_000, 500_000, 2_000_000, 100},
		{"slightly over", 2_100_000, 500_000, 2_000_000, 50},
		{"well over", 2_400_000, 500_000, 2_000_000, 25},
		{"far over", 3_000_000, 500_000, 2_000_000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profile{BudgetMin: tt.min, BudgetMax: tt.max}
			r := property.Record{Listing: property.Listing{Price: tt.price}}
			if got := budgetScore(p, &r); got != tt.want {
				t.Errorf("budgetScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCriteriaScoreMissingFieldFails(t *testing.T) {
	p := &Profile{Criteria: Criteria{MinCapRate: fptr(6), MinOccupancy: fptr(80)}}

	// Meets the occupancy criterion but reports no cap rate: 1 of 2.
	r := property.Record{Listing: property.Listing{Occupancy: fptr(90)}}
	if got := criteriaScore(p, &r); got != 50 {
		t.Errorf("criteria score = %v, want 50", got)
	}

	none := &Profile{}
	if got := criteriaScore(none, &r); got != 100 {
		t.Errorf("no criteria score = %v, want 100", got)
	}
}

func TestLocationScore(t *testing.T) {
	r := property.Record{Address: property.Address{City: "Austin", State: "TX"}}

	tests := []struct {
		name    string
		profile Profile
		want    float64
	}{
		{"city match", Profile{PreferredCities: []string{"austin"}}, 100},
		{"state match", Profile{PreferredCities: []string{"Denver"}, PreferredStates: []string{"tx"}}, 70},
		{"no match", Profile{PreferredCities: []string{"Denver"}}, 30},
		{"no preference", Profile{}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := locationScore(&tt.profile, &r); got != tt.want {
				t.Errorf("locationScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarketScoreTiers(t *testing.T) {
	tests := []struct {
		dom  *int
		want float64
	}{
		{nil, 50},
		{iptr(10), 90},
		{iptr(45), 75},
		{iptr(75), 60},
		{iptr(100), 45},
		{iptr(200), 30},
	}
	for _, tt := range tests {
		r := property.Record{Market: property.MarketData{DaysOnMarket: tt.dom}}
		if got := marketScore(&r); got != tt.want {
			t.Errorf("marketScore(dom=%v) = %v, want %v", tt.dom, got, tt.want)
		}
	}
}

func TestConfidenceTiers(t *testing.T) {
	tests := []struct {
		score float64
		want  Confidence
	}{
		{95, ConfidenceHigh},
		{80.5, ConfidenceHigh},
		{80, ConfidenceMedium},
		{61, ConfidenceMedium},
		{60, ConfidenceLow},
		{10, ConfidenceLow},
	}
	for _, tt := range tests {
		if got := confidenceFor(tt.score); got != tt.want {
			t.Errorf("confidenceFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRankOrdersAndTruncates(t *testing.T) {
	p := &Profile{Strategy: StrategyCashFlow, RiskTolerance: RiskModerate}

	var records []property.Record
	for i, capRate := range []float64{3, 9, 6, 7, 5} {
		r := stabilizedMultifamily()
		r.ID = fmt.Sprintf("p%d", i)
		r.Listing.CapRate = fptr(capRate)
		records = append(records, r)
	}

	recs := testEngine().Rank(p, records, 3)
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("recommendations out of order at %d: %v then %v", i, recs[i-1].Score, recs[i].Score)
		}
	}
	if recs[0].Property.ID != "p1" {
		t.Errorf("top pick = %s, want the 9-cap property p1", recs[0].Property.ID)
	}
}

func TestRankStableForTies(t *testing.T) {
	p := &Profile{Strategy: StrategyCore, RiskTolerance: RiskModerate}

	a := stabilizedMultifamily()
	a.ID = "aaa"
	b := stabilizedMultifamily()
	b.ID = "bbb"

	recs := testEngine().Rank(p, []property.Record{b, a}, 0)
	if recs[0].Property.ID != "aaa" {
		t.Errorf("tied scores should order by ID, got %s first", recs[0].Property.ID)
	}
}

func TestRiskFactors(t *testing.T) {
	yb := 1970
	r := property.Record{
		Type: property.TypeOffice,
		Listing: property.Listing{
			Price:     3_000_000,
			Occupancy: fptr(55),
			YearBuilt: &yb,
		},
		Market:    property.MarketData{DaysOnMarket: iptr(150)},
		Synthetic: true,
	}
	p := &Profile{BudgetMax: 2_000_000}

	factors := riskFactors(p, &r, testClock())
	if len(factors) != 6 {
		t.Fatalf("got %d risk factors, want 6: %v", len(factors), factors)
	}
}

func TestOpportunityHighlights(t *testing.T) {
	r := property.Record{
		Type: property.TypeOffice,
		Listing: property.Listing{
			Price:     1_000_000,
			Sqft:      10_000,
			CapRate:   fptr(9),
			Occupancy: fptr(75),
		},
		Market: property.MarketData{DaysOnMarket: iptr(120)},
	}

	valueAdd := &Profile{Strategy: StrategyValueAdd}
	got := opportunityHighlights(valueAdd, &r)
	// High cap, sub-$150 psf, vacancy upside, and market exposure all apply.
	if len(got) != 4 {
		t.Fatalf("got %d highlights, want 4: %v", len(got), got)
	}

	core := &Profile{Strategy: StrategyCore}
	if len(opportunityHighlights(core, &r)) != 3 {
		t.Error("vacancy upside should only surface for repositioning strategies")
	}
}

func TestRegisterStrategy(t *testing.T) {
	e := testEngine()
	e.RegisterStrategy(Strategy("custom"), func(_ *property.Record, _ time.Time) float64 { return 100 })

	p := &Profile{Strategy: Strategy("custom"), RiskTolerance: RiskModerate}
	r := stabilizedMultifamily()
	rec := e.Score(p, &r)
	if rec.Score <= 0 {
		t.Error("registered strategy was not used")
	}
}

func TestUnknownStrategyNeutral(t *testing.T) {
	e := testEngine()
	r := stabilizedMultifamily()
	if got := e.strategyScore(Strategy("mystery"), &r, testClock()); got != 50 {
		t.Errorf("unknown strategy score = %v, want neutral 50", got)
	}
}
