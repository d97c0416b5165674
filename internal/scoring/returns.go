package scoring

import "github.com/evcraddock/propfinder/internal/property"

// ProjectedReturns are deterministic return estimates derived from cap rate
// and price.
type ProjectedReturns struct {
	EstimatedROI       float64 `json:"estimated_roi"`       // percent per year
	MonthlyCashFlow    float64 `json:"monthly_cash_flow"`   // dollars
	AnnualAppreciation float64 `json:"annual_appreciation"` // percent per year
	TotalReturn        float64 `json:"total_return"`        // percent over the holding period
}

// appreciationRates are baseline annual appreciation assumptions by property
// type, in percent.
var appreciationRates = map[property.Type]float64{
	property.TypeOffice:      3.5,
	property.TypeRetail:      2.5,
	property.TypeIndustrial:  3.0,
	property.TypeMultifamily: 4.0,
	property.TypeMixedUse:    3.5,
	property.TypeLand:        5.0,
}

// defaultAppreciation applies when the property type is unknown.
const defaultAppreciation = 3.0

// projectReturns estimates returns for a holding period of years.
func projectReturns(r *property.Record, years int) ProjectedReturns {
	appreciation, ok := appreciationRates[r.Type]
	if !ok {
		appreciation = defaultAppreciation
	}

	// Income yield from the reported NOI when present, otherwise from the
	// cap rate; zero when neither is known.
	var incomeYield float64
	switch {
	case r.Listing.NOI != nil && r.Listing.Price > 0:
		incomeYield = *r.Listing.NOI / r.Listing.Price * 100
	case r.Listing.CapRate != nil:
		incomeYield = *r.Listing.CapRate
	}

	var cashFlow float64
	if r.Listing.Price > 0 {
		cashFlow = r.Listing.Price * incomeYield / 100 / 12
	}

	roi := incomeYield + appreciation
	return ProjectedReturns{
		EstimatedROI:       roi,
		MonthlyCashFlow:    cashFlow,
		AnnualAppreciation: appreciation,
		TotalReturn:        roi * float64(years),
	}
}
