// Package source defines the upstream property-data source capability and its
// implementations: an HTTP listing API client, a sqlite-backed local store,
// and a deterministic synthetic fallback.
package source

import (
	"context"
	"errors"

	"github.com/evcraddock/propfinder/internal/property"
)

// Sentinel errors for upstream sources.
var (
	// ErrRateLimited means this source's request budget for the current
	// window is spent. It is scoped to one source; others are unaffected.
	ErrRateLimited = errors.New("source rate limit exceeded")

	// ErrUnavailable means the source could not be reached or answered
	// with an error. Recovered locally by the aggregator.
	ErrUnavailable = errors.New("source unavailable")
)

// Query is the subset of search criteria an upstream source can express.
// Predicates sources cannot express are applied downstream by the filter
// engine.
type Query struct {
	Cities      []string
	States      []string
	BoundingBox *Box
	Types       []property.Type
	MinPrice    *float64
	MaxPrice    *float64
	MinSqft     *float64
	MaxSqft     *float64
	Limit       int
}

// Box is a geographic bounding box.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// MarketMetrics are area-level statistics reported by a source.
type MarketMetrics struct {
	Area          string  `json:"area"`
	PropertyType  string  `json:"property_type,omitempty"`
	MedianPrice   float64 `json:"median_price"`
	MeanCapRate   float64 `json:"mean_cap_rate"`
	MeanDOM       float64 `json:"mean_days_on_market"`
	ActiveListing int     `json:"active_listings"`
}

// Source is an upstream property-data backend.
type Source interface {
	// Name identifies the source in provenance and rate-limit scoping.
	Name() string

	// Search returns normalized records matching the query.
	Search(ctx context.Context, q Query) ([]property.Record, error)

	// MarketMetrics returns area-level statistics for a locality.
	MarketMetrics(ctx context.Context, area string, pt property.Type) (*MarketMetrics, error)
}
