package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/evcraddock/propfinder/internal/property"
	"github.com/evcraddock/propfinder/internal/source"
)

// Meta describes how a result was produced.
type Meta struct {
	Duration    time.Duration `json:"duration_ms"`
	SourcesUsed []string      `json:"sources_used"`
	CacheHit    bool          `json:"cache_hit"`
	Approximate bool          `json:"approximate"` // true when built from synthetic fallback data
	TotalCount  int           `json:"total_count"`
}

// Result is one complete search response.
type Result struct {
	Properties []property.Record `json:"properties"`
	Metrics    Metrics           `json:"metrics"`
	Summary    MarketSummary     `json:"summary"`
	Meta       Meta              `json:"meta"`
}

// Service runs the search pipeline: validate, consult the cache, fan out to
// sources, post-filter, and reduce to statistics. The cache is injected so
// hosts can share or scope it as they need.
type Service struct {
	cache      *Cache
	aggregator *Aggregator
	flight     singleflight.Group
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a search service.
func NewService(cache *Cache, aggregator *Aggregator) *Service {
	return &Service{
		cache:      cache,
		aggregator: aggregator,
		now:        time.Now,
		log:        slog.Default().With("component", "search"),
	}
}

// SetClock overrides the service clock for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Search executes a full property search. Identical filters issued within the
// TTL window return the cached result flagged cache-hit; concurrent misses on
// the same signature coalesce into one upstream fan-out.
func (s *Service) Search(ctx context.Context, f Filters) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	sig := f.Signature()

	if cached, ok := s.cache.Get(sig); ok {
		if res, ok := cached.(*Result); ok {
			s.log.Debug("cache hit", "signature", sig)
			hit := *res
			hit.Meta.CacheHit = true
			return &hit, nil
		}
	}

	v, err, _ := s.flight.Do(sig, func() (interface{}, error) {
		// Re-check under the flight so coalesced callers reuse a result
		// populated while they waited.
		if cached, ok := s.cache.Get(sig); ok {
			if res, ok := cached.(*Result); ok {
				hit := *res
				hit.Meta.CacheHit = true
				return &hit, nil
			}
		}
		return s.runSearch(ctx, f, sig)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// runSearch performs the uncached pipeline and populates the cache.
func (s *Service) runSearch(ctx context.Context, f Filters, sig string) (*Result, error) {
	start := s.now()

	records, used, err := s.aggregator.Search(ctx, buildQuery(&f))
	approximate := false
	if err != nil {
		if !errors.Is(err, ErrAllSourcesFailed) {
			return nil, fmt.Errorf("aggregating sources: %w", err)
		}
		// Total upstream failure degrades to flagged synthetic data so
		// consumers still have something to render.
		approximate = true
		if used == nil {
			used = []string{}
		}
	}

	filtered := ApplyFilters(records, &f)
	if f.Limit > 0 && len(filtered) > f.Limit {
		filtered = filtered[:f.Limit]
	}

	metrics := Aggregate(filtered)
	result := &Result{
		Properties: filtered,
		Metrics:    metrics,
		Summary:    Summarize(filtered, metrics),
		Meta: Meta{
			Duration:    s.now().Sub(start),
			SourcesUsed: used,
			Approximate: approximate,
			TotalCount:  len(filtered),
		},
	}

	// Approximate results are not cached: a later attempt may find the
	// sources healthy again.
	if !approximate {
		s.cache.Set(sig, ClassSearch, result)
	}
	s.log.Info("search complete",
		"results", len(filtered),
		"sources", used,
		"approximate", approximate,
		"duration", result.Meta.Duration)
	return result, nil
}

// MarketContext returns area-level market statistics, cached under the
// market-context data class.
func (s *Service) MarketContext(ctx context.Context, area string, pt property.Type) (*source.MarketMetrics, error) {
	key := fmt.Sprintf("market|%s|%s", area, pt)
	if cached, ok := s.cache.Get(key); ok {
		if m, ok := cached.(*source.MarketMetrics); ok {
			return m, nil
		}
	}

	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		m, err := s.aggregator.MarketMetrics(ctx, area, pt)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, ClassMarket, m)
		return m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("market context for %s: %w", area, err)
	}
	return v.(*source.MarketMetrics), nil
}

// AreaAnalysis is a derived per-city view: a city-scoped search reduced to
// its statistics and summary, cached under the long-lived area class.
type AreaAnalysis struct {
	City    string        `json:"city"`
	Metrics Metrics       `json:"metrics"`
	Summary MarketSummary `json:"summary"`
}

// AnalyzeArea builds (or returns the cached) analysis for one city.
func (s *Service) AnalyzeArea(ctx context.Context, city string) (*AreaAnalysis, error) {
	key := fmt.Sprintf("area|%s", city)
	if cached, ok := s.cache.Get(key); ok {
		if a, ok := cached.(*AreaAnalysis); ok {
			return a, nil
		}
	}

	res, err := s.Search(ctx, Filters{Location: &LocationFilter{Cities: []string{city}}})
	if err != nil {
		return nil, fmt.Errorf("area analysis for %s: %w", city, err)
	}

	analysis := &AreaAnalysis{City: city, Metrics: res.Metrics, Summary: res.Summary}
	s.cache.Set(key, ClassArea, analysis)
	return analysis, nil
}

// buildQuery projects filters onto the subset upstream sources understand.
func buildQuery(f *Filters) source.Query {
	q := source.Query{Types: f.Types, Limit: f.Limit}
	if f.Location != nil {
		q.Cities = f.Location.Cities
		q.States = f.Location.States
		if b := f.Location.BoundingBox; b != nil {
			q.BoundingBox = &source.Box{MinLat: b.MinLat, MaxLat: b.MaxLat, MinLng: b.MinLng, MaxLng: b.MaxLng}
		}
	}
	if f.Financial != nil {
		q.MinPrice = f.Financial.MinPrice
		q.MaxPrice = f.Financial.MaxPrice
	}
	if f.Physical != nil {
		q.MinSqft = f.Physical.MinSqft
		q.MaxSqft = f.Physical.MaxSqft
	}
	return q
}
