package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/evcraddock/propfinder/internal/property"
	"github.com/evcraddock/propfinder/internal/source"
)

// DefaultSourceTimeout bounds each upstream query. A slow source is dropped,
// not waited on.
const DefaultSourceTimeout = 7 * time.Second

// Aggregator fans a query out to every configured source concurrently and
// joins with all-settled semantics: one failing source is dropped from the
// result, never aborting the join.
type Aggregator struct {
	sources  []source.Source
	fallback source.Source
	limiter  *source.Limiter
	timeout  time.Duration
	log      *slog.Logger
}

// NewAggregator creates an aggregator over the given sources. fallback
// supplies synthetic records when every source fails; limiter enforces the
// per-source request budget.
func NewAggregator(sources []source.Source, fallback source.Source, limiter *source.Limiter, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}
	return &Aggregator{
		sources:  sources,
		fallback: fallback,
		limiter:  limiter,
		timeout:  timeout,
		log:      slog.Default().With("component", "aggregator"),
	}
}

// sourceResult is one settled branch of the fan-out.
type sourceResult struct {
	name    string
	records []property.Record
	err     error
}

// Search queries every source concurrently and merges the successes,
// deduplicating by record ID. When all sources fail it returns the fallback
// records together with ErrAllSourcesFailed; callers decide whether that is
// fatal.
func (a *Aggregator) Search(ctx context.Context, q source.Query) ([]property.Record, []string, error) {
	if len(a.sources) == 0 {
		return a.fallbackRecords(ctx, q)
	}

	results := make([]sourceResult, len(a.sources))
	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			results[i] = a.querySource(ctx, src, q)
		}(i, src)
	}
	wg.Wait()

	var merged []property.Record
	var used []string
	seen := make(map[string]bool)
	for _, res := range results {
		if res.err != nil {
			// Recovered locally: log and drop the source.
			a.log.Warn("source failed", "source", res.name, "error", res.err)
			continue
		}
		used = append(used, res.name)
		for _, r := range res.records {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			merged = append(merged, r)
		}
	}

	if len(used) == 0 {
		return a.fallbackRecords(ctx, q)
	}

	sort.Strings(used)
	return merged, used, nil
}

// querySource runs one branch: budget check, then the bounded upstream call.
func (a *Aggregator) querySource(ctx context.Context, src source.Source, q source.Query) sourceResult {
	name := src.Name()

	if a.limiter != nil {
		if err := a.limiter.Allow(name); err != nil {
			return sourceResult{name: name, err: err}
		}
	}

	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	records, err := src.Search(cctx, q)
	if err != nil {
		return sourceResult{name: name, err: err}
	}
	return sourceResult{name: name, records: records}
}

// fallbackRecords synthesizes approximate records after total source failure.
func (a *Aggregator) fallbackRecords(ctx context.Context, q source.Query) ([]property.Record, []string, error) {
	if a.fallback == nil {
		return nil, nil, ErrAllSourcesFailed
	}

	a.log.Warn("all sources failed, generating fallback records")
	records, err := a.fallback.Search(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("fallback generation: %v: %w", err, ErrAllSourcesFailed)
	}
	return records, []string{}, ErrAllSourcesFailed
}

// MarketMetrics queries every source for area statistics and averages the
// successes. Total failure falls back to the synthetic generator.
func (a *Aggregator) MarketMetrics(ctx context.Context, area string, pt property.Type) (*source.MarketMetrics, error) {
	type metricsResult struct {
		m   *source.MarketMetrics
		err error
	}

	results := make([]metricsResult, len(a.sources))
	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			if a.limiter != nil {
				if err := a.limiter.Allow(src.Name()); err != nil {
					results[i] = metricsResult{err: err}
					return
				}
			}
			cctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()
			m, err := src.MarketMetrics(cctx, area, pt)
			results[i] = metricsResult{m: m, err: err}
		}(i, src)
	}
	wg.Wait()

	merged := &source.MarketMetrics{Area: area, PropertyType: string(pt)}
	n := 0
	for _, res := range results {
		if res.err != nil || res.m == nil {
			continue
		}
		merged.MedianPrice += res.m.MedianPrice
		merged.MeanCapRate += res.m.MeanCapRate
		merged.MeanDOM += res.m.MeanDOM
		merged.ActiveListing += res.m.ActiveListing
		n++
	}
	if n == 0 {
		if a.fallback == nil {
			return nil, ErrAllSourcesFailed
		}
		return a.fallback.MarketMetrics(ctx, area, pt)
	}
	merged.MedianPrice /= float64(n)
	merged.MeanCapRate /= float64(n)
	merged.MeanDOM /= float64(n)
	return merged, nil
}
