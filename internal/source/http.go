package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/evcraddock/propfinder/internal/property"
)

const userAgent = "propfinder/1.0"

// HTTPSource fetches listings from an HTTP JSON listing API that returns
// normalized property records.
type HTTPSource struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
	throttle   *rate.Limiter
}

// NewHTTPSource creates an HTTP listing source. The throttle smooths request
// bursts independently of the per-window budget enforced by the aggregator.
func NewHTTPSource(name, baseURL, apiKey string) (*HTTPSource, error) {
	if name == "" {
		return nil, fmt.Errorf("source name is required")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("source %s: base URL is required", name)
	}
	return &HTTPSource{
		name:       name,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		throttle:   rate.NewLimiter(rate.Limit(2), 1),
	}, nil
}

// Name implements Source.
func (s *HTTPSource) Name() string { return s.name }

// listingsResponse is the listing API search payload.
type listingsResponse struct {
	Listings []property.Record `json:"listings"`
}

// Search implements Source by querying GET /listings.
func (s *HTTPSource) Search(ctx context.Context, q Query) ([]property.Record, error) {
	params := url.Values{}
	if len(q.Cities) > 0 {
		params.Set("city", strings.Join(q.Cities, ","))
	}
	if len(q.States) > 0 {
		params.Set("state", strings.Join(q.States, ","))
	}
	if len(q.Types) > 0 {
		types := make([]string, len(q.Types))
		for i, t := range q.Types {
			types[i] = string(t)
		}
		params.Set("type", strings.Join(types, ","))
	}
	if q.MinPrice != nil {
		params.Set("min_price", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		params.Set("max_price", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.MinSqft != nil {
		params.Set("min_sqft", strconv.FormatFloat(*q.MinSqft, 'f', -1, 64))
	}
	if q.MaxSqft != nil {
		params.Set("max_sqft", strconv.FormatFloat(*q.MaxSqft, 'f', -1, 64))
	}
	if q.BoundingBox != nil {
		params.Set("bbox", fmt.Sprintf("%v,%v,%v,%v",
			q.BoundingBox.MinLat, q.BoundingBox.MinLng, q.BoundingBox.MaxLat, q.BoundingBox.MaxLng))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var result listingsResponse
	if err := s.get(ctx, "/listings", params, &result); err != nil {
		return nil, err
	}

	records := make([]property.Record, 0, len(result.Listings))
	for _, r := range result.Listings {
		if r.Source == "" {
			r.Source = s.name
		}
		if err := r.Validate(); err != nil {
			// Malformed upstream rows are dropped, not fatal.
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// MarketMetrics implements Source by querying GET /metrics.
func (s *HTTPSource) MarketMetrics(ctx context.Context, area string, pt property.Type) (*MarketMetrics, error) {
	params := url.Values{"area": {area}}
	if pt != "" {
		params.Set("type", string(pt))
	}

	var m MarketMetrics
	if err := s.get(ctx, "/metrics", params, &m); err != nil {
		return nil, err
	}
	if m.Area == "" {
		m.Area = area
	}
	return &m, nil
}

// get issues a GET request and decodes the JSON response into out.
func (s *HTTPSource) get(ctx context.Context, path string, params url.Values, out interface{}) (err error) {
	if err := s.throttle.Wait(ctx); err != nil {
		return fmt.Errorf("source %s: throttle: %w", s.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("source %s: creating request: %w", s.name, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("source %s: %w: %v", s.name, ErrUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("source %s: closing body: %w", s.name, closeErr)
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("source %s: upstream 429: %w", s.name, ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("source %s: unexpected status %d: %w", s.name, resp.StatusCode, ErrUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("source %s: decoding response: %w", s.name, err)
	}
	return nil
}
