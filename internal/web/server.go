// Package web provides the propfinder JSON API server.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/evcraddock/propfinder/internal/recommend"
	"github.com/evcraddock/propfinder/internal/scoring"
	"github.com/evcraddock/propfinder/internal/search"
)

// Searcher is the search capability the API exposes.
type Searcher interface {
	Search(ctx context.Context, f search.Filters) (*search.Result, error)
	AnalyzeArea(ctx context.Context, city string) (*search.AreaAnalysis, error)
}

// Recommender is the recommendation capability the API exposes.
type Recommender interface {
	Generate(ctx context.Context, profile *scoring.Profile) (*recommend.Report, error)
}

// SourceInfo describes one configured upstream source for the status
// endpoint.
type SourceInfo struct {
	Name      string `json:"name"`
	Remaining int    `json:"budget_remaining"`
}

// Server is the JSON API HTTP server.
type Server struct {
	searcher    Searcher
	recommender Recommender
	sources     func() []SourceInfo
	mux         *http.ServeMux
	log         *slog.Logger
}

// NewServer creates an API server. sources supplies status data and may be
// nil.
func NewServer(searcher Searcher, recommender Recommender, sources func() []SourceInfo) *Server {
	s := &Server{
		searcher:    searcher,
		recommender: recommender,
		sources:     sources,
		mux:         http.NewServeMux(),
		log:         slog.Default().With("component", "web"),
	}

	s.mux.HandleFunc("/api/search", s.handleSearch)
	s.mux.HandleFunc("/api/recommendations", s.handleRecommendations)
	s.mux.HandleFunc("/api/areas/", s.handleArea)
	s.mux.HandleFunc("/api/sources", s.handleSources)
	s.mux.HandleFunc("/api/health", s.handleHealth)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info("starting API server", "addr", addr)
	return http.ListenAndServe(addr, s)
}
