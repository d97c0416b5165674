package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/evcraddock/propfinder/internal/scoring"
	"github.com/evcraddock/propfinder/internal/search"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// handleSearch runs a property search: POST /api/search with a Filters body.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var filters search.Filters
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.searcher.Search(r.Context(), filters)
	if err != nil {
		if errors.Is(err, search.ErrInvalidFilterRange) {
			apiError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("search failed", "error", err)
		apiError(w, "search failed", http.StatusInternalServerError)
		return
	}

	apiJSON(w, result, http.StatusOK)
}

// recommendRequest is the POST /api/recommendations body.
type recommendRequest struct {
	Profile scoring.Profile `json:"profile"`
}

// handleRecommendations generates a recommendation report.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := s.recommender.Generate(r.Context(), &req.Profile)
	if err != nil {
		if errors.Is(err, search.ErrInvalidFilterRange) {
			apiError(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Detail stays in the log; clients get the generic message.
		s.log.Error("recommendation generation failed", "error", err)
		apiError(w, "recommendation generation failed", http.StatusInternalServerError)
		return
	}

	apiJSON(w, report, http.StatusOK)
}

// handleArea returns the cached area analysis: GET /api/areas/{city}.
func (s *Server) handleArea(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	city := strings.TrimPrefix(r.URL.Path, "/api/areas/")
	if city == "" {
		apiError(w, "city is required", http.StatusBadRequest)
		return
	}

	analysis, err := s.searcher.AnalyzeArea(r.Context(), city)
	if err != nil {
		s.log.Error("area analysis failed", "city", city, "error", err)
		apiError(w, "area analysis failed", http.StatusInternalServerError)
		return
	}

	apiJSON(w, analysis, http.StatusOK)
}

// handleSources lists configured sources and their remaining budgets.
func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.sources == nil {
		apiJSON(w, []SourceInfo{}, http.StatusOK)
		return
	}
	apiJSON(w, s.sources(), http.StatusOK)
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
