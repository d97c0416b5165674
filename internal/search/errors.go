package search

import "errors"

// Sentinel errors for the search pipeline. Per-source failures are recovered
// locally and never surfaced; these are the only errors a caller sees.
var (
	// ErrInvalidFilterRange means a numeric filter range has min > max.
	// Raised before any upstream call is issued.
	ErrInvalidFilterRange = errors.New("filter range minimum exceeds maximum")

	// ErrAllSourcesFailed means every upstream source failed or timed out.
	// The search still returns synthetic fallback records alongside it.
	ErrAllSourcesFailed = errors.New("all property sources failed")
)
