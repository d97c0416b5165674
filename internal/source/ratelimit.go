package source

import (
	"fmt"
	"sync"
	"time"
)

// DefaultRequestsPerWindow is the per-source request budget for one window.
const DefaultRequestsPerWindow = 30

// Window is the sliding rate-limit window.
const Window = time.Minute

// Limiter enforces a sliding per-window request budget per source name.
// Exceeding the budget for one source never affects another.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	history map[string][]time.Time
}

// NewLimiter creates a limiter allowing limit requests per source per window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultRequestsPerWindow
	}
	if window <= 0 {
		window = Window
	}
	return &Limiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		history: make(map[string][]time.Time),
	}
}

// SetClock overrides the limiter's clock. Tests use this to pin time.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Allow records a request for the named source and returns ErrRateLimited if
// the source's budget for the current window is already spent.
func (l *Limiter) Allow(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	stamps := l.history[name]
	kept := stamps[:0]
	for _, s := range stamps {
		if s.After(cutoff) {
			kept = append(kept, s)
		}
	}

	if len(kept) >= l.limit {
		l.history[name] = kept
		return fmt.Errorf("source %s: %d requests in %s: %w", name, len(kept), l.window, ErrRateLimited)
	}

	l.history[name] = append(kept, now)
	return nil
}

// Remaining returns how many requests the named source has left in the
// current window.
func (l *Limiter) Remaining(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	used := 0
	for _, s := range l.history[name] {
		if s.After(cutoff) {
			used++
		}
	}
	if used >= l.limit {
		return 0
	}
	return l.limit - used
}
