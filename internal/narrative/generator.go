// Package narrative delegates report summarization to an external
// text-generation service. Callers must always keep a deterministic fallback;
// generation here is best-effort.
package narrative

import "context"

// Generator produces a natural-language paragraph from a prompt.
type Generator interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}
