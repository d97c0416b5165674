package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights is the factor weight table. Values are percentage points; the
// composite score divides by the total, so alternative tables need not sum
// to 100.
type Weights struct {
	Strategy  float64 `yaml:"strategy" json:"strategy"`
	Risk      float64 `yaml:"risk" json:"risk"`
	Budget    float64 `yaml:"budget" json:"budget"`
	TypeMatch float64 `yaml:"type_match" json:"type_match"`
	Criteria  float64 `yaml:"criteria" json:"criteria"`
	Location  float64 `yaml:"location" json:"location"`
	Market    float64 `yaml:"market" json:"market"`
}

// DefaultWeights is the hand-tuned production table. The constants are kept
// exactly as tuned; changes go through product review, not code cleanup.
func DefaultWeights() Weights {
	return Weights{
		Strategy:  25,
		Risk:      20,
		Budget:    15,
		TypeMatch: 15,
		Criteria:  10,
		Location:  10,
		Market:    5,
	}
}

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	return w.Strategy + w.Risk + w.Budget + w.TypeMatch + w.Criteria + w.Location + w.Market
}

// Validate rejects tables that cannot produce a score.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"strategy": w.Strategy, "risk": w.Risk, "budget": w.Budget,
		"type_match": w.TypeMatch, "criteria": w.Criteria,
		"location": w.Location, "market": w.Market,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative", name)
		}
	}
	if w.Total() <= 0 {
		return fmt.Errorf("weight table sums to zero")
	}
	return nil
}

// LoadWeights reads an alternative weight table from a YAML file.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("reading weights: %w", err)
	}

	w := DefaultWeights()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parsing weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Weights{}, fmt.Errorf("weights file %s: %w", path, err)
	}
	return w, nil
}
