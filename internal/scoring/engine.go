// Package scoring aggregates bounded factors into a home-run probability.
package scoring

import (
	"fmt"
	"math"

	"github.com/yourusername/hr-predictor/internal/config"
	"github.com/yourusername/hr-predictor/internal/factors"
)

// Engine turns a factor set into a probability. It holds no state besides its
// read-only weight table, so a single Engine can score a whole run.
type Engine struct {
	baseRate float64
	minProb  float64
	maxProb  float64
	weights  *WeightTable
}

// Score is the outcome of scoring one batter
type Score struct {
	// Contributions holds weight*(f-1) or weight*v per factor
	Contributions map[string]float64
	Adjustment    float64
	Probability   float64
}

// NewEngine builds an engine with an explicit base rate and clamp range
func NewEngine(baseRate, minProb, maxProb float64, weights *WeightTable) (*Engine, error) {
	if weights == nil {
		return nil, fmt.Errorf("weight table is required")
	}
	if !(minProb > 0 && minProb < maxProb && maxProb <= 1) {
		return nil, fmt.Errorf("invalid probability range [%v, %v]", minProb, maxProb)
	}
	if baseRate < minProb || baseRate > maxProb {
		return nil, fmt.Errorf("base rate %v outside [%v, %v]", baseRate, minProb, maxProb)
	}
	return &Engine{baseRate: baseRate, minProb: minProb, maxProb: maxProb, weights: weights}, nil
}

// NewEngineFromConfig builds the weight table and engine from the scoring section
func NewEngineFromConfig(cfg config.ScoringConfig) (*Engine, error) {
	weights, err := NewWeightTable(cfg.Weights)
	if err != nil {
		return nil, err
	}
	return NewEngine(cfg.BaseRate, cfg.MinProbability, cfg.MaxProbability, weights)
}

// Weights exposes the engine's weight table
func (e *Engine) Weights() *WeightTable {
	return e.weights
}

// BaseRate is the probability of a batter whose factors are all neutral
func (e *Engine) BaseRate() float64 {
	return e.baseRate
}

// Score combines factors into base_rate*(1+adjustment), clamped to the engine's range
func (e *Engine) Score(fs []factors.Factor) Score {
	contributions := make(map[string]float64, len(fs))
	var adj float64
	for _, f := range fs {
		c := e.contribution(f)
		contributions[f.Name] = c
		adj += c
	}
	if math.IsNaN(adj) {
		adj = 0
	}

	return Score{
		Contributions: contributions,
		Adjustment:    adj,
		Probability:   e.Clamp(e.baseRate * (1 + adj)),
	}
}

// Clamp bounds a probability to the engine's range
func (e *Engine) Clamp(p float64) float64 {
	if math.IsNaN(p) {
		return e.baseRate
	}
	return math.Max(e.minProb, math.Min(e.maxProb, p))
}

func (e *Engine) contribution(f factors.Factor) float64 {
	w := e.weights.Get(f.Name)
	if w == 0 || math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
		return 0
	}
	if f.Kind == factors.RawRate {
		return w * f.Value
	}
	return w * (f.Value - 1)
}
