package scoring

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/yourusername/hr-predictor/internal/factors"
)

// DefaultWeights favors contact quality and situational context over raw power
var DefaultWeights = map[string]float64{
	factors.RecentHRRate:     3.0,
	factors.SeasonHRRate:     2.5,
	factors.PitcherHRAllowed: 1.6,
	factors.BarrelPct:        1.6,
	factors.FlyBallRate:      0.8,
	factors.PullPct:          0.6,
	factors.HardHitPct:       0.8,
	factors.HRFBRatio:        1.0,

	factors.ContactQuality:   2.4,
	factors.ContextBonuses:   1.6,
	factors.BallparkFactor:   2.4,
	factors.WeatherFactor:    1.6,
	factors.PlatoonAdvantage: 1.6,

	factors.SLGFactor:        1.2,
	factors.ISOFactor:        1.2,
	factors.ExitVeloFactor:   1.0,
	factors.BarrelRateFactor: 0.8,
	factors.L15BarrelFactor:  0.6,
	factors.L15EVFactor:      0.6,
	factors.HRPctFactor:      1.0,

	factors.LaunchAngle:      0.6,
	factors.PitcherGBFBRatio: 0.6,
	factors.VsPitchType:      0.8,
	factors.PitcherWorkload:  0.6,
	factors.BatterVsPitcher:  0.6,
	factors.HomeAwaySplit:    0.6,
	factors.HotColdStreak:    0.8,
	factors.XISO:             1.0,
	factors.XWOBA:            0.8,
	factors.HardHitDistance:  0.6,
	factors.PitchSpecific:    0.6,
	factors.SprayAngle:       0.6,
	factors.ZoneContact:      0.6,
	factors.ParkSpecific:     0.8,
	factors.FormTrend:        0.6,
}

// WeightTable is a read-only factor name to weight mapping, built once per run
type WeightTable struct {
	weights map[string]float64
}

// NewWeightTable starts from DefaultWeights and applies overrides. Every
// override must name a known factor and carry a finite, non-negative weight.
// Names match case-insensitively since viper lowercases map keys.
func NewWeightTable(overrides map[string]float64) (*WeightTable, error) {
	weights := maps.Clone(DefaultWeights)

	known := make(map[string]string, len(factors.Bounds))
	for name := range factors.Bounds {
		known[strings.ToLower(name)] = name
	}

	var problems []string
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		w := overrides[key]
		name, ok := known[strings.ToLower(key)]
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown factor %q", key))
			continue
		}
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			problems = append(problems, fmt.Sprintf("factor %q has invalid weight %v", name, w))
			continue
		}
		weights[name] = w
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid weight table: %s", strings.Join(problems, "; "))
	}

	return &WeightTable{weights: weights}, nil
}

// Get returns the weight for a factor, 0 when the factor is unweighted
func (t *WeightTable) Get(name string) float64 {
	return t.weights[name]
}

// Names lists the weighted factors in alphabetical order
func (t *WeightTable) Names() []string {
	return slices.Sorted(maps.Keys(t.weights))
}

// Map returns a copy of the table
func (t *WeightTable) Map() map[string]float64 {
	return maps.Clone(t.weights)
}
