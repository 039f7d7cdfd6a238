// Package fallback produces reproducible stand-in values for data that could not be fetched.
//
// Every value is derived from xxhash64 (seed 0) over the UTF-8 bytes of the entity
// names, so the same names yield the same values on every run and platform.
package fallback

import (
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/yourusername/hr-predictor/internal/models"
)

// keySeparator joins multi-part keys so ("ab","c") and ("a","bc") differ
const keySeparator = "\x1f"

const (
	// noHistoryBelow is the share (out of 20) of matchups treated as having no history
	noHistoryBelow  = 3
	maxDeviation    = 0.5
	deviationPerPA  = 0.03
	minMatchup      = 0.5
	maxMatchup      = 1.5
	neutralMatchup  = 1.0
	baseTempF       = 70
	baseHumidity    = 45
	weatherSpread   = 20
	windSpeedSpread = 10
)

// Key returns the stable hash of one or more entity names
func Key(parts ...string) uint64 {
	return xxhash.Sum64String(strings.Join(parts, keySeparator))
}

// Matchup returns a batter-vs-pitcher factor in [0.5, 1.5].
// About 15% of pairs report no history and return exactly 1.0.
func Matchup(batter, pitcher string) float64 {
	combined := (Key(batter)%1000 + Key(pitcher)%1000) % 100
	pa := combined % 20
	if pa < noHistoryBelow {
		return neutralMatchup
	}

	hashFactor := float64(combined) / 100
	deviation := (hashFactor - 0.5) * math.Min(maxDeviation, float64(pa)*deviationPerPA) * 2
	return math.Max(minMatchup, math.Min(maxMatchup, neutralMatchup+deviation))
}

// Weather returns the stand-in forecast for a home team:
// 70-89°F, 45-64% humidity, 0-9 mph wind.
func Weather(homeTeam string) models.WeatherSample {
	h := Key(homeTeam) % 100
	return models.WeatherSample{
		TempF:     float64(baseTempF + h%weatherSpread),
		Humidity:  float64(baseHumidity + h%weatherSpread),
		WindSpeed: float64(h % windSpeedSpread),
		WindDeg:   math.Mod(float64(h)*3.6, 360),
		Source:    models.WeatherSourceFallback,
	}
}
