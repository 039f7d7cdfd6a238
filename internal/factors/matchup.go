package factors

import (
	"math"

	"github.com/yourusername/hr-predictor/internal/models"
)

// Platoon returns the handedness edge of a batter against a pitcher.
// Opposite-handed batters get 1.10-1.28 depending on their split against that
// side; same-handed matchups are penalised; anything unknown is neutral.
func Platoon(bats, throws models.Handedness, vsLHP, vsRHP float64) float64 {
	if !bats.IsKnown() || !throws.IsKnown() {
		return 1.0
	}
	if bats == models.HandSwitch {
		return 1.15
	}

	switch {
	case bats == models.HandRight && throws == models.HandLeft:
		if vsLHP > 1.1 {
			return 1.25
		}
		return 1.10
	case bats == models.HandLeft && throws == models.HandRight:
		if vsRHP > 1.1 {
			return 1.28
		}
		return 1.12
	case bats == models.HandLeft && throws == models.HandLeft:
		return 0.90
	case bats == models.HandRight && throws == models.HandRight:
		return 0.95
	default:
		return 1.0
	}
}

// PitchTypeMatchup weights the batter's pitch-family splits by the pitcher's
// mix. The mix is normalised so splits of 1.0 always give exactly 1.0.
func PitchTypeMatchup(b models.PlayerStats, p models.PitcherStats) float64 {
	mix := []float64{Rate(p.FastballPct), Rate(p.BreakingPct), Rate(p.OffspeedPct)}
	splits := []float64{
		orPresent(b.VsFastball, 1.0),
		orPresent(b.VsBreaking, 1.0),
		orPresent(b.VsOffspeed, 1.0),
	}

	var weighted, total float64
	for i := range mix {
		weighted += splits[i] * mix[i]
		total += mix[i]
	}
	if total == 0 {
		return 1.0
	}
	return clamp(weighted/total, 0.5, 1.5)
}

// Workload maps pitches thrown over the last seven days to a fatigue factor.
// Under 50 is well rested (down to 0.8), 50-100 is neutral, above 100 rises
// by 0.5% per pitch and saturates at 1.5 from 200 pitches on.
func Workload(pitches int) float64 {
	switch {
	case pitches < 0:
		return 1.0
	case pitches < 50:
		return math.Max(0.8, 1-float64(50-pitches)*0.004)
	case pitches <= 100:
		return 1.0
	default:
		return math.Min(1.5, 1+float64(pitches-100)*0.005)
	}
}

// GroundFly converts the pitcher's ground-ball to fly-ball ratio. A 1.0 ratio
// is neutral; fly-ball pitchers push toward 1.5, ground-ball pitchers toward 0.5.
func GroundFly(ratio float64) float64 {
	if !present(ratio) {
		return 1.0
	}
	return 1 + (1-math.Min(ratio, 2))/2
}

// HomeAway picks the home or road split, clamped to [0.5, 1.5]
func HomeAway(home, road float64, isHome bool) float64 {
	if isHome {
		return clampOr(home, Bounds[HomeAwaySplit])
	}
	return clampOr(road, Bounds[HomeAwaySplit])
}

// Streak scales a hot/cold streak by how long it has lasted: half effect for
// one or two games, three quarters for three or four, full from five on.
func Streak(streak float64, duration int) float64 {
	if !present(streak) {
		return 1.0
	}
	var weight float64
	switch {
	case duration <= 2:
		weight = 0.5
	case duration >= 5:
		weight = 1.0
	default:
		weight = 0.75
	}
	return clamp(1+(streak-1)*weight, 0.5, 1.5)
}

// PitchSpecificFactor compares the batter's home-run rate against the
// pitcher's primary pitch with their overall rate
func PitchSpecificFactor(pitchRate, seasonRate float64) float64 {
	if !present(pitchRate) || !present(seasonRate) {
		return 1.0
	}
	return clamp(pitchRate/seasonRate, 0.8, 1.5)
}
