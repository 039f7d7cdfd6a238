package factors

import (
	"github.com/yourusername/hr-predictor/internal/models"
)

// ParkSpecificFactor amplifies the park factor for high-xISO hitters and damps
// it for others, then applies the first matching park quirk. Result is in [0.7, 1.7].
func ParkSpecificFactor(park models.Ballpark, bats models.Handedness, xiso, flyBall, pull, hardHit, barrel float64) float64 {
	pf := Ballpark(park.HRFactor)

	f := 1 + (pf-1)*0.8
	if xiso > 0.180 {
		f = 1 + (pf-1)*1.2
	}

	feat := park.Features
	switch {
	case feat.Altitude:
		if flyBall > 0.40 {
			f *= 1.15
		} else {
			f *= 1.08
		}
	case feat.ShortPorch:
		if bats == models.HandLeft && pull > 0.45 {
			f *= 1.10
		}
	case feat.CrawfordBoxes:
		if bats == models.HandRight && pull > 0.45 {
			f *= 1.08
		}
	case feat.Bandbox:
		if hardHit > 0.40 {
			f *= 1.06
		}
	case feat.Dome || feat.Retractable:
		if barrel > 0.08 {
			f *= 1.04
		}
	}

	return clamp(f, 0.7, 1.7)
}

// Spray rewards pull hitters in pull-friendly parks and opposite-field hitters elsewhere
func Spray(s models.SprayAngle, pullFriendly bool) float64 {
	switch {
	case pullFriendly && s.PullPct > 0.45:
		return 1.3
	case !pullFriendly && s.OppoPct > 0.30:
		return 1.2
	default:
		return 1.0
	}
}

// Zone rewards batters who barrel the part of the zone the pitcher attacks
func Zone(z models.ZoneContact, tendency string) float64 {
	const strong = 0.15
	switch {
	case tendency == models.ZoneUp && z.UpBarrelPct > strong:
		return 1.3
	case tendency == models.ZoneDown && z.DownBarrelPct > strong:
		return 1.3
	case tendency == models.ZoneIn && z.InBarrelPct > strong:
		return 1.2
	case tendency == models.ZoneOut && z.OutBarrelPct > strong:
		return 1.2
	default:
		return 1.0
	}
}
