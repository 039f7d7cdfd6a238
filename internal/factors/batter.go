package factors

import (
	"math"

	"github.com/yourusername/hr-predictor/internal/models"
)

// ContactQualityFactor rewards batting average, plate discipline and contact
// archetypes. Capped at 1.8.
func ContactQualityFactor(avg, bbPerPA, kPerPA float64, playerType models.PlayerType) float64 {
	score := 1.0

	switch {
	case avg >= 0.320:
		score += 0.4
	case avg >= 0.280:
		score += 0.3
	case avg >= 0.250:
		score += 0.1
	}

	if bb := Rate(bbPerPA); bb > 0 {
		discipline := bb / (Rate(kPerPA) + 0.01)
		switch {
		case discipline > 0.5:
			score += 0.2
		case discipline > 0.3:
			score += 0.1
		}
	}

	switch playerType {
	case models.PlayerContactElite:
		score += 0.3
	case models.PlayerContactGood:
		score += 0.2
	}

	return math.Min(1.8, score)
}

// ContextBonus gives contact hitters a lift in small or hot parks and power
// hitters a lift in wind. Capped at 1.5.
func ContextBonus(playerType models.PlayerType, parkFactor, tempF, windSpeed float64) float64 {
	bonus := 1.0
	switch {
	case playerType.IsContact():
		switch {
		case parkFactor > 1.08:
			bonus += 0.25
		case parkFactor > 1.03:
			bonus += 0.15
		}
		if tempF > 75 {
			bonus += 0.1
		}
	case playerType.IsPower():
		if windSpeed > 8 {
			bonus += 0.15
		}
	}
	return math.Min(1.5, bonus)
}

// SLG scales slugging percentage into [0.8, 2.0]
func SLG(slg float64) float64 {
	if !present(slg) {
		return 1.0
	}
	return clamp(0.8+slg*1.2, 0.8, 2.0)
}

// ISO scales isolated power into [0.9, 1.8]
func ISO(iso float64) float64 {
	if !present(iso) {
		return 1.0
	}
	return clamp(0.9+iso*1.8, 0.9, 1.8)
}

// ExitVelo scales season exit velocity into [0.7, 1.5]
func ExitVelo(ev float64) float64 {
	if !present(ev) {
		return 1.0
	}
	return clamp(0.7+(ev-85)*0.05, 0.7, 1.5)
}

// BarrelRate scales season barrel rate into [0.8, 1.6]
func BarrelRate(barrel float64) float64 {
	if !present(barrel) {
		return 1.0
	}
	return clamp(0.8+barrel*3.0, 0.8, 1.6)
}

// L15Barrel scales the recent barrel rate into [0.9, 1.5], using the season rate when recent is missing
func L15Barrel(recent, season float64) float64 {
	b := firstValid(recent, season)
	if b == 0 {
		return 1.0
	}
	return clamp(0.9+b*2.5, 0.9, 1.5)
}

// L15ExitVelo scales recent exit velocity into [0.8, 1.4], using the season value when recent is missing
func L15ExitVelo(recent, season float64) float64 {
	ev := firstValid(recent, season)
	if ev == 0 {
		return 1.0
	}
	return clamp(0.8+(ev-85)*0.04, 0.8, 1.4)
}

// HRPct scales home runs per plate appearance into [0.9, 1.5]
func HRPct(hrPerPA float64) float64 {
	if !present(hrPerPA) {
		return 1.0
	}
	return clamp(0.9+hrPerPA*6.0, 0.9, 1.5)
}

// LaunchAngleFactor peaks at 2.0 for a 30° average launch angle and is neutral outside 20-40°
func LaunchAngleFactor(angle float64) float64 {
	if !(angle >= 20 && angle <= 40) {
		return 1.0
	}
	diff := math.Min(math.Abs(angle-30), 10)
	return 1 + (1 - diff/10)
}

// HardHitDistanceFactor rewards long average hard-hit distance (feet)
func HardHitDistanceFactor(distance float64) float64 {
	switch {
	case distance > 380:
		return 1.4
	case distance > 350:
		return 1.2
	default:
		return 1.0
	}
}

// XISOFactor centres expected isolated power on the .150 league average
func XISOFactor(xiso float64) float64 {
	if !present(xiso) {
		return 1.0
	}
	return clamp(1+(xiso-0.150)*4, 0.7, 2.0)
}

// XWOBAFactor centres expected wOBA on the .320 league average
func XWOBAFactor(xwoba float64) float64 {
	if !present(xwoba) {
		return 1.0
	}
	return clamp(1+(xwoba-0.320)*2, 0.7, 1.4)
}

// Form maps the recent trend to [0.8, 1.2], sharpened by the last three games' exit velocity
func Form(trend models.FormTrend, avgEVLast3 float64) float64 {
	ev := 0.0
	if present(avgEVLast3) {
		ev = avgEVLast3
	}

	switch trend {
	case models.FormImproving:
		if ev > 92 {
			return 1.20
		}
		return 1.15
	case models.FormDeclining:
		if ev > 0 && ev < 87 {
			return 0.80
		}
		return 0.85
	default:
		switch {
		case ev > 90:
			return 1.05
		case ev > 0 && ev < 88:
			return 0.95
		}
		return 1.0
	}
}

// EstimateXWOBA approximates expected wOBA from contact quality. Result is in [0.200, 0.500].
func EstimateXWOBA(exitVelo, launchAngle, barrelPct, hardHitPct float64) float64 {
	const base = 0.320

	evAdj := (exitVelo - 87) * 0.002
	if exitVelo > 87 {
		evAdj = (exitVelo - 87) * 0.003
	}

	var laAdj float64
	switch {
	case launchAngle >= 10 && launchAngle <= 30:
		laAdj = 0.015 * (1 - math.Min(math.Abs(launchAngle-20), 10)/10)
	case launchAngle >= 0 && launchAngle < 10:
		laAdj = -0.020 + launchAngle*0.003
	case launchAngle > 30 && launchAngle <= 45:
		laAdj = 0.010 - (launchAngle-30)*0.003
	default:
		laAdj = -0.025
	}

	xwoba := base + evAdj + laAdj + Rate(barrelPct)*0.400 + Rate(hardHitPct)*0.150
	if !finite(xwoba) {
		return base
	}
	return clamp(xwoba, 0.200, 0.500)
}

// EstimateXISO approximates expected isolated power without penalising contact
// hitters. Missing inputs take league-average values. Result is in [0.080, 0.400].
func EstimateXISO(s models.PlayerStats) float64 {
	ev := orPresent(s.ExitVelo, 89)
	la := s.LaunchAngle
	if !finite(la) || la == 0 {
		la = 12
	}
	barrel := orPresent(s.BarrelPct, 0.06)
	hardHit := orPresent(s.HardHitPct, 0.35)
	pull := orPresent(s.PullPct, 0.40)
	hrfb := orPresent(s.HRFBRatio, 0.12)
	avg := orPresent(s.Avg, 0.250)

	var base float64
	switch s.PlayerType {
	case models.PlayerContactElite:
		base = 0.120
	case models.PlayerContactGood:
		base = 0.130
	case models.PlayerPowerPure:
		base = 0.200
	case models.PlayerPowerBalanced:
		base = 0.180
	default:
		base = 0.150
	}

	evAdj := (ev - 88) * 0.003
	if ev > 88 {
		evAdj = (ev - 88) * 0.004
	}

	var laAdj float64
	switch {
	case la >= 15 && la <= 35:
		laAdj = 0.030 * (1 - math.Min(math.Abs(la-25), 10)/10)
	case la >= 8 && la < 15:
		laAdj = -0.015 + la*0.003
	case la >= 0 && la < 8:
		laAdj = -0.030
	case la > 35 && la <= 50:
		laAdj = 0.015 - (la-35)*0.001
	default:
		laAdj = -0.040
	}

	pullAdj := 0.0
	if pull > 0.40 {
		pullAdj = (pull - 0.40) * 0.100
	}

	contactBonus := 0.0
	if s.PlayerType.IsContact() {
		switch {
		case avg >= 0.300:
			contactBonus = 0.020
		case avg >= 0.280:
			contactBonus = 0.010
		}
	}

	xiso := base + evAdj + laAdj + barrel*0.400 + hardHit*0.150 + pullAdj + hrfb*0.200 + contactBonus
	return clamp(xiso, 0.080, 0.400)
}

func orPresent(v, def float64) float64 {
	if present(v) {
		return v
	}
	return def
}
