package factors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hr-predictor/internal/ballpark"
	"github.com/yourusername/hr-predictor/internal/models"
)

func neutralInput() Input {
	return Input{
		Season:  models.DefaultPlayerStats("Test Batter"),
		Recent:  models.DefaultPlayerStats("Test Batter"),
		Pitcher: models.DefaultPitcherStats(models.UnknownPitcher),
		Park:    models.Ballpark{Name: "Neutral Park", HRFactor: 1.0},
		Weather: models.NeutralWeather(),
		Matchup: 1.0,
	}
}

func fill(v float64, bats models.Handedness) Input {
	s := models.PlayerStats{
		HRPerPA: v, Avg: v, SLG: v, ISO: v, BBPerPA: v, KPerPA: v,
		PullPct: v, FlyBallPct: v, HardHitPct: v, BarrelPct: v, ExitVelo: v, LaunchAngle: v,
		HRFBRatio: v, HardHitDistance: v, Bats: bats, PlayerType: models.PlayerContactElite,
		VsFastball: v, VsBreaking: v, VsOffspeed: v, VsLHP: v, VsRHP: v,
		HomeFactor: v, RoadFactor: v, HotColdStreak: v, StreakDuration: toInt(v),
		XWOBA: v, XISO: v, FormTrend: models.FormImproving, AvgEVLast3: v,
		Spray:         models.SprayAngle{PullPct: v, OppoPct: v},
		Zone:          models.ZoneContact{UpBarrelPct: v, DownBarrelPct: v, InBarrelPct: v, OutBarrelPct: v},
		PitchSpecific: models.PitchSpecific{FastballHRRate: v, BreakingHRRate: v, OffspeedHRRate: v},
	}
	p := models.PitcherStats{
		HRPer9: v, FlyBallPct: v, GroundBallPct: v, HardPct: v, BarrelPct: v, ExitVelo: v,
		Throws: models.HandLeft, GBFBRatio: v, FastballPct: v, BreakingPct: v, OffspeedPct: v,
		RecentWorkload: toInt(v),
	}
	park := ballpark.ForTeam("COL")
	park.HRFactor = v
	park.Orientation = v
	return Input{
		Season:  s,
		Recent:  s,
		Pitcher: p,
		Park:    park,
		Weather: models.WeatherSample{TempF: v, Humidity: v, WindSpeed: v, WindDeg: v},
		IsHome:  v > 0,
		Matchup: v,
	}
}

func toInt(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(-1e6, math.Min(1e6, v)))
}

func TestComputeStaysWithinBounds(t *testing.T) {
	values := []float64{0, -1, -1e9, 1e-9, 0.05, 0.45, 1, 1.1, 25, 92, 250, 1e9, math.NaN(), math.Inf(1), math.Inf(-1)}
	hands := []models.Handedness{models.HandLeft, models.HandRight, models.HandSwitch, models.HandUnknown}

	for _, v := range values {
		for _, h := range hands {
			fs := Compute(fill(v, h))
			require.Len(t, fs, len(Bounds))
			for _, f := range fs {
				r, ok := Bounds[f.Name]
				require.True(t, ok, "no bounds for %s", f.Name)
				assert.False(t, math.IsNaN(f.Value), "%s is NaN for input %v", f.Name, v)
				assert.True(t, r.Contains(f.Value), "%s=%v outside [%v,%v] for input %v/%s", f.Name, f.Value, r.Min, r.Max, v, h)
			}
		}
	}
}

func TestComputeNeutralInput(t *testing.T) {
	for _, f := range Compute(neutralInput()) {
		t.Run(f.Name, func(t *testing.T) {
			if f.Kind == RawRate {
				assert.Equal(t, 0.0, f.Value)
				return
			}
			assert.Equal(t, 1.0, f.Value)
		})
	}
}

func TestComputeNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Compute(neutralInput()) {
		assert.False(t, seen[f.Name], f.Name)
		seen[f.Name] = true
	}
	assert.Len(t, Values(Compute(neutralInput())), len(Bounds))
}

func TestWeather(t *testing.T) {
	hou := ballpark.ForTeam("HOU")

	tests := []struct {
		name    string
		weather models.WeatherSample
		orient  float64
		want    float64
	}{
		{"neutral", models.NeutralWeather(), hou.Orientation, 1.0},
		{"missing sample", models.WeatherSample{}, hou.Orientation, 1.0},
		{"hot with strong tailwind saturates", models.WeatherSample{TempF: 95, Humidity: 50, WindSpeed: 18, WindDeg: 163}, 343, 1.5},
		{"light wind ignored", models.WeatherSample{TempF: 70, Humidity: 50, WindSpeed: 5, WindDeg: 163}, 343, 1.0},
		{"headwind", models.WeatherSample{TempF: 70, Humidity: 50, WindSpeed: 10, WindDeg: 343}, 343, 0.8},
		{"crosswind", models.WeatherSample{TempF: 70, Humidity: 50, WindSpeed: 20, WindDeg: 253}, 343, 1.0},
		{"cold and humid floors", models.WeatherSample{TempF: 40, Humidity: 90}, 0, 0.7},
		{"warm", models.WeatherSample{TempF: 80, Humidity: 50}, 0, 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Weather(tt.weather, tt.orient), 1e-9)
		})
	}
}

func TestWeatherScenarioAboveThreshold(t *testing.T) {
	w := models.WeatherSample{TempF: 95, Humidity: 50, WindSpeed: 18, WindDeg: 163}
	assert.Greater(t, Weather(w, ballpark.ForTeam("HOU").Orientation), 1.2)
}

func TestWind(t *testing.T) {
	assert.InDelta(t, 1.2, Wind(10, 180, 0), 1e-9)
	assert.InDelta(t, 1.5, Wind(40, 180, 0), 1e-9)
	assert.InDelta(t, 0.7, Wind(40, 0, 0), 1e-9)
	// bearings wrap around north
	assert.InDelta(t, 1.2, Wind(10, 350, 190), 1e-9)
}

func TestWorkload(t *testing.T) {
	tests := []struct {
		pitches int
		want    float64
	}{
		{-10, 1.0},
		{0, 0.8},
		{25, 0.9},
		{50, 1.0},
		{75, 1.0},
		{100, 1.0},
		{150, 1.25},
		{200, 1.5},
		{250, 1.5},
		{1000, 1.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Workload(tt.pitches), 1e-9, "pitches=%d", tt.pitches)
	}
	assert.Equal(t, 1.5, Workload(250))
}

func TestPlatoon(t *testing.T) {
	L, R, S, U := models.HandLeft, models.HandRight, models.HandSwitch, models.HandUnknown
	tests := []struct {
		name         string
		bats, throws models.Handedness
		vsLHP, vsRHP float64
		want         float64
	}{
		{"unknown batter", U, R, 1, 1, 1.0},
		{"unknown pitcher", L, U, 1, 1, 1.0},
		{"switch", S, L, 1, 1, 1.15},
		{"righty vs lefty", R, L, 1, 1, 1.10},
		{"righty crushes lefties", R, L, 1.2, 1, 1.25},
		{"lefty vs righty", L, R, 1, 1, 1.12},
		{"lefty crushes righties", L, R, 1, 1.2, 1.28},
		{"lefty vs lefty", L, L, 1, 1, 0.90},
		{"righty vs righty", R, R, 1, 1, 0.95},
		{"switch pitcher", R, S, 1, 1, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Platoon(tt.bats, tt.throws, tt.vsLHP, tt.vsRHP))
		})
	}
}

func TestContactAndContext(t *testing.T) {
	assert.Equal(t, 1.0, ContactQualityFactor(0, 0, 0, models.PlayerAverage))
	assert.InDelta(t, 1.8, ContactQualityFactor(0.330, 0.15, 0.10, models.PlayerContactElite), 1e-9)
	assert.InDelta(t, 1.4, ContactQualityFactor(0.285, 0.08, 0.22, models.PlayerAverage), 1e-9)

	assert.InDelta(t, 1.35, ContextBonus(models.PlayerContactGood, 1.10, 80, 0), 1e-9)
	assert.InDelta(t, 1.15, ContextBonus(models.PlayerContactGood, 1.05, 70, 0), 1e-9)
	assert.InDelta(t, 1.15, ContextBonus(models.PlayerPowerPure, 1.30, 95, 12), 1e-9)
	assert.Equal(t, 1.0, ContextBonus(models.PlayerAverage, 1.30, 95, 12))
}

func TestBattedBallFactors(t *testing.T) {
	assert.InDelta(t, 1.28, SLG(0.400), 1e-9)
	assert.Equal(t, 2.0, SLG(5))
	assert.InDelta(t, 1.26, ISO(0.200), 1e-9)
	assert.InDelta(t, 1.05, ExitVelo(92), 1e-9)
	assert.Equal(t, 0.7, ExitVelo(70))
	assert.InDelta(t, 1.1, BarrelRate(0.10), 1e-9)
	assert.InDelta(t, 1.15, L15Barrel(0, 0.10), 1e-9)
	assert.InDelta(t, 1.4, L15Barrel(0.20, 0.10), 1e-9)
	assert.InDelta(t, 1.08, L15ExitVelo(0, 92), 1e-9)
	assert.InDelta(t, 1.2, HRPct(0.05), 1e-9)
	assert.Equal(t, 2.0, LaunchAngleFactor(30))
	assert.InDelta(t, 1.5, LaunchAngleFactor(25), 1e-9)
	assert.Equal(t, 1.0, LaunchAngleFactor(12))
	assert.Equal(t, 1.4, HardHitDistanceFactor(390))
	assert.Equal(t, 1.2, HardHitDistanceFactor(360))
	assert.Equal(t, 1.0, HardHitDistanceFactor(300))
}

func TestExpectedMetricFactors(t *testing.T) {
	assert.InDelta(t, 1.2, XISOFactor(0.200), 1e-9)
	assert.Equal(t, 0.7, XISOFactor(0.01))
	assert.Equal(t, 2.0, XISOFactor(0.5))
	assert.InDelta(t, 1.1, XWOBAFactor(0.370), 1e-9)
	assert.Equal(t, 1.4, XWOBAFactor(0.9))

	xwoba := EstimateXWOBA(95, 20, 0.15, 0.50)
	assert.InDelta(t, 0.320+0.024+0.015+0.06+0.075, xwoba, 1e-9)
	assert.InDelta(t, 0.241, EstimateXWOBA(60, -30, 0, 0), 1e-9)
	assert.Equal(t, 0.2, EstimateXWOBA(0, -30, 0, 0))

	power := models.DefaultPlayerStats("Power Bat")
	power.PlayerType = models.PlayerPowerPure
	power.ExitVelo = 95
	power.LaunchAngle = 25
	power.BarrelPct = 0.20
	contact := models.DefaultPlayerStats("Contact Bat")
	contact.PlayerType = models.PlayerContactElite
	contact.ExitVelo = 86
	contact.LaunchAngle = 10
	contact.Avg = 0.320

	assert.Greater(t, EstimateXISO(power), EstimateXISO(contact))
	for _, s := range []models.PlayerStats{power, contact, models.DefaultPlayerStats("Nobody")} {
		x := EstimateXISO(s)
		assert.GreaterOrEqual(t, x, 0.080)
		assert.LessOrEqual(t, x, 0.400)
	}
}

func TestForm(t *testing.T) {
	tests := []struct {
		trend models.FormTrend
		ev    float64
		want  float64
	}{
		{models.FormImproving, 0, 1.15},
		{models.FormImproving, 93, 1.20},
		{models.FormDeclining, 0, 0.85},
		{models.FormDeclining, 85, 0.80},
		{models.FormStable, 0, 1.0},
		{models.FormStable, 91, 1.05},
		{models.FormStable, 86, 0.95},
		{"", 89, 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Form(tt.trend, tt.ev), "%s/%v", tt.trend, tt.ev)
	}
}

func TestMatchupFactors(t *testing.T) {
	assert.Equal(t, 1.0, PitchTypeMatchup(models.DefaultPlayerStats("A B"), models.DefaultPitcherStats("C D")))

	fastballHitter := models.DefaultPlayerStats("A B")
	fastballHitter.VsFastball = 1.4
	assert.InDelta(t, 1.24, PitchTypeMatchup(fastballHitter, models.DefaultPitcherStats("C D")), 1e-9)

	assert.Equal(t, 1.0, PitchTypeMatchup(fastballHitter, models.PitcherStats{}))

	assert.Equal(t, 1.0, GroundFly(1.0))
	assert.Equal(t, 1.0, GroundFly(0))
	assert.Equal(t, 0.5, GroundFly(3))
	assert.InDelta(t, 1.25, GroundFly(0.5), 1e-9)

	assert.Equal(t, 1.2, HomeAway(1.2, 0.9, true))
	assert.Equal(t, 0.9, HomeAway(1.2, 0.9, false))
	assert.Equal(t, 1.0, HomeAway(0, 0, true))

	assert.InDelta(t, 1.1, Streak(1.2, 1), 1e-9)
	assert.InDelta(t, 1.15, Streak(1.2, 3), 1e-9)
	assert.InDelta(t, 1.2, Streak(1.2, 6), 1e-9)
	assert.Equal(t, 1.0, Streak(0, 6))

	assert.InDelta(t, 1.5, PitchSpecificFactor(0.09, 0.05), 1e-9)
	assert.InDelta(t, 0.8, PitchSpecificFactor(0.01, 0.05), 1e-9)
	assert.Equal(t, 1.0, PitchSpecificFactor(0, 0.05))
}

func TestParkFactors(t *testing.T) {
	col := ballpark.ForTeam("COL")
	nyy := ballpark.ForTeam("NYY")
	hou := ballpark.ForTeam("HOU")
	neutral := models.Ballpark{HRFactor: 1.0}

	assert.Equal(t, 1.0, ParkSpecificFactor(neutral, models.HandRight, 0, 0, 0, 0, 0))
	assert.InDelta(t, (1+0.35*0.8)*1.08, ParkSpecificFactor(col, models.HandRight, 0, 0.30, 0, 0, 0), 1e-9)
	assert.InDelta(t, (1+0.35*1.2)*1.15, ParkSpecificFactor(col, models.HandRight, 0.200, 0.45, 0, 0, 0), 1e-9)
	assert.InDelta(t, (1+0.15*0.8)*1.10, ParkSpecificFactor(nyy, models.HandLeft, 0, 0, 0.50, 0, 0), 1e-9)
	assert.InDelta(t, 1+0.15*0.8, ParkSpecificFactor(nyy, models.HandRight, 0, 0, 0.50, 0, 0), 1e-9)
	assert.InDelta(t, 1+0.18*0.8, ParkSpecificFactor(hou, models.HandUnknown, 0, 0, 0, 0, 0), 1e-9)

	assert.Equal(t, 1.3, Spray(models.SprayAngle{PullPct: 0.5}, true))
	assert.Equal(t, 1.2, Spray(models.SprayAngle{OppoPct: 0.35}, false))
	assert.Equal(t, 1.0, Spray(models.SprayAngle{OppoPct: 0.35}, true))

	assert.Equal(t, 1.3, Zone(models.ZoneContact{UpBarrelPct: 0.2}, models.ZoneUp))
	assert.Equal(t, 1.2, Zone(models.ZoneContact{OutBarrelPct: 0.2}, models.ZoneOut))
	assert.Equal(t, 1.0, Zone(models.ZoneContact{UpBarrelPct: 0.2}, models.ZoneMixed))
}

func TestRawRates(t *testing.T) {
	assert.Equal(t, 0.0, Rate(-0.1))
	assert.Equal(t, 0.0, Rate(math.NaN()))
	assert.Equal(t, 1.0, Rate(3))
	assert.InDelta(t, 0.15, PitcherHRRate(1.35), 1e-9)
}
