// Package factors turns raw batter, pitcher, park and weather data into bounded
// scalar factors. Every function is total: missing, zero, negative or NaN
// inputs produce the neutral value (1.0 for multiplicative factors, 0 for raw rates).
package factors

import (
	"math"

	"github.com/yourusername/hr-predictor/internal/ballpark"
	"github.com/yourusername/hr-predictor/internal/models"
)

// Kind tells the scoring engine how a factor contributes
type Kind int

const (
	// Multiplicative factors are centred on 1.0 and contribute weight*(f-1)
	Multiplicative Kind = iota
	// RawRate factors are fractions in [0,1] and contribute weight*v
	RawRate
)

func (k Kind) String() string {
	if k == RawRate {
		return "raw_rate"
	}
	return "multiplicative"
}

// Factor names, shared with the weight table
const (
	RecentHRRate     = "recent_hr_rate"
	SeasonHRRate     = "season_hr_rate"
	PitcherHRAllowed = "pitcher_hr_allowed"
	BarrelPct        = "barrel_pct"
	FlyBallRate      = "fly_ball_rate"
	PullPct          = "pull_pct"
	HardHitPct       = "hard_hit_pct"
	HRFBRatio        = "hr_fb_ratio"

	ContactQuality   = "contact_quality"
	ContextBonuses   = "context_bonuses"
	BallparkFactor   = "ballpark_factor"
	WeatherFactor    = "weather_factor"
	PlatoonAdvantage = "platoon_advantage"

	SLGFactor        = "slg_factor"
	ISOFactor        = "iso_factor"
	ExitVeloFactor   = "exit_velo_factor"
	BarrelRateFactor = "barrel_rate_factor"
	L15BarrelFactor  = "l15_barrel_factor"
	L15EVFactor      = "l15_ev_factor"
	HRPctFactor      = "hr_pct_factor"

	LaunchAngle      = "launch_angle"
	PitcherGBFBRatio = "pitcher_gb_fb_ratio"
	VsPitchType      = "vs_pitch_type"
	PitcherWorkload  = "pitcher_workload"
	BatterVsPitcher  = "batter_vs_pitcher"
	HomeAwaySplit    = "home_away_split"
	HotColdStreak    = "hot_cold_streak"
	XISO             = "xISO"
	XWOBA            = "xwOBA"
	HardHitDistance  = "hard_hit_distance"
	PitchSpecific    = "pitch_specific"
	SprayAngle       = "spray_angle"
	ZoneContact      = "zone_contact"
	ParkSpecific     = "park_specific"
	FormTrend        = "form_trend"
)

// Factor is one computed signal
type Factor struct {
	Name  string
	Kind  Kind
	Value float64
}

// Range is the closed interval a factor is clamped to
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var unit = Range{0, 1}

// Bounds lists the clamp range of every factor Compute produces
var Bounds = map[string]Range{
	RecentHRRate:     unit,
	SeasonHRRate:     unit,
	PitcherHRAllowed: unit,
	BarrelPct:        unit,
	FlyBallRate:      unit,
	PullPct:          unit,
	HardHitPct:       unit,
	HRFBRatio:        unit,

	ContactQuality:   {1.0, 1.8},
	ContextBonuses:   {1.0, 1.5},
	BallparkFactor:   {0.5, 2.0},
	WeatherFactor:    {0.7, 1.5},
	PlatoonAdvantage: {0.9, 1.28},

	SLGFactor:        {0.8, 2.0},
	ISOFactor:        {0.9, 1.8},
	ExitVeloFactor:   {0.7, 1.5},
	BarrelRateFactor: {0.8, 1.6},
	L15BarrelFactor:  {0.9, 1.5},
	L15EVFactor:      {0.8, 1.4},
	HRPctFactor:      {0.9, 1.5},

	LaunchAngle:      {1.0, 2.0},
	PitcherGBFBRatio: {0.5, 1.5},
	VsPitchType:      {0.5, 1.5},
	PitcherWorkload:  {0.8, 1.5},
	BatterVsPitcher:  {0.5, 1.5},
	HomeAwaySplit:    {0.5, 1.5},
	HotColdStreak:    {0.5, 1.5},
	XISO:             {0.7, 2.0},
	XWOBA:            {0.7, 1.4},
	HardHitDistance:  {1.0, 1.4},
	PitchSpecific:    {0.8, 1.5},
	SprayAngle:       {1.0, 1.3},
	ZoneContact:      {1.0, 1.3},
	ParkSpecific:     {0.7, 1.7},
	FormTrend:        {0.8, 1.2},
}

// Input is everything known about one batter in one game
type Input struct {
	Season  models.PlayerStats
	Recent  models.PlayerStats
	Pitcher models.PitcherStats
	Park    models.Ballpark
	Weather models.WeatherSample
	IsHome  bool
	// Matchup is the batter-vs-pitcher history factor, 1.0 when unknown
	Matchup float64
}

// Compute evaluates every factor for one batter in a fixed order
func Compute(in Input) []Factor {
	s, r, p := in.Season, in.Recent, in.Pitcher

	seasonRate := Rate(s.HRPerPA)
	weather := Weather(in.Weather, in.Park.Orientation)
	parkFactor := Ballpark(in.Park.HRFactor)

	xiso := firstValid(r.XISO, s.XISO)
	xwoba := firstValid(r.XWOBA, s.XWOBA)

	mult := func(name string, v float64) Factor {
		return Factor{Name: name, Kind: Multiplicative, Value: v}
	}
	raw := func(name string, v float64) Factor {
		return Factor{Name: name, Kind: RawRate, Value: v}
	}

	return []Factor{
		raw(RecentHRRate, Rate(r.HRPerPA)),
		raw(SeasonHRRate, seasonRate),
		raw(PitcherHRAllowed, PitcherHRRate(p.HRPer9)),
		raw(BarrelPct, Rate(s.BarrelPct)),
		raw(FlyBallRate, Rate(s.FlyBallPct)),
		raw(PullPct, Rate(s.PullPct)),
		raw(HardHitPct, Rate(s.HardHitPct)),
		raw(HRFBRatio, Rate(s.HRFBRatio)),

		mult(ContactQuality, ContactQualityFactor(s.Avg, s.BBPerPA, s.KPerPA, s.PlayerType)),
		mult(ContextBonuses, ContextBonus(s.PlayerType, parkFactor, in.Weather.TempF, in.Weather.WindSpeed)),
		mult(BallparkFactor, parkFactor),
		mult(WeatherFactor, weather),
		mult(PlatoonAdvantage, Platoon(s.Bats, p.Throws, s.VsLHP, s.VsRHP)),

		mult(SLGFactor, SLG(s.SLG)),
		mult(ISOFactor, ISO(s.ISO)),
		mult(ExitVeloFactor, ExitVelo(s.ExitVelo)),
		mult(BarrelRateFactor, BarrelRate(s.BarrelPct)),
		mult(L15BarrelFactor, L15Barrel(r.BarrelPct, s.BarrelPct)),
		mult(L15EVFactor, L15ExitVelo(r.ExitVelo, s.ExitVelo)),
		mult(HRPctFactor, HRPct(seasonRate)),

		mult(LaunchAngle, LaunchAngleFactor(s.LaunchAngle)),
		mult(PitcherGBFBRatio, GroundFly(p.GBFBRatio)),
		mult(VsPitchType, PitchTypeMatchup(s, p)),
		mult(PitcherWorkload, Workload(p.RecentWorkload)),
		mult(BatterVsPitcher, clampOr(in.Matchup, Bounds[BatterVsPitcher])),
		mult(HomeAwaySplit, HomeAway(r.HomeFactor, r.RoadFactor, in.IsHome)),
		mult(HotColdStreak, Streak(r.HotColdStreak, r.StreakDuration)),
		mult(XISO, XISOFactor(xiso)),
		mult(XWOBA, XWOBAFactor(xwoba)),
		mult(HardHitDistance, HardHitDistanceFactor(s.HardHitDistance)),
		mult(PitchSpecific, PitchSpecificFactor(s.PitchSpecific.RateFor(p.PrimaryPitch()), seasonRate)),
		mult(SprayAngle, Spray(s.Spray, ballpark.PullFriendly(in.Park.Team, s.Bats))),
		mult(ZoneContact, Zone(s.Zone, p.ZoneTendency())),
		mult(ParkSpecific, ParkSpecificFactor(in.Park, s.Bats, s.XISO, s.FlyBallPct, s.PullPct, s.HardHitPct, s.BarrelPct)),
		mult(FormTrend, Form(s.FormTrend, s.AvgEVLast3)),
	}
}

// Values flattens factors into a name keyed map
func Values(fs []Factor) map[string]float64 {
	out := make(map[string]float64, len(fs))
	for _, f := range fs {
		out[f.Name] = f.Value
	}
	return out
}

// Rate sanitizes a fraction to [0,1]; invalid input is 0
func Rate(v float64) float64 {
	if !finite(v) || v <= 0 {
		return 0
	}
	return math.Min(v, 1)
}

// PitcherHRRate converts home runs allowed per nine innings to a per-PA style rate
func PitcherHRRate(hrPer9 float64) float64 {
	return Rate(hrPer9 / 9)
}

// Ballpark sanitizes a park home-run factor
func Ballpark(factor float64) float64 {
	return clampOr(factor, Bounds[BallparkFactor])
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// present reports whether an optional metric was reported
func present(v float64) bool {
	return finite(v) && v > 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// clampOr clamps a multiplicative input, treating missing values as neutral
func clampOr(v float64, r Range) float64 {
	if !present(v) {
		return 1.0
	}
	return clamp(v, r.Min, r.Max)
}

func firstValid(values ...float64) float64 {
	for _, v := range values {
		if present(v) {
			return v
		}
	}
	return 0
}
