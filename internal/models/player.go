package models

import "strings"

// Handedness is the side a batter hits from or a pitcher throws with
type Handedness string

const (
	HandLeft    Handedness = "L"
	HandRight   Handedness = "R"
	HandSwitch  Handedness = "S"
	HandUnknown Handedness = "Unknown"
)

// ParseHandedness converts provider values such as "L", "Left" or "B" into a Handedness
func ParseHandedness(value string) Handedness {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "L", "LEFT":
		return HandLeft
	case "R", "RIGHT":
		return HandRight
	case "S", "B", "SWITCH", "BOTH":
		return HandSwitch
	default:
		return HandUnknown
	}
}

// IsKnown reports whether the handedness carries information
func (h Handedness) IsKnown() bool {
	return h == HandLeft || h == HandRight || h == HandSwitch
}

// FormTrend is the direction of a batter's recent batted-ball quality
type FormTrend string

const (
	FormImproving FormTrend = "improving"
	FormDeclining FormTrend = "declining"
	FormStable    FormTrend = "stable"
)

// PlayerType is the hitter archetype used by the contact and context bonuses
type PlayerType string

const (
	PlayerContactElite  PlayerType = "contact_elite"
	PlayerContactGood   PlayerType = "contact_good"
	PlayerPowerPure     PlayerType = "power_pure"
	PlayerPowerBalanced PlayerType = "power_balanced"
	PlayerAverage       PlayerType = "average"
)

// IsContact reports whether the archetype is a contact hitter
func (p PlayerType) IsContact() bool {
	return strings.HasPrefix(string(p), "contact")
}

// IsPower reports whether the archetype is a power hitter
func (p PlayerType) IsPower() bool {
	return strings.HasPrefix(string(p), "power")
}

// SprayAngle holds a batter's batted-ball direction split
type SprayAngle struct {
	PullPct   float64 `json:"pull_pct"`
	CenterPct float64 `json:"center_pct"`
	OppoPct   float64 `json:"oppo_pct"`
	PullSLG   float64 `json:"pull_slg"`
	CenterSLG float64 `json:"center_slg"`
	OppoSLG   float64 `json:"oppo_slg"`
}

// ZoneContact holds barrel rates by pitch location
type ZoneContact struct {
	UpBarrelPct     float64 `json:"up_barrel_pct"`
	MiddleBarrelPct float64 `json:"middle_barrel_pct"`
	DownBarrelPct   float64 `json:"down_barrel_pct"`
	InBarrelPct     float64 `json:"in_barrel_pct"`
	OutBarrelPct    float64 `json:"out_barrel_pct"`
}

// PitchSpecific holds a batter's home-run rate against each pitch family
type PitchSpecific struct {
	FastballHRRate float64 `json:"fastball_hr_rate"`
	BreakingHRRate float64 `json:"breaking_hr_rate"`
	OffspeedHRRate float64 `json:"offspeed_hr_rate"`
}

// RateFor returns the home-run rate against the given pitch family
func (p PitchSpecific) RateFor(pitch string) float64 {
	switch pitch {
	case PitchFastball:
		return p.FastballHRRate
	case PitchBreaking:
		return p.BreakingHRRate
	case PitchOffspeed:
		return p.OffspeedHRRate
	default:
		return 0
	}
}

// Pitch families
const (
	PitchFastball = "fastball"
	PitchBreaking = "breaking"
	PitchOffspeed = "offspeed"
)

// PlayerStats is one batter's stat line for a single window (season or recent).
// Rate fields are fractions in [0,1]; ExitVelo is mph and LaunchAngle degrees.
// A zero in an optional metric means the source did not report it.
type PlayerStats struct {
	Name             string  `json:"name"`
	Games            int     `json:"games"`
	AtBats           int     `json:"ab"`
	PlateAppearances int     `json:"pa"`
	HomeRuns         int     `json:"hr"`
	HRPerPA          float64 `json:"hr_per_pa"`
	HRPerGame        float64 `json:"hr_per_game"`

	Avg     float64 `json:"avg"`
	SLG     float64 `json:"slg"`
	ISO     float64 `json:"iso"`
	BBPerPA float64 `json:"bb_per_pa"`
	KPerPA  float64 `json:"k_per_pa"`

	PullPct         float64 `json:"pull_pct"`
	FlyBallPct      float64 `json:"fb_pct"`
	HardHitPct      float64 `json:"hard_hit_pct"`
	BarrelPct       float64 `json:"barrel_pct"`
	ExitVelo        float64 `json:"exit_velo"`
	LaunchAngle     float64 `json:"launch_angle"`
	HRFBRatio       float64 `json:"hr_fb_ratio"`
	HardHitDistance float64 `json:"hard_hit_distance"`

	Bats       Handedness `json:"bats"`
	PlayerType PlayerType `json:"player_type"`

	VsFastball float64 `json:"vs_fastball"`
	VsBreaking float64 `json:"vs_breaking"`
	VsOffspeed float64 `json:"vs_offspeed"`
	VsLHP      float64 `json:"vs_lhp"`
	VsRHP      float64 `json:"vs_rhp"`
	HomeFactor float64 `json:"home_factor"`
	RoadFactor float64 `json:"road_factor"`

	HotColdStreak  float64 `json:"hot_cold_streak"`
	StreakDuration int     `json:"streak_duration"`

	XWOBA      float64   `json:"xwoba"`
	XISO       float64   `json:"xiso"`
	FormTrend  FormTrend `json:"form_trend"`
	AvgEVLast3 float64   `json:"avg_ev_last_3"`

	Spray         SprayAngle    `json:"spray_angle"`
	Zone          ZoneContact   `json:"zone_contact"`
	PitchSpecific PitchSpecific `json:"pitch_specific"`

	Simulated bool `json:"is_simulated"`

	// BatterHistory caches matchup factors keyed by opposing pitcher name
	BatterHistory map[string]float64 `json:"batter_history,omitempty"`
}

// DefaultPlayerStats returns a record populated with the neutral value of every field
func DefaultPlayerStats(name string) PlayerStats {
	return PlayerStats{
		Name:          name,
		Bats:          HandUnknown,
		PlayerType:    PlayerAverage,
		VsFastball:    1.0,
		VsBreaking:    1.0,
		VsOffspeed:    1.0,
		VsLHP:         1.0,
		VsRHP:         1.0,
		HomeFactor:    1.0,
		RoadFactor:    1.0,
		HotColdStreak: 1.0,
		FormTrend:     FormStable,
		BatterHistory: make(map[string]float64),
	}
}

// PitcherStats is one pitcher's stat line
type PitcherStats struct {
	Name           string     `json:"name"`
	Games          int        `json:"games"`
	InningsPitched float64    `json:"ip"`
	HomeRuns       int        `json:"hr"`
	HRPer9         float64    `json:"hr_per_9"`
	FlyBallPct     float64    `json:"fb_pct"`
	GroundBallPct  float64    `json:"gb_pct"`
	HardPct        float64    `json:"hard_pct"`
	BarrelPct      float64    `json:"barrel_pct"`
	ExitVelo       float64    `json:"exit_velo"`
	Throws         Handedness `json:"throws"`
	GBFBRatio      float64    `json:"gb_fb_ratio"`
	FastballPct    float64    `json:"fastball_pct"`
	BreakingPct    float64    `json:"breaking_pct"`
	OffspeedPct    float64    `json:"offspeed_pct"`
	// RecentWorkload is pitches thrown over the last seven days
	RecentWorkload  int                `json:"recent_workload"`
	ZoneProfile     map[string]float64 `json:"zone_profile,omitempty"`
	PrimaryTendency string             `json:"primary_tendency,omitempty"`
}

// DefaultPitcherStats returns a league-average pitcher whose factors are all neutral
func DefaultPitcherStats(name string) PitcherStats {
	return PitcherStats{
		Name:           name,
		FlyBallPct:     0.35,
		GroundBallPct:  0.45,
		HardPct:        0.30,
		BarrelPct:      0.05,
		ExitVelo:       88,
		Throws:         HandUnknown,
		GBFBRatio:      1.0,
		FastballPct:    0.60,
		BreakingPct:    0.25,
		OffspeedPct:    0.15,
		RecentWorkload: 75,
	}
}

// PrimaryPitch returns the pitch family the pitcher throws most often
func (p PitcherStats) PrimaryPitch() string {
	switch {
	case p.FastballPct >= p.BreakingPct && p.FastballPct >= p.OffspeedPct:
		return PitchFastball
	case p.BreakingPct >= p.FastballPct && p.BreakingPct >= p.OffspeedPct:
		return PitchBreaking
	default:
		return PitchOffspeed
	}
}

// Zone tendencies
const (
	ZoneUp    = "up"
	ZoneDown  = "down"
	ZoneIn    = "in"
	ZoneOut   = "out"
	ZoneMixed = "mixed"
)

// ZoneTendency estimates where the pitcher locates, preferring Statcast data when present
func (p PitcherStats) ZoneTendency() string {
	if p.PrimaryTendency != "" {
		return p.PrimaryTendency
	}
	switch {
	case p.FlyBallPct > 0.40:
		return ZoneUp
	case p.GroundBallPct > 0.50:
		return ZoneDown
	case p.Throws == HandLeft:
		return ZoneOut
	default:
		return ZoneMixed
	}
}
