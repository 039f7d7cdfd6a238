package models

// StatcastBatter is the advanced batted-ball profile of one batter
type StatcastBatter struct {
	Spray      SprayAngle  `json:"spray_angle"`
	Zone       ZoneContact `json:"zone_contact"`
	AvgEV      float64     `json:"avg_ev"`
	HardHitPct float64     `json:"hard_hit_pct"`
	BarrelPct  float64     `json:"barrel_pct"`
}

// StatcastPitcher is the location profile of one pitcher
type StatcastPitcher struct {
	ZoneProfile     map[string]float64 `json:"zone_profile"`
	PrimaryTendency string             `json:"primary_tendency"`
}

// Apply merges the profile into a stat line. Only reported (positive) rate
// values overwrite what the stat line already has.
func (s StatcastBatter) Apply(p *PlayerStats) {
	if s.Spray != (SprayAngle{}) {
		p.Spray = s.Spray
	}
	if s.Zone != (ZoneContact{}) {
		p.Zone = s.Zone
	}
	if s.AvgEV > 0 {
		p.ExitVelo = s.AvgEV
	}
	if s.HardHitPct > 0 {
		p.HardHitPct = s.HardHitPct
	}
	if s.BarrelPct > 0 {
		p.BarrelPct = s.BarrelPct
	}
}

// Apply merges the location profile into a pitcher's stat line
func (s StatcastPitcher) Apply(p *PitcherStats) {
	if len(s.ZoneProfile) > 0 {
		p.ZoneProfile = s.ZoneProfile
	}
	if s.PrimaryTendency != "" {
		p.PrimaryTendency = s.PrimaryTendency
	}
}
