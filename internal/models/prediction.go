package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is the scored home-run probability of one batter in one game.
// It is built once per scoring pass and never modified afterwards.
type Prediction struct {
	ID              uuid.UUID  `json:"id"`
	Player          string     `json:"player"`
	Team            string     `json:"team"`
	TeamName        string     `json:"team_name"`
	Opponent        string     `json:"opponent"`
	OpponentName    string     `json:"opponent_name"`
	OpponentPitcher string     `json:"opponent_pitcher"`
	GameID          string     `json:"game_id"`
	GameTime        time.Time  `json:"game_time"`
	IsHomeTeam      bool       `json:"is_home_team"`
	Ballpark        string     `json:"ballpark"`
	BallparkFactor  float64    `json:"ballpark_factor"`
	WeatherTemp     float64    `json:"weather_temp"`
	WeatherWind     float64    `json:"weather_wind"`
	WeatherFactor   float64    `json:"weather_factor"`
	Bats            Handedness `json:"bats"`
	Throws          Handedness `json:"throws"`
	PlatoonEdge     bool       `json:"platoon_advantage"`
	PrimaryPitch    string     `json:"primary_pitch"`
	FormTrend       FormTrend  `json:"form_trend"`

	// Factors holds every raw factor value that fed the probability, keyed by weight name
	Factors map[string]float64 `json:"factors"`
	// Adjustment is the weighted sum of all factor contributions
	Adjustment    float64 `json:"adjustment"`
	HRProbability float64 `json:"hr_probability"`
}

// PredictionID derives a stable identifier from the batter and game
func PredictionID(gameID, player string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(gameID+"/"+player))
}

// Factor returns a factor value, or the neutral 1.0 when it was not recorded
func (p *Prediction) Factor(name string) float64 {
	if v, ok := p.Factors[name]; ok {
		return v
	}
	return 1.0
}

// Tiers groups the top predictions into confidence bands
type Tiers struct {
	Locks    []Prediction `json:"locks"`
	HotPicks []Prediction `json:"hot_picks"`
	Sleepers []Prediction `json:"sleepers"`
}

// Len returns the number of predictions across all tiers
func (t Tiers) Len() int {
	return len(t.Locks) + len(t.HotPicks) + len(t.Sleepers)
}
