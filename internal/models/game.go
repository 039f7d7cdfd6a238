package models

import (
	"fmt"
	"time"
)

// DateLayout is the layout used for game dates and tracking keys
const DateLayout = "2006-01-02"

// ParkFeatures flags ballpark quirks that change how the park plays for some hitters
type ParkFeatures struct {
	Altitude      bool `json:"altitude"`
	ShortPorch    bool `json:"short_porch"`
	CrawfordBoxes bool `json:"crawford_boxes"`
	Bandbox       bool `json:"bandbox"`
	Dome          bool `json:"dome"`
	Retractable   bool `json:"retractable"`
}

// Ballpark describes a stadium's geometry and home-run environment
type Ballpark struct {
	Name      string  `json:"name"`
	Team      string  `json:"team"`
	Latitude  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"lon" validate:"gte=-180,lte=180"`
	// Orientation is the compass bearing from home plate to center field
	Orientation float64      `json:"orient" validate:"gte=0,lt=360"`
	HRFactor    float64      `json:"factor" validate:"gt=0"`
	Features    ParkFeatures `json:"special"`
}

// HasCoordinates reports whether the park location is known
func (b Ballpark) HasCoordinates() bool {
	return b.Latitude != 0 && b.Longitude != 0
}

// Game is one scheduled game
type Game struct {
	ID           string    `json:"game_id" validate:"required"`
	Date         string    `json:"date"`
	HomeTeam     string    `json:"home_team" validate:"required"`
	AwayTeam     string    `json:"away_team" validate:"required,nefield=HomeTeam"`
	HomeTeamName string    `json:"home_team_name"`
	AwayTeamName string    `json:"away_team_name"`
	Ballpark     Ballpark  `json:"ballpark"`
	GameTime     time.Time `json:"game_time"`
	Status       string    `json:"status"`
	MLBGameID    int       `json:"game_id_mlb"`
}

// GameID builds the deterministic identifier "{HOME}_{AWAY}_{YYYY-MM-DD}"
func GameID(homeTeam, awayTeam string, date time.Time) string {
	return fmt.Sprintf("%s_%s_%s", homeTeam, awayTeam, date.Format(DateLayout))
}

// Lineup is the batting order of both clubs in one game
type Lineup struct {
	Home []string `json:"home"`
	Away []string `json:"away"`
}

// ProbablePitchers names the expected starters of one game
type ProbablePitchers struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// UnknownPitcher is used when no probable starter has been announced
const UnknownPitcher = "Unknown"

// IsKnownPitcher reports whether a pitcher name refers to an announced starter
func IsKnownPitcher(name string) bool {
	return name != "" && name != UnknownPitcher && name != "TBD"
}

// WeatherSample is the forecast for one game
type WeatherSample struct {
	TempF     float64 `json:"temp"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"wind_speed"`
	WindDeg   float64 `json:"wind_deg"`
	Source    string  `json:"source,omitempty"`
}

// Weather sources
const (
	WeatherSourceAPI      = "openweather"
	WeatherSourceDome     = "dome"
	WeatherSourceFallback = "fallback"
)

// NeutralWeather returns conditions whose weather factor is exactly 1.0
func NeutralWeather() WeatherSample {
	return WeatherSample{TempF: 70, Humidity: 50}
}

// DomeWeather returns the controlled conditions used for closed stadiums
func DomeWeather() WeatherSample {
	return WeatherSample{TempF: 72, Humidity: 50, Source: WeatherSourceDome}
}

// IsZero reports whether no forecast values were filled in
func (w WeatherSample) IsZero() bool {
	return w.TempF == 0 && w.Humidity == 0 && w.WindSpeed == 0 && w.WindDeg == 0
}

// Playable game states; anything else has started or finished
var PlayableStatuses = []string{"Scheduled", "Pre-Game", "Warmup"}

// IsPlayable reports whether a game status means the game has not started
func IsPlayable(status string) bool {
	for _, s := range PlayableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Slate is one day's games with their lineups and probable pitchers, keyed by game ID
type Slate struct {
	Date     time.Time                   `json:"date"`
	Games    []Game                      `json:"games"`
	Lineups  map[string]Lineup           `json:"lineups"`
	Pitchers map[string]ProbablePitchers `json:"pitchers"`
}

// NewSlate returns an empty slate for a date
func NewSlate(date time.Time) *Slate {
	return &Slate{
		Date:     date,
		Lineups:  make(map[string]Lineup),
		Pitchers: make(map[string]ProbablePitchers),
	}
}

// Filter keeps only the listed games. An empty list keeps everything.
func (s *Slate) Filter(gameIDs []string) {
	if len(gameIDs) == 0 {
		return
	}
	keep := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		keep[id] = true
	}

	games := s.Games[:0]
	for _, g := range s.Games {
		if keep[g.ID] {
			games = append(games, g)
		}
	}
	s.Games = games

	for id := range s.Lineups {
		if !keep[id] {
			delete(s.Lineups, id)
		}
	}
	for id := range s.Pitchers {
		if !keep[id] {
			delete(s.Pitchers, id)
		}
	}
}
