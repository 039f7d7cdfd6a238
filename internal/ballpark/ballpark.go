// Package ballpark holds the static stadium table and team-name lookups.
package ballpark

import (
	"sort"
	"strings"

	"github.com/yourusername/hr-predictor/internal/models"
)

var parks = map[string]models.Ballpark{
	"NYY": {Name: "Yankee Stadium", Latitude: 40.8296, Longitude: -73.9262, HRFactor: 1.15, Orientation: 75, Features: models.ParkFeatures{ShortPorch: true}},
	"BOS": {Name: "Fenway Park", Latitude: 42.3467, Longitude: -71.0972, HRFactor: 1.03, Orientation: 45},
	"TOR": {Name: "Rogers Centre", Latitude: 43.6418, Longitude: -79.3891, HRFactor: 1.02, Orientation: 345, Features: models.ParkFeatures{Retractable: true}},
	"BAL": {Name: "Oriole Park at Camden Yards", Latitude: 39.2838, Longitude: -76.6215, HRFactor: 1.02, Orientation: 31},
	"TB":  {Name: "Tropicana Field", Latitude: 27.7682, Longitude: -82.6534, HRFactor: 0.95, Orientation: 359, Features: models.ParkFeatures{Dome: true}},
	"CLE": {Name: "Progressive Field", Latitude: 41.4962, Longitude: -81.6852, HRFactor: 0.98, Orientation: 0},
	"DET": {Name: "Comerica Park", Latitude: 42.3390, Longitude: -83.0485, HRFactor: 0.92, Orientation: 150},
	"CWS": {Name: "Guaranteed Rate Field", Latitude: 41.8299, Longitude: -87.6338, HRFactor: 1.12, Orientation: 127},
	"KC":  {Name: "Kauffman Stadium", Latitude: 39.0517, Longitude: -94.4803, HRFactor: 0.85, Orientation: 46},
	"MIN": {Name: "Target Field", Latitude: 44.9817, Longitude: -93.2776, HRFactor: 1.01, Orientation: 129},
	"HOU": {Name: "Minute Maid Park", Latitude: 29.7572, Longitude: -95.3556, HRFactor: 1.18, Orientation: 343, Features: models.ParkFeatures{CrawfordBoxes: true}},
	"LAA": {Name: "Angel Stadium", Latitude: 33.8003, Longitude: -117.8827, HRFactor: 1.05, Orientation: 44},
	"OAK": {Name: "Oakland Coliseum", Latitude: 37.7516, Longitude: -122.2005, HRFactor: 0.90, Orientation: 55},
	"SEA": {Name: "T-Mobile Park", Latitude: 47.5914, Longitude: -122.3325, HRFactor: 0.94, Orientation: 49, Features: models.ParkFeatures{Retractable: true}},
	"TEX": {Name: "Globe Life Field", Latitude: 32.7473, Longitude: -97.0832, HRFactor: 1.00, Orientation: 30, Features: models.ParkFeatures{Retractable: true}},
	"ATL": {Name: "Truist Park", Latitude: 33.8907, Longitude: -84.4676, HRFactor: 1.05, Orientation: 145},
	"MIA": {Name: "loanDepot Park", Latitude: 25.7784, Longitude: -80.2197, HRFactor: 0.87, Orientation: 128, Features: models.ParkFeatures{Retractable: true}},
	"NYM": {Name: "Citi Field", Latitude: 40.7571, Longitude: -73.8458, HRFactor: 0.97, Orientation: 13},
	"PHI": {Name: "Citizens Bank Park", Latitude: 39.9058, Longitude: -75.1666, HRFactor: 1.10, Orientation: 9},
	"WSH": {Name: "Nationals Park", Latitude: 38.8730, Longitude: -77.0074, HRFactor: 1.02, Orientation: 28},
	"CHC": {Name: "Wrigley Field", Latitude: 41.9483, Longitude: -87.6555, HRFactor: 1.08, Orientation: 37},
	"CIN": {Name: "Great American Ball Park", Latitude: 39.0970, Longitude: -84.5066, HRFactor: 1.18, Orientation: 122, Features: models.ParkFeatures{Bandbox: true}},
	"MIL": {Name: "American Family Field", Latitude: 43.0280, Longitude: -87.9712, HRFactor: 1.08, Orientation: 129, Features: models.ParkFeatures{Retractable: true}},
	"PIT": {Name: "PNC Park", Latitude: 40.4468, Longitude: -80.0061, HRFactor: 0.93, Orientation: 116},
	"STL": {Name: "Busch Stadium", Latitude: 38.6226, Longitude: -90.1928, HRFactor: 0.95, Orientation: 62},
	"ARI": {Name: "Chase Field", Latitude: 33.4452, Longitude: -112.0667, HRFactor: 1.04, Orientation: 0, Features: models.ParkFeatures{Retractable: true}},
	"COL": {Name: "Coors Field", Latitude: 39.7561, Longitude: -104.9941, HRFactor: 1.35, Orientation: 4, Features: models.ParkFeatures{Altitude: true}},
	"LAD": {Name: "Dodger Stadium", Latitude: 34.0739, Longitude: -118.2400, HRFactor: 0.98, Orientation: 26},
	"SD":  {Name: "Petco Park", Latitude: 32.7076, Longitude: -117.1569, HRFactor: 0.94, Orientation: 0},
	"SF":  {Name: "Oracle Park", Latitude: 37.7786, Longitude: -122.3893, HRFactor: 0.90, Orientation: 85},
}

// teamNames is ordered so partial matches resolve the same way on every run.
var teamNames = []struct {
	name string
	code string
}{
	{"Angels", "LAA"}, {"Astros", "HOU"}, {"Athletics", "OAK"}, {"Blue Jays", "TOR"},
	{"Braves", "ATL"}, {"Brewers", "MIL"}, {"Cardinals", "STL"}, {"Cubs", "CHC"},
	{"D-backs", "ARI"}, {"Diamondbacks", "ARI"}, {"Dodgers", "LAD"}, {"Giants", "SF"},
	{"Guardians", "CLE"}, {"Indians", "CLE"}, {"Mariners", "SEA"}, {"Marlins", "MIA"},
	{"Mets", "NYM"}, {"Nationals", "WSH"}, {"Orioles", "BAL"}, {"Padres", "SD"},
	{"Phillies", "PHI"}, {"Pirates", "PIT"}, {"Rangers", "TEX"}, {"Rays", "TB"},
	{"Red Sox", "BOS"}, {"Reds", "CIN"}, {"Rockies", "COL"}, {"Royals", "KC"},
	{"Tigers", "DET"}, {"Twins", "MIN"}, {"White Sox", "CWS"}, {"Yankees", "NYY"},
}

var (
	rhbPullFriendly = map[string]bool{"NYY": true, "HOU": true, "BOS": true, "CIN": true, "CHC": true, "COL": true}
	lhbPullFriendly = map[string]bool{"NYY": true, "BAL": true, "HOU": true, "TEX": true, "CIN": true, "MIL": true, "COL": true, "PHI": true}
)

// Neutral is used for parks missing from the table
var Neutral = models.Ballpark{Name: "Unknown Ballpark", HRFactor: 1.0}

// Lookup returns the ballpark of a home team code
func Lookup(teamCode string) (models.Ballpark, bool) {
	park, ok := parks[teamCode]
	if !ok {
		return models.Ballpark{}, false
	}
	park.Team = teamCode
	return park, true
}

// ForTeam returns the ballpark of a home team code, or a neutral park when unknown
func ForTeam(teamCode string) models.Ballpark {
	if park, ok := Lookup(teamCode); ok {
		return park
	}
	park := Neutral
	park.Team = teamCode
	return park
}

// Codes returns every known team code in sorted order
func Codes() []string {
	codes := make([]string, 0, len(parks))
	for code := range parks {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// TeamCode maps a full or partial team name ("Houston Astros", "Astros") to its code.
// The boolean is false when no name matches.
func TeamCode(teamName string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(teamName))
	if lower == "" {
		return "", false
	}
	if _, ok := parks[strings.ToUpper(lower)]; ok {
		return strings.ToUpper(lower), true
	}
	for _, t := range teamNames {
		name := strings.ToLower(t.name)
		if strings.Contains(lower, name) || strings.Contains(name, lower) {
			return t.code, true
		}
	}
	return "", false
}

// TeamName returns the nickname of a team code, or "Unknown"
func TeamName(teamCode string) string {
	for _, t := range teamNames {
		if t.code == teamCode {
			return t.name
		}
	}
	return "Unknown"
}

// PullFriendly reports whether the park rewards pulled fly balls for a batter of the given hand.
// Switch and unknown hitters count when either side qualifies.
func PullFriendly(teamCode string, bats models.Handedness) bool {
	switch bats {
	case models.HandRight:
		return rhbPullFriendly[teamCode]
	case models.HandLeft:
		return lhbPullFriendly[teamCode]
	default:
		return rhbPullFriendly[teamCode] || lhbPullFriendly[teamCode]
	}
}
