package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hr-predictor/internal/ballpark"
	"github.com/yourusername/hr-predictor/internal/models"
)

// StatsAPIClient reads the daily schedule, probable pitchers and posted
// lineups from the MLB Stats API
type StatsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	validate   *validator.Validate
	logger     *logrus.Entry
}

type scheduleResponse struct {
	Dates []struct {
		Date  string         `json:"date"`
		Games []scheduleGame `json:"games"`
	} `json:"dates"`
}

type scheduleGame struct {
	GamePk   int    `json:"gamePk"`
	GameDate string `json:"gameDate"`
	Status   struct {
		DetailedState string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Home scheduleTeam `json:"home"`
		Away scheduleTeam `json:"away"`
	} `json:"teams"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
	Lineups *struct {
		HomePlayers []schedulePerson `json:"homePlayers"`
		AwayPlayers []schedulePerson `json:"awayPlayers"`
	} `json:"lineups"`
}

type scheduleTeam struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	ProbablePitcher *schedulePerson `json:"probablePitcher"`
}

type schedulePerson struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// NewStatsAPIClient creates a Stats API client
func NewStatsAPIClient(httpClient *RateLimitedHTTPClient, baseURL string, logger *logrus.Logger) *StatsAPIClient {
	return &StatsAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		validate:   validator.New(),
		logger:     logger.WithField("component", SourceStatsAPI),
	}
}

// Name returns the name of the data source
func (c *StatsAPIClient) Name() string {
	return SourceStatsAPI
}

// FetchSlate returns the games of date that have not started yet. Games whose
// teams cannot be mapped to a club code are dropped. Lineups are only present
// for games where the API has posted them.
func (c *StatsAPIClient) FetchSlate(ctx context.Context, date time.Time) (*models.Slate, error) {
	q := url.Values{}
	q.Set("sportId", "1")
	q.Set("date", date.Format(models.DateLayout))
	q.Set("hydrate", "probablePitcher,lineups")
	endpoint := fmt.Sprintf("%s/api/v1/schedule?%s", c.baseURL, q.Encode())

	var resp scheduleResponse
	if err := c.httpClient.GetJSON(ctx, SourceStatsAPI, endpoint, &resp); err != nil {
		return nil, err
	}

	slate := models.NewSlate(date)
	for _, d := range resp.Dates {
		for _, g := range d.Games {
			game, ok := c.convertGame(g, date)
			if !ok {
				continue
			}
			slate.Games = append(slate.Games, game)
			slate.Pitchers[game.ID] = models.ProbablePitchers{
				Home: pitcherName(g.Teams.Home.ProbablePitcher),
				Away: pitcherName(g.Teams.Away.ProbablePitcher),
			}
			if g.Lineups != nil {
				slate.Lineups[game.ID] = models.Lineup{
					Home: personNames(g.Lineups.HomePlayers),
					Away: personNames(g.Lineups.AwayPlayers),
				}
			}
		}
	}

	c.logger.WithFields(logrus.Fields{
		"date":    date.Format(models.DateLayout),
		"games":   len(slate.Games),
		"lineups": len(slate.Lineups),
	}).Info("Fetched schedule")

	return slate, nil
}

func (c *StatsAPIClient) convertGame(g scheduleGame, date time.Time) (models.Game, bool) {
	log := c.logger.WithField("game_pk", g.GamePk)

	if !models.IsPlayable(g.Status.DetailedState) {
		log.WithField("status", g.Status.DetailedState).Debug("Skipping game that is not upcoming")
		return models.Game{}, false
	}

	home, okHome := ballpark.TeamCode(g.Teams.Home.Team.Name)
	away, okAway := ballpark.TeamCode(g.Teams.Away.Team.Name)
	if !okHome || !okAway {
		log.WithFields(logrus.Fields{
			"home": g.Teams.Home.Team.Name,
			"away": g.Teams.Away.Team.Name,
		}).Warn("Could not map team names to codes")
		return models.Game{}, false
	}

	park := ballpark.ForTeam(home)
	if g.Venue.Name != "" {
		park.Name = g.Venue.Name
	}

	gameTime, err := time.Parse(time.RFC3339, g.GameDate)
	if err != nil {
		log.WithError(err).Debug("Unparseable game time")
	}

	game := models.Game{
		ID:           models.GameID(home, away, date),
		Date:         date.Format(models.DateLayout),
		HomeTeam:     home,
		AwayTeam:     away,
		HomeTeamName: g.Teams.Home.Team.Name,
		AwayTeamName: g.Teams.Away.Team.Name,
		Ballpark:     park,
		GameTime:     gameTime,
		Status:       g.Status.DetailedState,
		MLBGameID:    g.GamePk,
	}
	if err := c.validate.Struct(game); err != nil {
		log.WithError(err).Warn("Dropping invalid game")
		return models.Game{}, false
	}
	return game, true
}

func pitcherName(p *schedulePerson) string {
	if p == nil || strings.TrimSpace(p.FullName) == "" {
		return models.UnknownPitcher
	}
	return strings.TrimSpace(p.FullName)
}

func personNames(people []schedulePerson) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		if name := strings.TrimSpace(p.FullName); name != "" {
			out = append(out, name)
		}
	}
	return out
}
