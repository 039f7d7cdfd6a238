// Package service runs the prediction pipeline: it validates a day's slate,
// scores every batter and hands the ranked result to the report channels.
package service

import (
	"errors"
	"fmt"

	"github.com/yourusername/hr-predictor/internal/ballpark"
	"github.com/yourusername/hr-predictor/internal/datasource"
	"github.com/yourusername/hr-predictor/internal/factors"
	"github.com/yourusername/hr-predictor/internal/fallback"
	"github.com/yourusername/hr-predictor/internal/logger"
	"github.com/yourusername/hr-predictor/internal/metrics"
	"github.com/yourusername/hr-predictor/internal/models"
	"github.com/yourusername/hr-predictor/internal/scoring"
	"github.com/yourusername/hr-predictor/internal/tiers"
)

// Weather factors outside this band are logged as extreme
const (
	extremeWeatherLow  = 0.8
	extremeWeatherHigh = 1.3
)

// DefaultMaxLineupSize is the longest list still treated as a batting order
const DefaultMaxLineupSize = 15

// Inputs is everything one scoring pass consumes
type Inputs struct {
	Slate      *models.Slate
	Weather    map[string]models.WeatherSample
	Stats      *datasource.StatSnapshot
	Handedness *datasource.HandednessTable
}

// Result is the ranked output of one scoring pass
type Result struct {
	Predictions    []models.Prediction
	GamesProcessed int
	GamesSkipped   int
	BattersScored  int
	BattersSkipped int
}

// Probabilities returns the probability of every prediction in rank order
func (r *Result) Probabilities() []float64 {
	out := make([]float64, len(r.Predictions))
	for i, p := range r.Predictions {
		out[i] = p.HRProbability
	}
	return out
}

// Predictor scores every batter of a slate
type Predictor struct {
	engine        *scoring.Engine
	maxLineupSize int
	log           *logger.PredictionLogger
}

// NewPredictor creates a predictor. maxLineupSize <= 0 uses DefaultMaxLineupSize.
func NewPredictor(engine *scoring.Engine, maxLineupSize int, log *logger.PredictionLogger) *Predictor {
	if maxLineupSize <= 0 {
		maxLineupSize = DefaultMaxLineupSize
	}
	return &Predictor{
		engine:        engine,
		maxLineupSize: maxLineupSize,
		log:           log,
	}
}

// WithRun returns a predictor whose events carry the run ID
func (p *Predictor) WithRun(runID string) *Predictor {
	cp := *p
	cp.log = p.log.WithRun(runID)
	return &cp
}

// gameContext is what every batter of one game shares
type gameContext struct {
	game    models.Game
	weather models.WeatherSample
}

// Predict scores every batter of the slate and returns them ranked by
// probability. Games and batters with unusable data are skipped; only an
// empty slate or an empty result is an error.
func (p *Predictor) Predict(in Inputs) (*Result, error) {
	if in.Slate == nil || len(in.Slate.Games) == 0 {
		return nil, models.ErrNoGames
	}
	if in.Stats == nil {
		return nil, errors.New("no stat snapshot")
	}
	ensureSnapshot(in.Stats)

	enrich(p.log, in.Stats, in.Handedness, slateRoster(in.Slate, p.maxLineupSize))

	result := &Result{}
	for _, game := range in.Slate.Games {
		lineup, ok := in.Slate.Lineups[game.ID]
		if !ok {
			p.skipGame(result, game.ID, models.ErrNoLineup)
			continue
		}

		pitchers, ok := in.Slate.Pitchers[game.ID]
		if !ok {
			pitchers = models.ProbablePitchers{Home: models.UnknownPitcher, Away: models.UnknownPitcher}
		}

		home := p.checkLineup(game.ID, "home", lineup.Home)
		away := p.checkLineup(game.ID, "away", lineup.Away)
		homeKnown, awayKnown := models.IsKnownPitcher(pitchers.Home), models.IsKnownPitcher(pitchers.Away)

		if len(home) == 0 && len(away) == 0 && !homeKnown && !awayKnown {
			p.skipGame(result, game.ID, models.ErrNoGameData)
			continue
		}
		if !homeKnown && !awayKnown {
			p.log.WithField("game_id", game.ID).Warn("No probable pitchers announced, matchups will be neutral")
		}

		gc := gameContext{game: game, weather: p.gameWeather(game, in.Weather)}
		result.GamesProcessed++

		// home batters face the away starter and vice versa
		p.scoreSide(result, in.Stats, gc, home, true, pitchers.Away)
		p.scoreSide(result, in.Stats, gc, away, false, pitchers.Home)
	}

	tiers.Rank(result.Predictions)

	if len(result.Predictions) == 0 {
		return result, models.ErrNoPredictions
	}
	return result, nil
}

func (p *Predictor) checkLineup(gameID, side string, batters []string) []string {
	kept, discarded := sanitizeLineup(batters, p.maxLineupSize)
	if discarded {
		p.log.WithField("game_id", gameID).
			WithField("side", side).
			WithField("size", len(batters)).
			Warn("Lineup looks like a full roster, ignoring it")
	}
	return kept
}

func (p *Predictor) skipGame(result *Result, gameID string, err error) {
	result.GamesSkipped++
	p.log.LogGameSkipped(gameID, err.Error())
	metrics.RecordGameSkipped(SkipReason(err))
}

func (p *Predictor) gameWeather(game models.Game, samples map[string]models.WeatherSample) models.WeatherSample {
	w, ok := samples[game.ID]
	if !ok {
		w = models.NeutralWeather()
	}

	factor := factors.Weather(w, game.Ballpark.Orientation)
	if factor <= extremeWeatherLow || factor >= extremeWeatherHigh {
		p.log.LogExtremeWeather(game.ID, w.TempF, w.WindSpeed, factor)
	}
	return w
}

func (p *Predictor) scoreSide(result *Result, stats *datasource.StatSnapshot, gc gameContext, batters []string, isHome bool, opposingPitcher string) {
	for _, batter := range batters {
		pred, err := p.scoreBatter(stats, gc, batter, isHome, opposingPitcher)
		if err != nil {
			result.BattersSkipped++
			reason := SkipReason(err)
			if reason == ReasonError {
				p.log.LogBatterError(gc.game.ID, batter, err)
			} else {
				p.log.LogBatterSkipped(gc.game.ID, batter, err.Error())
			}
			metrics.RecordBatterSkipped(reason)
			continue
		}

		result.BattersScored++
		result.Predictions = append(result.Predictions, pred)
		p.log.LogPredictionScored(gc.game.ID, batter, pred.HRProbability, pred.Factors)
	}
}

// scoreBatter is the batter isolation boundary: a panic anywhere below it
// only costs this batter.
func (p *Predictor) scoreBatter(stats *datasource.StatSnapshot, gc gameContext, batter string, isHome bool, pitcherName string) (pred models.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring %s panicked: %v", batter, r)
		}
	}()

	season, err := ValidateBatter(batter, stats.Season)
	if err != nil {
		return models.Prediction{}, err
	}

	recent, ok := stats.Recent[batter]
	if !ok {
		recent = models.DefaultPlayerStats(batter)
	}

	pitcher := models.DefaultPitcherStats(models.UnknownPitcher)
	if models.IsKnownPitcher(pitcherName) {
		if rec, ok := stats.Pitchers[pitcherName]; ok {
			pitcher = rec
		} else {
			pitcher = models.DefaultPitcherStats(pitcherName)
		}
	}

	deriveExpected(&season)
	matchup := batterVsPitcher(&season, batter, pitcherName)
	stats.Season[batter] = season

	fs := factors.Compute(factors.Input{
		Season:  season,
		Recent:  recent,
		Pitcher: pitcher,
		Park:    gc.game.Ballpark,
		Weather: gc.weather,
		IsHome:  isHome,
		Matchup: matchup,
	})
	score := p.engine.Score(fs)
	values := factors.Values(fs)

	return buildPrediction(gc, batter, isHome, season, pitcher, values, score), nil
}

// deriveExpected fills missing expected metrics from contact quality. A batter
// without a reported exit velocity keeps them missing, and therefore neutral.
func deriveExpected(s *models.PlayerStats) {
	if s.ExitVelo <= 0 {
		return
	}
	if s.XISO <= 0 {
		s.XISO = factors.EstimateXISO(*s)
	}
	if s.XWOBA <= 0 {
		s.XWOBA = factors.EstimateXWOBA(s.ExitVelo, s.LaunchAngle, s.BarrelPct, s.HardHitPct)
	}
}

// batterVsPitcher returns the cached matchup factor, generating and caching
// the deterministic fallback the first time a pair is seen.
func batterVsPitcher(s *models.PlayerStats, batter, pitcher string) float64 {
	if !models.IsKnownPitcher(pitcher) {
		return 1.0
	}
	if v, ok := s.BatterHistory[pitcher]; ok {
		return v
	}

	v := fallback.Matchup(batter, pitcher)
	if s.BatterHistory == nil {
		s.BatterHistory = make(map[string]float64)
	}
	s.BatterHistory[pitcher] = v
	metrics.RecordFallback("matchup")
	return v
}

func buildPrediction(gc gameContext, batter string, isHome bool, season models.PlayerStats, pitcher models.PitcherStats, values map[string]float64, score scoring.Score) models.Prediction {
	g := gc.game
	team, opponent := g.AwayTeam, g.HomeTeam
	teamName, opponentName := g.AwayTeamName, g.HomeTeamName
	if isHome {
		team, opponent = opponent, team
		teamName, opponentName = opponentName, teamName
	}
	if teamName == "" {
		teamName = ballpark.TeamName(team)
	}
	if opponentName == "" {
		opponentName = ballpark.TeamName(opponent)
	}

	return models.Prediction{
		ID:              models.PredictionID(g.ID, batter),
		Player:          batter,
		Team:            team,
		TeamName:        teamName,
		Opponent:        opponent,
		OpponentName:    opponentName,
		OpponentPitcher: pitcher.Name,
		GameID:          g.ID,
		GameTime:        g.GameTime,
		IsHomeTeam:      isHome,
		Ballpark:        g.Ballpark.Name,
		BallparkFactor:  values[factors.BallparkFactor],
		WeatherTemp:     gc.weather.TempF,
		WeatherWind:     gc.weather.WindSpeed,
		WeatherFactor:   values[factors.WeatherFactor],
		Bats:            season.Bats,
		Throws:          pitcher.Throws,
		PlatoonEdge:     values[factors.PlatoonAdvantage] > 1,
		PrimaryPitch:    pitcher.PrimaryPitch(),
		FormTrend:       season.FormTrend,
		Factors:         values,
		Adjustment:      score.Adjustment,
		HRProbability:   score.Probability,
	}
}
