package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated logging for prediction runs.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// WithRun returns a logger that tags every event with the run ID.
func (pl *PredictionLogger) WithRun(runID string) *PredictionLogger {
	return &PredictionLogger{Entry: pl.WithField("run_id", runID)}
}

// LogRunStarted logs the start of a prediction run.
func (pl *PredictionLogger) LogRunStarted(date time.Time, label string, games int) {
	pl.WithFields(logrus.Fields{
		"date":  date.Format("2006-01-02"),
		"label": label,
		"games": games,
	}).Info("Prediction run started")
}

// LogRunFinished logs the outcome of a prediction run.
func (pl *PredictionLogger) LogRunFinished(predictions, gamesScored, gamesSkipped, battersSkipped int, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"predictions":     predictions,
		"games_scored":    gamesScored,
		"games_skipped":   gamesSkipped,
		"batters_skipped": battersSkipped,
		"duration_ms":     duration.Milliseconds(),
	}).Info("Prediction run finished")
}

// LogGameSkipped logs a game excluded from scoring.
func (pl *PredictionLogger) LogGameSkipped(gameID, reason string) {
	pl.WithFields(logrus.Fields{
		"game_id": gameID,
		"reason":  reason,
	}).Info("Game skipped")
}

// LogBatterSkipped logs a batter excluded for missing or invalid data.
func (pl *PredictionLogger) LogBatterSkipped(gameID, batter, reason string) {
	pl.WithFields(logrus.Fields{
		"game_id": gameID,
		"batter":  batter,
		"reason":  reason,
	}).Info("Batter skipped")
}

// LogBatterError logs a batter whose scoring failed.
func (pl *PredictionLogger) LogBatterError(gameID, batter string, err error) {
	pl.WithFields(logrus.Fields{
		"game_id": gameID,
		"batter":  batter,
	}).WithError(err).Error("Batter scoring failed")
}

// LogPredictionScored logs one scored batter with its headline factors.
func (pl *PredictionLogger) LogPredictionScored(gameID, batter string, probability float64, factors map[string]float64) {
	fields := logrus.Fields{
		"game_id":        gameID,
		"batter":         batter,
		"hr_probability": probability,
	}
	for _, name := range []string{"ballpark_factor", "weather_factor", "platoon_advantage", "recent_hr_rate"} {
		if v, ok := factors[name]; ok {
			fields[name] = v
		}
	}
	pl.WithFields(fields).Debug("Prediction scored")
}

// LogNameMatch logs an auxiliary record matched through a name variant.
func (pl *PredictionLogger) LogNameMatch(source, canonical, variant string) {
	pl.WithFields(logrus.Fields{
		"source":    source,
		"canonical": canonical,
		"variant":   variant,
	}).Debug("Name matched through variant")
}

// LogMatchRate logs how many batters an auxiliary source covered, warning when coverage is low.
func (pl *PredictionLogger) LogMatchRate(source string, matched, total int, warnBelow float64) {
	rate := 0.0
	if total > 0 {
		rate = float64(matched) / float64(total)
	}
	entry := pl.WithFields(logrus.Fields{
		"source":     source,
		"matched":    matched,
		"total":      total,
		"match_rate": rate,
	})
	if total > 0 && rate < warnBelow {
		entry.Warn("Low auxiliary data match rate")
		return
	}
	entry.Info("Auxiliary data merged")
}

// LogExtremeWeather logs weather that moves the weather factor far from neutral.
func (pl *PredictionLogger) LogExtremeWeather(gameID string, tempF, windSpeed, factor float64) {
	pl.WithFields(logrus.Fields{
		"game_id":        gameID,
		"temp_f":         tempF,
		"wind_speed":     windSpeed,
		"weather_factor": factor,
	}).Info("Extreme weather conditions")
}

// LogHandedness logs the handedness distribution, warning when too many values are unknown.
func (pl *PredictionLogger) LogHandedness(role string, counts map[string]int, unknownRatio, warnAbove float64) {
	entry := pl.WithFields(logrus.Fields{
		"role":          role,
		"distribution":  counts,
		"unknown_ratio": unknownRatio,
	})
	if unknownRatio > warnAbove {
		entry.Warn("High share of unknown handedness")
		return
	}
	entry.Info("Handedness distribution")
}
