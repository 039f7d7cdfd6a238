package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"bogus", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := newLogger(tt.level, &bytes.Buffer{}, false)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger("info", buf, true)
	log.Info("hello")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "hello", entry["msg"])
}

func TestPredictionLoggerRunFinished(t *testing.T) {
	log, buf := setupTestLogger()
	pl := NewPredictionLogger(log).WithRun("run-1")

	pl.LogRunFinished(42, 5, 1, 3, 1500*time.Millisecond)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "prediction", entry["component"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, float64(42), entry["predictions"])
	assert.Equal(t, float64(1500), entry["duration_ms"])
}

func TestPredictionLoggerBatterError(t *testing.T) {
	log, buf := setupTestLogger()
	NewPredictionLogger(log).LogBatterError("HOU_SEA_2024-06-01", "Jose Altuve", errors.New("boom"))

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "Jose Altuve", entry["batter"])
	assert.Equal(t, "boom", entry["error"])
}

func TestPredictionLoggerScoredKeepsHeadlineFactors(t *testing.T) {
	log, buf := setupTestLogger()
	NewPredictionLogger(log).LogPredictionScored("g1", "A B", 0.05, map[string]float64{
		"weather_factor": 1.2,
		"pull_pct":       0.4,
	})

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, 1.2, entry["weather_factor"])
	assert.NotContains(t, entry, "pull_pct")
}

func TestPredictionLoggerMatchRate(t *testing.T) {
	tests := []struct {
		name      string
		matched   int
		total     int
		wantLevel string
	}{
		{"low coverage warns", 1, 10, "warning"},
		{"good coverage", 5, 10, "info"},
		{"no batters", 0, 0, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := setupTestLogger()
			NewPredictionLogger(log).LogMatchRate("statcast", tt.matched, tt.total, 0.2)

			entry := parseLogOutput(buf)
			require.NotNil(t, entry)
			assert.Equal(t, tt.wantLevel, entry["level"])
		})
	}
}

func TestPredictionLoggerHandedness(t *testing.T) {
	log, buf := setupTestLogger()
	NewPredictionLogger(log).LogHandedness("batters", map[string]int{"R": 2, "Unknown": 3}, 0.6, 0.3)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "batters", entry["role"])
}

func TestDeliveryLogger(t *testing.T) {
	log, buf := setupTestLogger()
	dl := NewDeliveryLogger(log)

	dl.LogTrackingWritten("tracking/2024-06-01.json", "2024-06-01", 2, 3, 4)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "delivery", entry["component"])
	assert.Equal(t, float64(3), entry["hot_picks"])
}
