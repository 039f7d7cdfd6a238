package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordRun(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(RunsTotal.WithLabelValues("Early", "success"))

	RecordRun("Early", "success", 3*time.Second)

	assert.Equal(t, before+1, testutil.ToFloat64(RunsTotal.WithLabelValues("Early", "success")))
	assert.Greater(t, testutil.ToFloat64(LastRunTimestamp), 0.0)
}

func TestRecordPredictions(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(PredictionsTotal)

	RecordPredictions([]float64{0.03, 0.11, 0.07})

	assert.Equal(t, before+3, testutil.ToFloat64(PredictionsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(LastRunPredictions))
	assert.Equal(t, 0.11, testutil.ToFloat64(TopProbability))

	RecordPredictions(nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(TopProbability))
}

func TestSkipAndFallbackCounters(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		record func()
		metric prometheus.Collector
	}{
		{"game skipped", func() { RecordGameSkipped("no_lineup") }, GamesSkippedTotal.WithLabelValues("no_lineup")},
		{"batter skipped", func() { RecordBatterSkipped("no_stats") }, BattersSkippedTotal.WithLabelValues("no_stats")},
		{"fallback", func() { RecordFallback("openweather") }, FallbacksTotal.WithLabelValues("openweather")},
		{"report ok", func() { RecordReport("telegram", nil) }, ReportsTotal.WithLabelValues("telegram", "success")},
		{"report failed", func() { RecordReport("telegram", errors.New("boom")) }, ReportsTotal.WithLabelValues("telegram", "failure")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(tt.metric)
			tt.record()
			assert.Equal(t, before+1, testutil.ToFloat64(tt.metric))
		})
	}
}

func TestGauges(t *testing.T) {
	InitRegistry()

	UpdateNameMatchRate("statcast", 0.42)
	UpdateUnknownHandedness("batters", 0.1)

	assert.Equal(t, 0.42, testutil.ToFloat64(NameMatchRate.WithLabelValues("statcast")))
	assert.Equal(t, 0.1, testutil.ToFloat64(UnknownHandednessRatio.WithLabelValues("batters")))
}

func TestHandler(t *testing.T) {
	InitRegistry()
	RecordPredictions([]float64{0.05})

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hr_predictor_predictions_total")
}

func TestWriteTextfile(t *testing.T) {
	InitRegistry()
	RecordRun("Midday", "success", time.Second)

	path := filepath.Join(t.TempDir(), "hr_predictor.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hr_predictor_runs_total")
}
