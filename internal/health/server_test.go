package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hr-predictor/internal/metrics"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthReportsRuns(t *testing.T) {
	next := time.Date(2025, 7, 5, 13, 0, 0, 0, time.UTC)
	s := NewServer(Config{
		ServiceName: "hr-predictor",
		Version:     "1.2.0",
		Port:        "0",
		NextRun:     func() time.Time { return next },
	})
	s.RecordRun("Early", time.Date(2025, 7, 5, 9, 2, 0, 0, time.UTC), errors.New("no games"))

	rec := get(t, s.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.0", resp.Version)
	require.NotNil(t, resp.LastRun)
	assert.Equal(t, "failure", resp.LastRun.Outcome)
	assert.Equal(t, "no games", resp.LastRun.Error)
	assert.Equal(t, "2025-07-05T13:00:00Z", resp.NextRun)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		ready  bool
		check  error
		status int
	}{
		{"ready", true, nil, http.StatusOK},
		{"not marked ready", false, nil, http.StatusServiceUnavailable},
		{"failing check", true, errors.New("stats files missing"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{
				ServiceName: "hr-predictor",
				Checks: map[string]CheckFunc{
					"stats": func(context.Context) error { return tt.check },
				},
			})
			s.SetReady(tt.ready)

			rec := get(t, s.Handler(), "/ready")
			assert.Equal(t, tt.status, rec.Code)

			var resp ReadyResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			if tt.check != nil {
				assert.Contains(t, resp.Checks["stats"], "stats files missing")
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.InitRegistry()
	metrics.RecordFallback("weather")

	s := NewServer(Config{ServiceName: "hr-predictor", MetricsPath: "/metrics"})
	rec := get(t, s.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hr_predictor_fallbacks_total")

	none := NewServer(Config{ServiceName: "hr-predictor"})
	assert.Equal(t, http.StatusNotFound, get(t, none.Handler(), "/metrics").Code)
}

func TestLive(t *testing.T) {
	rec := get(t, NewServer(Config{ServiceName: "hr-predictor"}).Handler(), "/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}
