// Package metrics provides the Prometheus registry for prediction runs.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hr_predictor"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Total number of prediction runs by label and outcome",
	}, []string{"label", "outcome"})
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of batter predictions produced",
	})
	GamesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_skipped_total",
		Help:      "Total number of games skipped by reason",
	}, []string{"reason"})
	BattersSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batters_skipped_total",
		Help:      "Total number of batters skipped by reason",
	}, []string{"reason"})
	FallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallbacks_total",
		Help:      "Total number of values replaced by deterministic fallbacks",
	}, []string{"source"})
	ReportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_total",
		Help:      "Total number of report deliveries by channel and outcome",
	}, []string{"channel", "outcome"})
)

// Gauge metrics
var (
	LastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last completed run",
	})
	LastRunPredictions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_predictions",
		Help:      "Number of predictions in the last run",
	})
	TopProbability = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "top_probability",
		Help:      "Highest home-run probability of the last run",
	})
	NameMatchRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "name_match_rate",
		Help:      "Share of lineup names matched in an auxiliary source",
	}, []string{"source"})
	UnknownHandednessRatio = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "unknown_handedness_ratio",
		Help:      "Share of players with unknown handedness by role",
	}, []string{"role"})
)

// Histogram metrics
var (
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of prediction runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})
	HRProbability = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "hr_probability",
		Help:      "Distribution of predicted home-run probabilities",
		Buckets:   []float64{0.01, 0.02, 0.03, 0.04, 0.05, 0.06, 0.08, 0.10, 0.12, 0.15},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(RunsTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(GamesSkippedTotal)
		registry.MustRegister(BattersSkippedTotal)
		registry.MustRegister(FallbacksTotal)
		registry.MustRegister(ReportsTotal)

		// Register gauge metrics
		registry.MustRegister(LastRunTimestamp)
		registry.MustRegister(LastRunPredictions)
		registry.MustRegister(TopProbability)
		registry.MustRegister(NameMatchRate)
		registry.MustRegister(UnknownHandednessRatio)

		// Register histogram metrics
		registry.MustRegister(RunDuration)
		registry.MustRegister(HRProbability)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// WriteTextfile dumps the registry in the node_exporter textfile format, for
// one-shot runs that exit before anything could scrape them.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, GetRegistry())
}

// RecordRun records a finished run.
func RecordRun(label, outcome string, duration time.Duration) {
	RunsTotal.WithLabelValues(label, outcome).Inc()
	RunDuration.Observe(duration.Seconds())
	LastRunTimestamp.SetToCurrentTime()
}

// RecordPredictions records the probabilities of one run.
func RecordPredictions(probabilities []float64) {
	PredictionsTotal.Add(float64(len(probabilities)))
	LastRunPredictions.Set(float64(len(probabilities)))

	top := 0.0
	for _, p := range probabilities {
		HRProbability.Observe(p)
		top = max(top, p)
	}
	TopProbability.Set(top)
}

// RecordGameSkipped records a skipped game.
func RecordGameSkipped(reason string) {
	GamesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordBatterSkipped records a skipped batter.
func RecordBatterSkipped(reason string) {
	BattersSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordFallback records a deterministic fallback.
func RecordFallback(source string) {
	FallbacksTotal.WithLabelValues(source).Inc()
}

// RecordReport records a report delivery attempt.
func RecordReport(channel string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	ReportsTotal.WithLabelValues(channel, outcome).Inc()
}

// UpdateNameMatchRate updates the match rate gauge of an auxiliary source.
func UpdateNameMatchRate(source string, rate float64) {
	NameMatchRate.WithLabelValues(source).Set(rate)
}

// UpdateUnknownHandedness updates the unknown handedness gauge of a role.
func UpdateUnknownHandedness(role string, ratio float64) {
	UnknownHandednessRatio.WithLabelValues(role).Set(ratio)
}
