package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hr-predictor/internal/config"
	"github.com/yourusername/hr-predictor/internal/datasource"
	"github.com/yourusername/hr-predictor/internal/logger"
	"github.com/yourusername/hr-predictor/internal/metrics"
	"github.com/yourusername/hr-predictor/internal/notify"
	"github.com/yourusername/hr-predictor/internal/report"
	"github.com/yourusername/hr-predictor/internal/scoring"
	"github.com/yourusername/hr-predictor/internal/service"
)

// app holds the wired collaborators of one process
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	loc      *time.Location
	stats    datasource.StatFiles
	pipeline *service.Pipeline
	clients  []*datasource.RateLimitedHTTPClient
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return nil, err
	}
	if err := config.ApplySecretsFromEnv(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context, dryRun bool) (*app, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger(cfg.App.LogLevel)
	log.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("HR predictor starting")

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	engine, err := scoring.NewEngineFromConfig(cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring engine: %w", err)
	}

	a := &app{cfg: cfg, log: log, loc: loc}

	statsHTTP := a.httpClient(cfg.StatsAPITimeout(), cfg.StatsAPI.RetryAttempts, cfg.StatsAPI.RateLimit)
	weatherHTTP := a.httpClient(time.Duration(cfg.Weather.TimeoutSeconds)*time.Second, 1, 5)

	delivery := logger.NewDeliveryLogger(log)
	weather := datasource.NewWeatherClient(weatherHTTP, datasource.WeatherClientConfig{
		APIURL:    cfg.Weather.APIURL,
		APIKey:    cfg.Weather.APIKey,
		DomeTeams: cfg.Weather.DomeTeams,
		CacheTTL:  cfg.WeatherCacheTTL(),
	}, delivery, log)

	a.stats = datasource.StatFiles{
		Paths: datasource.StatFilePaths{
			Season:          cfg.Data.SeasonStatsPath,
			Recent:          cfg.Data.RecentStatsPath,
			Pitchers:        cfg.Data.PitcherStatsPath,
			StatcastRecent:  cfg.Data.StatcastRecentPath,
			StatcastSeason:  cfg.Data.StatcastSeasonPath,
			StatcastPitcher: cfg.Data.PitcherStatcastPath,
		},
		HandednessPaths: cfg.Data.HandednessPaths,
	}

	deps := service.PipelineDeps{
		Slates:    datasource.NewStatsAPIClient(statsHTTP, cfg.StatsAPI.BaseURL, log),
		Weather:   weather,
		Stats:     a.stats,
		Predictor: service.NewPredictor(engine, cfg.Scoring.MaxLineupSize, logger.NewPredictionLogger(log)),
		Tracker:   report.NewTracker(cfg.Tracking.Directory),
	}

	// optional sources stay untyped nil when unconfigured
	if cfg.Data.LineupPageURL != "" {
		pageHTTP := a.httpClient(15*time.Second, 1, 1)
		deps.Lineups = datasource.NewLineupPageClient(pageHTTP, cfg.Data.LineupPageURL, log)
	}
	if cfg.Telegram.Enabled {
		tgHTTP := a.httpClient(15*time.Second, 2, 1)
		deps.Publisher = notify.NewTelegramSender(tgHTTP, notify.TelegramConfig{
			APIURL:   cfg.Telegram.APIURL,
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
		}, log)
	} else {
		log.Warn("Telegram delivery disabled, reports will only be logged")
	}

	a.pipeline = service.NewPipeline(deps, service.PipelineOptions{
		TopN:         cfg.Scoring.TopN,
		LockQuantile: cfg.Scoring.LockQuantile,
		HotQuantile:  cfg.Scoring.HotQuantile,
		DryRun:       dryRun,
		Location:     loc,
	}, log)

	return a, nil
}

func (a *app) httpClient(timeout time.Duration, retries int, rps float64) *datasource.RateLimitedHTTPClient {
	cfg := datasource.DefaultHTTPClientConfig()
	cfg.Timeout = timeout
	cfg.MaxRetries = retries
	cfg.RateLimit = rps
	c := datasource.NewRateLimitedHTTPClient(cfg, a.log)
	a.clients = append(a.clients, c)
	return c
}

// run executes one pipeline run and flushes metrics afterwards
func (a *app) run(ctx context.Context, req service.RunRequest) (*service.RunReport, error) {
	rep, err := a.pipeline.Run(ctx, req)
	a.flushMetrics()
	return rep, err
}

func (a *app) flushMetrics() {
	path := a.cfg.Metrics.TextfilePath
	if !a.cfg.Metrics.Enabled || path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		a.log.WithError(err).WithField("path", path).Warn("Failed to write metrics textfile")
	}
}

// statsReady is the readiness check of the daemon: the season file must exist
func (a *app) statsReady(context.Context) error {
	_, err := os.Stat(a.stats.Paths.Season)
	return err
}

func (a *app) close() {
	for _, c := range a.clients {
		_ = c.Close()
	}
}
