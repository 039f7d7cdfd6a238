// Package config provides configuration management for the HR predictor.
package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Scoring  ScoringConfig  `mapstructure:"scoring" validate:"required"`
	Weather  WeatherConfig  `mapstructure:"weather" validate:"required"`
	StatsAPI StatsAPIConfig `mapstructure:"stats_api" validate:"required"`
	Data     DataConfig     `mapstructure:"data"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Tracking TrackingConfig `mapstructure:"tracking" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ScoringConfig controls the scoring engine and tiering
type ScoringConfig struct {
	BaseRate       float64 `mapstructure:"base_rate" validate:"required,gt=0,lt=1"`
	MinProbability float64 `mapstructure:"min_probability" validate:"required,gt=0,lt=1"`
	MaxProbability float64 `mapstructure:"max_probability" validate:"required,gt=0,lt=1"`
	// Weights overrides individual entries of the default weight table
	Weights       map[string]float64 `mapstructure:"weights" validate:"dive,gte=0"`
	TopN          int                `mapstructure:"top_n" validate:"required,gt=0"`
	LockQuantile  float64            `mapstructure:"lock_quantile" validate:"required,gt=0,lt=1"`
	HotQuantile   float64            `mapstructure:"hot_quantile" validate:"required,gt=0,lt=1"`
	MaxLineupSize int                `mapstructure:"max_lineup_size" validate:"required,gt=0"`
}

// WeatherConfig represents OpenWeather configuration
type WeatherConfig struct {
	APIURL          string   `mapstructure:"api_url" validate:"required,url"`
	APIKey          string   `mapstructure:"api_key"`
	CacheTTLSeconds int      `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	TimeoutSeconds  int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	DomeTeams       []string `mapstructure:"dome_teams" validate:"dive,team_code"`
}

// StatsAPIConfig represents MLB Stats API configuration
type StatsAPIConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts  int     `mapstructure:"retry_attempts" validate:"gte=0"`
}

// DataConfig points at the stat snapshots produced by the upstream collectors
type DataConfig struct {
	SeasonStatsPath     string   `mapstructure:"season_stats_path"`
	RecentStatsPath     string   `mapstructure:"recent_stats_path"`
	PitcherStatsPath    string   `mapstructure:"pitcher_stats_path"`
	HandednessPaths     []string `mapstructure:"handedness_paths"`
	StatcastRecentPath  string   `mapstructure:"statcast_recent_path"`
	StatcastSeasonPath  string   `mapstructure:"statcast_season_path"`
	PitcherStatcastPath string   `mapstructure:"pitcher_statcast_path"`
	LineupPageURL       string   `mapstructure:"lineup_page_url" validate:"omitempty,url"`
}

// TelegramConfig represents Telegram delivery configuration
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIURL   string `mapstructure:"api_url" validate:"omitempty,url"`
	BotToken string `mapstructure:"bot_token" validate:"required_if=Enabled true"`
	ChatID   string `mapstructure:"chat_id" validate:"required_if=Enabled true"`
}

// TrackingConfig represents the prediction tracking log location
type TrackingConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path"`
	Port         int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path         string `mapstructure:"path" validate:"required"`
}

// ScheduleConfig represents the cron times of the daemon mode
type ScheduleConfig struct {
	EarlyCron  string `mapstructure:"early_cron" validate:"required,cron"`
	MiddayCron string `mapstructure:"midday_cron" validate:"required,cron"`
	Timezone   string `mapstructure:"timezone" validate:"required,timezone"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// WeatherCacheTTL returns the weather cache expiry
func (c *Config) WeatherCacheTTL() time.Duration {
	return time.Duration(c.Weather.CacheTTLSeconds) * time.Second
}

// StatsAPITimeout returns the per-request timeout for the Stats API
func (c *Config) StatsAPITimeout() time.Duration {
	return time.Duration(c.StatsAPI.TimeoutSeconds) * time.Second
}

// Location returns the configured schedule timezone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Schedule.Timezone)
}
