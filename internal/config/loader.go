package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "HR_PREDICTOR"

// DefaultConfigPath is used when no path is supplied
const DefaultConfigPath = "config/config.yaml"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(envPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// readExpanded reads the YAML file and expands ${VAR} placeholders before parsing
func readExpanded(v *viper.Viper, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Load reads and parses the configuration from file and environment variables.
// The file must exist.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	if err := readExpanded(v, configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for every section.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if err := readExpanded(v, configPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hr-predictor")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("scoring.base_rate", 0.03)
	v.SetDefault("scoring.min_probability", 0.008)
	v.SetDefault("scoring.max_probability", 0.15)
	v.SetDefault("scoring.top_n", 15)
	v.SetDefault("scoring.lock_quantile", 0.85)
	v.SetDefault("scoring.hot_quantile", 0.55)
	v.SetDefault("scoring.max_lineup_size", 15)

	v.SetDefault("weather.api_url", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("weather.cache_ttl_seconds", 1800)
	v.SetDefault("weather.timeout_seconds", 10)
	v.SetDefault("weather.dome_teams", []string{"TB"})

	v.SetDefault("stats_api.base_url", "https://statsapi.mlb.com")
	v.SetDefault("stats_api.rate_limit", 5.0)
	v.SetDefault("stats_api.timeout_seconds", 15)
	v.SetDefault("stats_api.retry_attempts", 3)

	v.SetDefault("data.season_stats_path", "data/season_stats.json")
	v.SetDefault("data.recent_stats_path", "data/recent_stats.json")
	v.SetDefault("data.pitcher_stats_path", "data/pitcher_stats.json")
	v.SetDefault("data.handedness_paths", []string{"data/batter_handedness.csv", "data/pitcher_handedness.csv"})

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.api_url", "https://api.telegram.org")

	v.SetDefault("tracking.directory", "tracking")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("schedule.early_cron", "0 10 * * *")
	v.SetDefault("schedule.midday_cron", "0 13 * * *")
	v.SetDefault("schedule.timezone", "America/New_York")
}
