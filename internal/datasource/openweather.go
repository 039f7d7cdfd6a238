package datasource

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hr-predictor/internal/fallback"
	"github.com/yourusername/hr-predictor/internal/metrics"
	"github.com/yourusername/hr-predictor/internal/models"
)

// FallbackRecorder is told whenever a collaborator value is replaced by a
// deterministic fallback
type FallbackRecorder interface {
	LogFallbackUsed(source, key, reason string)
}

// WeatherClient fetches current conditions per ballpark from OpenWeather.
// It never fails: closed stadiums get controlled conditions and every other
// failure yields the team-keyed fallback.
type WeatherClient struct {
	httpClient *RateLimitedHTTPClient
	apiURL     string
	apiKey     string
	domes      map[string]bool
	cache      *cache.Cache
	fallbacks  FallbackRecorder
	logger     *logrus.Entry
}

// WeatherClientConfig configures a WeatherClient
type WeatherClientConfig struct {
	APIURL    string
	APIKey    string
	DomeTeams []string
	CacheTTL  time.Duration
}

type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
}

// NewWeatherClient creates a weather client
func NewWeatherClient(httpClient *RateLimitedHTTPClient, cfg WeatherClientConfig, fallbacks FallbackRecorder, logger *logrus.Logger) *WeatherClient {
	domes := make(map[string]bool, len(cfg.DomeTeams))
	for _, team := range cfg.DomeTeams {
		domes[team] = true
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &WeatherClient{
		httpClient: httpClient,
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		domes:      domes,
		cache:      cache.New(ttl, 2*ttl),
		fallbacks:  fallbacks,
		logger:     logger.WithField("component", SourceOpenWeather),
	}
}

// Name returns the name of the data source
func (c *WeatherClient) Name() string {
	return SourceOpenWeather
}

// FetchAll returns conditions for every game, keyed by game ID
func (c *WeatherClient) FetchAll(ctx context.Context, games []models.Game) map[string]models.WeatherSample {
	out := make(map[string]models.WeatherSample, len(games))
	for _, g := range games {
		out[g.ID] = c.Fetch(ctx, g)
	}
	return out
}

// Fetch returns conditions at the game's ballpark
func (c *WeatherClient) Fetch(ctx context.Context, game models.Game) models.WeatherSample {
	team := game.HomeTeam
	if c.domes[team] || game.Ballpark.Features.Dome {
		return models.DomeWeather()
	}

	if cached, ok := c.cache.Get(team); ok {
		return cached.(models.WeatherSample)
	}

	if !game.Ballpark.HasCoordinates() {
		return c.fallback(team, "missing ballpark coordinates")
	}
	if c.apiKey == "" {
		return c.fallback(team, "no api key configured")
	}

	sample, err := c.current(ctx, game.Ballpark)
	if err != nil {
		// the request URL carries the api key, so only the code is logged
		return c.fallback(team, "request failed: "+errorCode(err))
	}

	c.logger.WithFields(logrus.Fields{
		"team":       team,
		"temp":       sample.TempF,
		"wind_speed": sample.WindSpeed,
		"wind_deg":   sample.WindDeg,
	}).Debug("Fetched weather")
	c.cache.Set(team, sample, cache.DefaultExpiration)
	return sample
}

func (c *WeatherClient) current(ctx context.Context, park models.Ballpark) (models.WeatherSample, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", park.Latitude))
	q.Set("lon", fmt.Sprintf("%.4f", park.Longitude))
	q.Set("appid", c.apiKey)
	q.Set("units", "imperial")

	var resp openWeatherResponse
	if err := c.httpClient.GetJSON(ctx, SourceOpenWeather, c.apiURL+"?"+q.Encode(), &resp); err != nil {
		return models.WeatherSample{}, err
	}

	return models.WeatherSample{
		TempF:     resp.Main.Temp,
		Humidity:  resp.Main.Humidity,
		WindSpeed: resp.Wind.Speed,
		WindDeg:   resp.Wind.Deg,
		Source:    models.WeatherSourceAPI,
	}, nil
}

func (c *WeatherClient) fallback(team, reason string) models.WeatherSample {
	if c.fallbacks != nil {
		c.fallbacks.LogFallbackUsed(SourceOpenWeather, team, reason)
	}
	metrics.RecordFallback(SourceOpenWeather)
	return fallback.Weather(team)
}
