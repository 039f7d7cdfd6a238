package datasource

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hr-predictor/internal/fallback"
	"github.com/yourusername/hr-predictor/internal/models"
)

var testDate = time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testHTTPClient() *RateLimitedHTTPClient {
	return NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:           2 * time.Second,
		MaxRetries:        2,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      5 * time.Millisecond,
		RateLimit:         1000,
		CircuitBreakerMax: 5,
	}, quietLogger())
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusOK, ""},
		{http.StatusNoContent, ""},
		{http.StatusUnauthorized, ErrCodeAuthenticationFailed},
		{http.StatusForbidden, ErrCodeAuthenticationFailed},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusTooManyRequests, ErrCodeRateLimitExceeded},
		{http.StatusBadGateway, ErrCodeServerError},
		{http.StatusTeapot, ErrCodeUnknown},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Body: io.NopCloser(strings.NewReader("body"))}
			err := CheckStatus("test", resp)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestHTTPClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	err := testHTTPClient().GetJSON(context.Background(), "test", srv.URL, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var out map[string]any
	err := testHTTPClient().GetJSON(context.Background(), "test", srv.URL, &out)

	assert.True(t, HasCode(err, ErrCodeNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClientInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]any
	err := testHTTPClient().GetJSON(context.Background(), "test", srv.URL, &out)
	assert.True(t, HasCode(err, ErrCodeInvalidData))
}

const scheduleJSON = `{
  "dates": [{
    "date": "2025-07-04",
    "games": [
      {
        "gamePk": 777001,
        "gameDate": "2025-07-04T18:10:00Z",
        "status": {"detailedState": "Scheduled"},
        "teams": {
          "home": {"team": {"id": 117, "name": "Houston Astros"}, "probablePitcher": {"id": 1, "fullName": "Framber Valdez"}},
          "away": {"team": {"id": 136, "name": "Seattle Mariners"}}
        },
        "venue": {"name": "Daikin Park"},
        "lineups": {
          "homePlayers": [{"id": 10, "fullName": "Jose Altuve"}, {"id": 11, "fullName": " Yordan Alvarez "}],
          "awayPlayers": [{"id": 20, "fullName": "Julio Rodríguez"}]
        }
      },
      {
        "gamePk": 777002,
        "gameDate": "2025-07-04T17:05:00Z",
        "status": {"detailedState": "Final"},
        "teams": {
          "home": {"team": {"name": "New York Yankees"}},
          "away": {"team": {"name": "Boston Red Sox"}}
        }
      },
      {
        "gamePk": 777003,
        "gameDate": "2025-07-04T23:05:00Z",
        "status": {"detailedState": "Pre-Game"},
        "teams": {
          "home": {"team": {"name": "Colorado Rockies"}},
          "away": {"team": {"name": "Los Angeles Dodgers"}, "probablePitcher": {"fullName": "Tyler Glasnow"}}
        }
      },
      {
        "gamePk": 777004,
        "gameDate": "2025-07-04T23:05:00Z",
        "status": {"detailedState": "Scheduled"},
        "teams": {
          "home": {"team": {"name": "Springfield Isotopes"}},
          "away": {"team": {"name": "Shelbyville Shelbyvillians"}}
        }
      }
    ]
  }]
}`

func TestStatsAPIFetchSlate(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/schedule", r.URL.Path)
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(scheduleJSON))
	}))
	defer srv.Close()

	client := NewStatsAPIClient(testHTTPClient(), srv.URL+"/", quietLogger())
	slate, err := client.FetchSlate(context.Background(), testDate)
	require.NoError(t, err)

	assert.Contains(t, query, "date=2025-07-04")
	assert.Contains(t, query, "sportId=1")
	assert.Contains(t, query, "hydrate=probablePitcher%2Clineups")

	require.Len(t, slate.Games, 2)

	hou := slate.Games[0]
	assert.Equal(t, "HOU_SEA_2025-07-04", hou.ID)
	assert.Equal(t, "HOU", hou.HomeTeam)
	assert.Equal(t, "SEA", hou.AwayTeam)
	assert.Equal(t, "Daikin Park", hou.Ballpark.Name)
	assert.Equal(t, 1.18, hou.Ballpark.HRFactor)
	assert.Equal(t, 777001, hou.MLBGameID)
	assert.Equal(t, time.Date(2025, 7, 4, 18, 10, 0, 0, time.UTC), hou.GameTime)

	assert.Equal(t, models.Lineup{
		Home: []string{"Jose Altuve", "Yordan Alvarez"},
		Away: []string{"Julio Rodríguez"},
	}, slate.Lineups[hou.ID])
	assert.Equal(t, models.ProbablePitchers{Home: "Framber Valdez", Away: models.UnknownPitcher}, slate.Pitchers[hou.ID])

	col := slate.Games[1]
	assert.Equal(t, "COL_LAD_2025-07-04", col.ID)
	assert.Equal(t, "Coors Field", col.Ballpark.Name)
	_, hasLineup := slate.Lineups[col.ID]
	assert.False(t, hasLineup)
	assert.Equal(t, "Tyler Glasnow", slate.Pitchers[col.ID].Away)
}

func TestStatsAPIServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewStatsAPIClient(testHTTPClient(), srv.URL, quietLogger()).FetchSlate(context.Background(), testDate)
	assert.True(t, HasCode(err, ErrCodeAuthenticationFailed))
}

type recordedFallback struct {
	source, key, reason string
}

type fallbackRecorder struct {
	calls []recordedFallback
}

func (r *fallbackRecorder) LogFallbackUsed(source, key, reason string) {
	r.calls = append(r.calls, recordedFallback{source, key, reason})
}

func houGame() models.Game {
	return models.Game{
		ID:       "HOU_SEA_2025-07-04",
		HomeTeam: "HOU",
		AwayTeam: "SEA",
		Ballpark: models.Ballpark{Name: "Minute Maid Park", Latitude: 29.7572, Longitude: -95.3556, HRFactor: 1.18},
	}
}

func TestWeatherClientFetch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "imperial", r.URL.Query().Get("units"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "29.7572", r.URL.Query().Get("lat"))
		w.Write([]byte(`{"main": {"temp": 95.2, "humidity": 48}, "wind": {"speed": 18, "deg": 163}}`))
	}))
	defer srv.Close()

	rec := &fallbackRecorder{}
	client := NewWeatherClient(testHTTPClient(), WeatherClientConfig{
		APIURL:    srv.URL,
		APIKey:    "secret",
		DomeTeams: []string{"TB"},
		CacheTTL:  time.Minute,
	}, rec, quietLogger())

	got := client.Fetch(context.Background(), houGame())
	assert.Equal(t, models.WeatherSample{TempF: 95.2, Humidity: 48, WindSpeed: 18, WindDeg: 163, Source: models.WeatherSourceAPI}, got)

	again := client.Fetch(context.Background(), houGame())
	assert.Equal(t, got, again)
	assert.Equal(t, int32(1), calls.Load(), "second fetch should be served from cache")
	assert.Empty(t, rec.calls)
}

func TestWeatherClientDomeAndFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tests := []struct {
		name       string
		apiKey     string
		game       models.Game
		want       models.WeatherSample
		wantReason string
	}{
		{
			name:   "dome team",
			apiKey: "secret",
			game:   models.Game{ID: "TB_NYY_2025-07-04", HomeTeam: "TB", AwayTeam: "NYY"},
			want:   models.DomeWeather(),
		},
		{
			name:       "api rejects key",
			apiKey:     "bad",
			game:       houGame(),
			want:       fallback.Weather("HOU"),
			wantReason: "request failed: " + ErrCodeAuthenticationFailed,
		},
		{
			name:       "no key",
			game:       houGame(),
			want:       fallback.Weather("HOU"),
			wantReason: "no api key configured",
		},
		{
			name:       "no coordinates",
			apiKey:     "secret",
			game:       models.Game{ID: "XXX_SEA_2025-07-04", HomeTeam: "XXX", AwayTeam: "SEA"},
			want:       fallback.Weather("XXX"),
			wantReason: "missing ballpark coordinates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fallbackRecorder{}
			client := NewWeatherClient(testHTTPClient(), WeatherClientConfig{
				APIURL:    srv.URL,
				APIKey:    tt.apiKey,
				DomeTeams: []string{"TB"},
			}, rec, quietLogger())

			assert.Equal(t, tt.want, client.Fetch(context.Background(), tt.game))
			if tt.wantReason == "" {
				assert.Empty(t, rec.calls)
				return
			}
			require.Len(t, rec.calls, 1)
			assert.Equal(t, SourceOpenWeather, rec.calls[0].source)
			assert.Equal(t, tt.game.HomeTeam, rec.calls[0].key)
			assert.Equal(t, tt.wantReason, rec.calls[0].reason)
		})
	}
}

func TestWeatherClientFetchAll(t *testing.T) {
	client := NewWeatherClient(testHTTPClient(), WeatherClientConfig{DomeTeams: []string{"TB"}}, nil, quietLogger())
	games := []models.Game{
		{ID: "TB_NYY_2025-07-04", HomeTeam: "TB"},
		houGame(),
	}

	all := client.FetchAll(context.Background(), games)
	assert.Equal(t, models.DomeWeather(), all["TB_NYY_2025-07-04"])
	assert.Equal(t, fallback.Weather("HOU"), all["HOU_SEA_2025-07-04"])
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStatSnapshot(t *testing.T) {
	dir := t.TempDir()
	season := writeFile(t, dir, "season.json", `{
		"Aaron Judge": {"hr_per_pa": 0.08, "barrel_pct": 0.25, "bats": "R", "vs_lhp": 1.3},
		"Nobody Special": {}
	}`)
	pitchers := writeFile(t, dir, "pitchers.json", `{"Framber Valdez": {"hr_per_9": 0.9, "throws": "Left"}}`)
	statcast := writeFile(t, dir, "statcast.json", `{"Judge, Aaron": {"avg_ev": 96.1, "barrel_pct": 0.27}}`)

	snap, err := LoadStatSnapshot(StatFilePaths{
		Season:         season,
		Recent:         filepath.Join(dir, "missing.json"),
		Pitchers:       pitchers,
		StatcastRecent: statcast,
	})
	require.NoError(t, err)

	judge := snap.Season["Aaron Judge"]
	assert.Equal(t, "Aaron Judge", judge.Name)
	assert.Equal(t, 0.08, judge.HRPerPA)
	assert.Equal(t, models.HandRight, judge.Bats)
	assert.Equal(t, 1.3, judge.VsLHP)
	assert.Equal(t, 1.0, judge.VsRHP, "omitted split keeps neutral default")
	assert.NotNil(t, judge.BatterHistory)

	nobody := snap.Season["Nobody Special"]
	assert.Equal(t, models.HandUnknown, nobody.Bats)
	assert.Equal(t, 1.0, nobody.HotColdStreak)

	assert.Empty(t, snap.Recent)
	assert.Empty(t, snap.StatcastSeason)
	assert.Empty(t, snap.StatcastPitcher)

	valdez := snap.Pitchers["Framber Valdez"]
	assert.Equal(t, models.HandLeft, valdez.Throws)
	assert.Equal(t, 0.9, valdez.HRPer9)
	assert.Equal(t, 75, valdez.RecentWorkload, "omitted workload keeps neutral default")

	assert.Equal(t, 96.1, snap.StatcastRecent["Judge, Aaron"].AvgEV)
}

func TestLoadStatSnapshotErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadStatSnapshot(StatFilePaths{Season: filepath.Join(dir, "nope.json")})
	assert.True(t, HasCode(err, ErrCodeNotFound))

	bad := writeFile(t, dir, "bad.json", `{"Aaron Judge": {"hr_per_pa": "lots"}}`)
	_, err = LoadStatSnapshot(StatFilePaths{Season: bad})
	assert.True(t, HasCode(err, ErrCodeInvalidData))

	good := writeFile(t, dir, "good.json", `{}`)
	broken := writeFile(t, dir, "broken.json", `[`)
	_, err = LoadStatSnapshot(StatFilePaths{Season: good, Pitchers: broken})
	assert.True(t, HasCode(err, ErrCodeInvalidData))
}

func TestLoadHandedness(t *testing.T) {
	dir := t.TempDir()
	batters := writeFile(t, dir, "batters.csv", "name,bats\nAaron Judge,R\nShohei Ohtani, L\nKetel Marte,S\nMystery Man,?\n")
	pitchers := writeFile(t, dir, "pitchers.csv", "Player,Throws\nFramber Valdez,L\nShohei Ohtani,R\n")

	table, err := LoadHandedness(batters, filepath.Join(dir, "absent.csv"), pitchers)
	require.NoError(t, err)

	assert.Equal(t, map[string]models.Handedness{
		"Aaron Judge":   models.HandRight,
		"Shohei Ohtani": models.HandLeft,
		"Ketel Marte":   models.HandSwitch,
	}, table.Batters)
	assert.Equal(t, map[string]models.Handedness{
		"Framber Valdez": models.HandLeft,
		"Shohei Ohtani":  models.HandRight,
	}, table.Pitchers)
}

func TestLoadHandednessBadHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.csv", "who,what\nA,B\n")

	_, err := LoadHandedness(path)
	assert.True(t, HasCode(err, ErrCodeInvalidData))
}

const lineupPage = `<html><body>
<div class="lineup is-mlb">
  <div class="lineup__abbr">SEA</div>
  <div class="lineup__abbr">HOU</div>
  <ul class="lineup__list is-visit">
    <li class="lineup__player-highlight"><div class="lineup__player-highlight-name"><a title="Logan Gilbert">L. Gilbert</a></div></li>
    <li class="lineup__player"><a title="Julio Rodríguez">J. Rodriguez</a></li>
    <li class="lineup__player"><a>Cal Raleigh</a></li>
  </ul>
  <ul class="lineup__list is-home">
    <li class="lineup__player"><a title="Jose Altuve">J. Altuve</a></li>
  </ul>
</div>
<div class="lineup is-mlb">
  <div class="lineup__abbr">LAD</div>
  <div class="lineup__abbr">COL</div>
  <ul class="lineup__list is-visit"></ul>
  <ul class="lineup__list is-home"></ul>
</div>
<div class="lineup is-tools"><div class="lineup__abbr">???</div></div>
</body></html>`

func TestParseLineupPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(lineupPage))
	require.NoError(t, err)

	page := ParseLineupPage(doc, testDate)

	assert.Equal(t, map[string]models.Lineup{
		"HOU_SEA_2025-07-04": {
			Home: []string{"Jose Altuve"},
			Away: []string{"Julio Rodríguez", "Cal Raleigh"},
		},
	}, page.Lineups)
	assert.Equal(t, models.ProbablePitchers{Home: models.UnknownPitcher, Away: "Logan Gilbert"}, page.Pitchers["HOU_SEA_2025-07-04"])
	assert.Contains(t, page.Pitchers, "COL_LAD_2025-07-04")
	assert.Len(t, page.Pitchers, 2)
}

func TestLineupPageClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(lineupPage))
	}))
	defer srv.Close()

	page, err := NewLineupPageClient(testHTTPClient(), srv.URL, quietLogger()).Fetch(context.Background(), testDate)
	require.NoError(t, err)
	assert.Len(t, page.Lineups, 1)
}
