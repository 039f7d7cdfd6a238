package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/hr-predictor/internal/models"
)

// TrackingFile is the name of the log inside the tracking directory
const TrackingFile = "prediction_log.json"

// Tier names used in the tracking log
const (
	TierLock    = "lock"
	TierHotPick = "hot_pick"
	TierSleeper = "sleeper"
)

// TrackedPick is one prediction as recorded for later accuracy checks
type TrackedPick struct {
	Tier        string          `json:"tier"`
	Player      string          `json:"player"`
	Team        string          `json:"team"`
	Opponent    string          `json:"opponent"`
	Pitcher     string          `json:"pitcher"`
	GameID      string          `json:"game_id"`
	Probability decimal.Decimal `json:"probability"`
	Odds        string          `json:"odds"`
	// HitHomeRun is filled in once results are known
	HitHomeRun *bool `json:"hit_home_run,omitempty"`
}

// DayEntry is the tracked output of the latest run of one day
type DayEntry struct {
	Date       string        `json:"date"`
	Label      string        `json:"label"`
	RunID      string        `json:"run_id"`
	RecordedAt time.Time     `json:"recorded_at"`
	Picks      []TrackedPick `json:"picks"`
}

// Tracker appends each day's tiers to a JSON log keyed by date. A later run
// on the same day replaces the earlier entry.
type Tracker struct {
	dir string
	now func() time.Time
}

// NewTracker creates a tracker writing into dir
func NewTracker(dir string) *Tracker {
	return &Tracker{dir: dir, now: time.Now}
}

// Path returns the log file location
func (t *Tracker) Path() string {
	return filepath.Join(t.dir, TrackingFile)
}

// Load reads the whole log. A missing file is an empty log.
func (t *Tracker) Load() (map[string]DayEntry, error) {
	data, err := os.ReadFile(t.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]DayEntry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking log: %w", err)
	}

	entries := make(map[string]DayEntry)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse tracking log: %w", err)
	}
	return entries, nil
}

// Record stores the tiers under the date's key and returns the log path
func (t *Tracker) Record(date time.Time, label, runID string, tiers models.Tiers) (string, error) {
	entries, err := t.Load()
	if err != nil {
		return "", err
	}

	day := date.Format(models.DateLayout)
	entries[day] = DayEntry{
		Date:       day,
		Label:      label,
		RunID:      runID,
		RecordedAt: t.now().UTC(),
		Picks:      trackedPicks(tiers),
	}

	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create tracking directory: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tracking log: %w", err)
	}

	// replace atomically
	tmp := t.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write tracking log: %w", err)
	}
	if err := os.Rename(tmp, t.Path()); err != nil {
		return "", fmt.Errorf("failed to replace tracking log: %w", err)
	}
	return t.Path(), nil
}

func trackedPicks(tiers models.Tiers) []TrackedPick {
	picks := make([]TrackedPick, 0, tiers.Len())
	add := func(tier string, preds []models.Prediction) {
		for _, p := range preds {
			picks = append(picks, TrackedPick{
				Tier:        tier,
				Player:      p.Player,
				Team:        p.Team,
				Opponent:    p.Opponent,
				Pitcher:     p.OpponentPitcher,
				GameID:      p.GameID,
				Probability: decimal.NewFromFloat(p.HRProbability).Round(4),
				Odds:        AmericanOdds(p.HRProbability),
			})
		}
	}
	add(TierLock, tiers.Locks)
	add(TierHotPick, tiers.HotPicks)
	add(TierSleeper, tiers.Sleepers)
	return picks
}
