package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/yourusername/hr-predictor/internal/models"
)

// StatSnapshot is everything the upstream collectors wrote to disk for one day
type StatSnapshot struct {
	Season          map[string]models.PlayerStats
	Recent          map[string]models.PlayerStats
	Pitchers        map[string]models.PitcherStats
	StatcastRecent  map[string]models.StatcastBatter
	StatcastSeason  map[string]models.StatcastBatter
	StatcastPitcher map[string]models.StatcastPitcher
}

// StatFilePaths lists the snapshot files. Empty Statcast paths are skipped.
type StatFilePaths struct {
	Season          string
	Recent          string
	Pitchers        string
	StatcastRecent  string
	StatcastSeason  string
	StatcastPitcher string
}

// LoadStatSnapshot reads every snapshot file. The season batter file is
// required; every other file is optional and yields an empty map when absent.
func LoadStatSnapshot(paths StatFilePaths) (*StatSnapshot, error) {
	season, err := LoadPlayerStats(paths.Season)
	if err != nil {
		return nil, err
	}

	snap := &StatSnapshot{Season: season}

	if snap.Recent, err = optional[models.PlayerStats](LoadPlayerStats(paths.Recent)); err != nil {
		return nil, err
	}
	if snap.Pitchers, err = optional[models.PitcherStats](LoadPitcherStats(paths.Pitchers)); err != nil {
		return nil, err
	}
	if snap.StatcastRecent, err = optional[models.StatcastBatter](loadJSONMap[models.StatcastBatter](paths.StatcastRecent)); err != nil {
		return nil, err
	}
	if snap.StatcastSeason, err = optional[models.StatcastBatter](loadJSONMap[models.StatcastBatter](paths.StatcastSeason)); err != nil {
		return nil, err
	}
	if snap.StatcastPitcher, err = optional[models.StatcastPitcher](loadJSONMap[models.StatcastPitcher](paths.StatcastPitcher)); err != nil {
		return nil, err
	}
	return snap, nil
}

// LoadPlayerStats reads a name keyed JSON object of batter stat lines. Each
// record starts from models.DefaultPlayerStats so omitted fields are neutral.
func LoadPlayerStats(path string) (map[string]models.PlayerStats, error) {
	raw, err := loadJSONMap[json.RawMessage](path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.PlayerStats, len(raw))
	for name, msg := range raw {
		s := models.DefaultPlayerStats(name)
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, NewDataSourceError(SourceStatFiles, ErrCodeInvalidData, fmt.Sprintf("%s: batter %q", path, name), err)
		}
		s.Name = name
		s.Bats = models.ParseHandedness(string(s.Bats))
		if s.BatterHistory == nil {
			s.BatterHistory = make(map[string]float64)
		}
		out[name] = s
	}
	return out, nil
}

// LoadPitcherStats reads a name keyed JSON object of pitcher stat lines
func LoadPitcherStats(path string) (map[string]models.PitcherStats, error) {
	raw, err := loadJSONMap[json.RawMessage](path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.PitcherStats, len(raw))
	for name, msg := range raw {
		p := models.DefaultPitcherStats(name)
		if err := json.Unmarshal(msg, &p); err != nil {
			return nil, NewDataSourceError(SourceStatFiles, ErrCodeInvalidData, fmt.Sprintf("%s: pitcher %q", path, name), err)
		}
		p.Name = name
		p.Throws = models.ParseHandedness(string(p.Throws))
		out[name] = p
	}
	return out, nil
}

func loadJSONMap[T any](path string) (map[string]T, error) {
	if path == "" {
		return nil, NewDataSourceError(SourceStatFiles, ErrCodeNotFound, "no path configured", nil)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, NewDataSourceError(SourceStatFiles, ErrCodeNotFound, path, err)
	}
	if err != nil {
		return nil, NewDataSourceError(SourceStatFiles, ErrCodeUnknown, path, err)
	}

	var out map[string]T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, NewDataSourceError(SourceStatFiles, ErrCodeInvalidData, path, err)
	}
	if out == nil {
		out = make(map[string]T)
	}
	return out, nil
}

func optional[T any](m map[string]T, err error) (map[string]T, error) {
	if HasCode(err, ErrCodeNotFound) {
		return make(map[string]T), nil
	}
	return m, err
}

// StatFiles loads the day's stat snapshot and handedness tables from disk
type StatFiles struct {
	Paths           StatFilePaths
	HandednessPaths []string
}

// LoadStats reads the stat snapshot
func (f StatFiles) LoadStats(_ context.Context) (*StatSnapshot, error) {
	return LoadStatSnapshot(f.Paths)
}

// LoadHandedness reads every configured handedness CSV
func (f StatFiles) LoadHandedness(_ context.Context) (*HandednessTable, error) {
	return LoadHandedness(f.HandednessPaths...)
}
