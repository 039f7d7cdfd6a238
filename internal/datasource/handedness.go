package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/yourusername/hr-predictor/internal/models"
)

// HandednessTable maps player names to batting and throwing sides
type HandednessTable struct {
	Batters  map[string]models.Handedness
	Pitchers map[string]models.Handedness
}

// NewHandednessTable returns an empty table
func NewHandednessTable() *HandednessTable {
	return &HandednessTable{
		Batters:  make(map[string]models.Handedness),
		Pitchers: make(map[string]models.Handedness),
	}
}

// LoadHandedness reads every CSV file into one table. Files need a header row
// with a name column and at least one of bats or throws. Missing files are
// skipped so a partial set still loads; later files win on duplicate names.
func LoadHandedness(paths ...string) (*HandednessTable, error) {
	table := NewHandednessTable()
	for _, path := range paths {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, NewDataSourceError(SourceHandedness, ErrCodeUnknown, path, err)
		}
		err = table.Read(f)
		f.Close()
		if err != nil {
			return nil, NewDataSourceError(SourceHandedness, ErrCodeInvalidData, path, err)
		}
	}
	return table, nil
}

// Read merges one CSV document into the table
func (t *HandednessTable) Read(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	nameCol, batsCol, throwsCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name", "player", "player_name":
			nameCol = i
		case "bats", "bat_side", "batter_hand":
			batsCol = i
		case "throws", "pitch_hand", "pitcher_hand":
			throwsCol = i
		}
	}
	if nameCol < 0 || (batsCol < 0 && throwsCol < 0) {
		return fmt.Errorf("header %v needs a name column and a bats or throws column", header)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		name := field(rec, nameCol)
		if name == "" {
			continue
		}
		if h := models.ParseHandedness(field(rec, batsCol)); h.IsKnown() {
			t.Batters[name] = h
		}
		if h := models.ParseHandedness(field(rec, throwsCol)); h.IsKnown() {
			t.Pitchers[name] = h
		}
	}
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
