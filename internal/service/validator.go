package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/hr-predictor/internal/models"
)

// placeholderTokens mark lineup slots that were never filled with a real name
var placeholderTokens = []string{"player", "batter", "tbd", "unknown"}

// Skip reasons, used as metric labels
const (
	ReasonNoLineup    = "no_lineup"
	ReasonNoGameData  = "no_game_data"
	ReasonInvalidName = "invalid_name"
	ReasonPlaceholder = "placeholder"
	ReasonNoStats     = "no_stats"
	ReasonSimulated   = "simulated"
	ReasonError       = "error"
)

// ValidateBatter checks that a lineup entry names a real player with real
// stats and returns that player's season record.
func ValidateBatter(name string, season map[string]models.PlayerStats) (models.PlayerStats, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.PlayerStats{}, fmt.Errorf("%w: empty name", models.ErrInvalidBatter)
	}

	lower := strings.ToLower(trimmed)
	for _, token := range placeholderTokens {
		if strings.Contains(lower, token) {
			return models.PlayerStats{}, fmt.Errorf("%w: %q", models.ErrPlaceholderName, trimmed)
		}
	}

	if len(strings.Fields(trimmed)) < 2 {
		return models.PlayerStats{}, fmt.Errorf("%w: %q has no last name", models.ErrInvalidBatter, trimmed)
	}

	stats, ok := season[name]
	if !ok {
		return models.PlayerStats{}, fmt.Errorf("%w: %s", models.ErrNoStats, name)
	}
	if stats.Simulated {
		return models.PlayerStats{}, fmt.Errorf("%w: %s", models.ErrSimulatedStats, name)
	}
	return stats, nil
}

// IsValidationError reports whether err is an expected data skip rather than a failure
func IsValidationError(err error) bool {
	return SkipReason(err) != ReasonError
}

// SkipReason maps a batter or game error to its metric label
func SkipReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidBatter):
		return ReasonInvalidName
	case errors.Is(err, models.ErrPlaceholderName):
		return ReasonPlaceholder
	case errors.Is(err, models.ErrNoStats):
		return ReasonNoStats
	case errors.Is(err, models.ErrSimulatedStats):
		return ReasonSimulated
	case errors.Is(err, models.ErrNoLineup):
		return ReasonNoLineup
	case errors.Is(err, models.ErrNoGameData):
		return ReasonNoGameData
	default:
		return ReasonError
	}
}

// sanitizeLineup drops batting orders that are really full rosters
func sanitizeLineup(batters []string, maxSize int) ([]string, bool) {
	if maxSize > 0 && len(batters) > maxSize {
		return nil, true
	}
	return batters, false
}
