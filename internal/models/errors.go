package models

import "errors"

// Custom errors
var (
	ErrNoGames         = errors.New("no upcoming games found")
	ErrNoPredictions   = errors.New("no predictions generated")
	ErrNoLineup        = errors.New("no lineup data for game")
	ErrNoGameData      = errors.New("no lineup or pitcher data for game")
	ErrInvalidBatter   = errors.New("invalid batter name")
	ErrPlaceholderName = errors.New("placeholder batter name")
	ErrNoStats         = errors.New("no stats for batter")
	ErrSimulatedStats  = errors.New("batter stats are simulated")
)
