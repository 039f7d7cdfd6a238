package service

import (
	"github.com/yourusername/hr-predictor/internal/datasource"
	"github.com/yourusername/hr-predictor/internal/logger"
	"github.com/yourusername/hr-predictor/internal/metrics"
	"github.com/yourusername/hr-predictor/internal/models"
	"github.com/yourusername/hr-predictor/internal/names"
)

const (
	sourceStatcast = "statcast"

	// StatcastMatchWarnBelow is the batter coverage under which a Statcast merge is suspicious
	StatcastMatchWarnBelow = 0.2
	// UnknownHandednessWarnAbove is the share of unknown sides that triggers a warning
	UnknownHandednessWarnAbove = 0.3
)

// roster is every batter and announced starter on a slate, in slate order
type roster struct {
	batters  []string
	pitchers []string
}

func slateRoster(slate *models.Slate, maxLineupSize int) roster {
	var r roster
	seenBatters := make(map[string]bool)
	seenPitchers := make(map[string]bool)

	for _, g := range slate.Games {
		lineup := slate.Lineups[g.ID]
		for _, side := range [][]string{lineup.Home, lineup.Away} {
			batters, _ := sanitizeLineup(side, maxLineupSize)
			for _, b := range batters {
				if b != "" && !seenBatters[b] {
					seenBatters[b] = true
					r.batters = append(r.batters, b)
				}
			}
		}

		pp := slate.Pitchers[g.ID]
		for _, name := range []string{pp.Home, pp.Away} {
			if models.IsKnownPitcher(name) && !seenPitchers[name] {
				seenPitchers[name] = true
				r.pitchers = append(r.pitchers, name)
			}
		}
	}
	return r
}

func ensureSnapshot(stats *datasource.StatSnapshot) {
	if stats.Season == nil {
		stats.Season = make(map[string]models.PlayerStats)
	}
	if stats.Recent == nil {
		stats.Recent = make(map[string]models.PlayerStats)
	}
	if stats.Pitchers == nil {
		stats.Pitchers = make(map[string]models.PitcherStats)
	}
}

// enrich folds the auxiliary Statcast and handedness tables into the stat
// snapshot. Auxiliary tables may spell names differently, so they are
// re-keyed through resolvers built from the slate's own names.
func enrich(log *logger.PredictionLogger, stats *datasource.StatSnapshot, hands *datasource.HandednessTable, r roster) {
	batters := names.NewResolver(r.batters)
	pitchers := names.NewResolver(r.pitchers)

	for _, c := range batters.Collisions() {
		log.WithField("variant", c.Variant).
			WithField("previous", c.Previous).
			WithField("winner", c.Winner).
			Debug("Name variant claimed by two players")
	}

	mergeStatcast(log, stats, batters, pitchers, r)
	if hands != nil {
		recoverHandedness(log, stats, hands, batters, pitchers)
	}
	reportHandedness(log, stats, r)
}

func mergeStatcast(log *logger.PredictionLogger, stats *datasource.StatSnapshot, batters, pitchers *names.Resolver, r roster) {
	logVariantMatches(log, sourceStatcast, batters, stats.StatcastRecent)
	logVariantMatches(log, sourceStatcast, batters, stats.StatcastSeason)

	// recent profiles first so seasonal ones only fill gaps
	profiles := make(map[string]models.StatcastBatter)
	names.Remap(batters, stats.StatcastRecent, profiles)
	names.Remap(batters, stats.StatcastSeason, profiles)

	matched := 0
	for _, name := range r.batters {
		profile, ok := profiles[name]
		if !ok {
			continue
		}
		matched++
		if rec, ok := stats.Season[name]; ok {
			profile.Apply(&rec)
			stats.Season[name] = rec
		}
	}

	log.LogMatchRate(sourceStatcast, matched, len(r.batters), StatcastMatchWarnBelow)
	if len(r.batters) > 0 {
		metrics.UpdateNameMatchRate(sourceStatcast, float64(matched)/float64(len(r.batters)))
	}

	pitcherProfiles := make(map[string]models.StatcastPitcher)
	names.Remap(pitchers, stats.StatcastPitcher, pitcherProfiles)
	for name, profile := range pitcherProfiles {
		rec, ok := stats.Pitchers[name]
		if !ok {
			rec = models.DefaultPitcherStats(name)
		}
		profile.Apply(&rec)
		stats.Pitchers[name] = rec
	}
}

func recoverHandedness(log *logger.PredictionLogger, stats *datasource.StatSnapshot, hands *datasource.HandednessTable, batters, pitchers *names.Resolver) {
	logVariantMatches(log, datasource.SourceHandedness, batters, hands.Batters)
	logVariantMatches(log, datasource.SourceHandedness, pitchers, hands.Pitchers)

	bats := make(map[string]models.Handedness)
	names.Remap(batters, hands.Batters, bats)
	throws := make(map[string]models.Handedness)
	names.Remap(pitchers, hands.Pitchers, throws)

	recovered := 0
	for _, window := range []map[string]models.PlayerStats{stats.Season, stats.Recent} {
		for name, rec := range window {
			if rec.Bats.IsKnown() {
				continue
			}
			if h, ok := bats[name]; ok {
				rec.Bats = h
				window[name] = rec
				recovered++
			}
		}
	}

	for name, h := range throws {
		rec, ok := stats.Pitchers[name]
		if !ok {
			rec = models.DefaultPitcherStats(name)
		}
		if rec.Throws.IsKnown() {
			continue
		}
		rec.Throws = h
		stats.Pitchers[name] = rec
		recovered++
	}

	log.WithField("recovered", recovered).Debug("Handedness recovered from auxiliary table")
}

func reportHandedness(log *logger.PredictionLogger, stats *datasource.StatSnapshot, r roster) {
	batterHands := make([]models.Handedness, 0, len(r.batters))
	for _, name := range r.batters {
		if rec, ok := stats.Season[name]; ok {
			batterHands = append(batterHands, rec.Bats)
		}
	}

	pitcherHands := make([]models.Handedness, 0, len(r.pitchers))
	for _, name := range r.pitchers {
		h := models.HandUnknown
		if rec, ok := stats.Pitchers[name]; ok {
			h = rec.Throws
		}
		pitcherHands = append(pitcherHands, h)
	}

	for role, hands := range map[string][]models.Handedness{"batters": batterHands, "pitchers": pitcherHands} {
		if len(hands) == 0 {
			continue
		}
		counts, ratio := handednessDistribution(hands)
		log.LogHandedness(role, counts, ratio, UnknownHandednessWarnAbove)
		metrics.UpdateUnknownHandedness(role, ratio)
	}
}

// handednessDistribution counts each side and returns the unknown share
func handednessDistribution(hands []models.Handedness) (map[string]int, float64) {
	counts := make(map[string]int)
	unknown := 0
	for _, h := range hands {
		if !h.IsKnown() {
			h = models.HandUnknown
			unknown++
		}
		counts[string(h)]++
	}
	if len(hands) == 0 {
		return counts, 0
	}
	return counts, float64(unknown) / float64(len(hands))
}

func logVariantMatches[T any](log *logger.PredictionLogger, source string, r *names.Resolver, src map[string]T) {
	for key := range src {
		if name, ok := r.Canonical(key); ok && name != key {
			log.LogNameMatch(source, name, key)
		}
	}
}
