// Package tiers ranks predictions and splits the best of them into locks,
// hot picks and sleepers.
package tiers

import (
	"cmp"
	"math"
	"slices"

	"github.com/yourusername/hr-predictor/internal/models"
)

// MinQuantileSample is the smallest slice that is tiered by quantiles
const MinQuantileSample = 5

// Rank sorts predictions by descending probability. Ties keep a stable,
// name-based order so repeated runs produce the same report.
func Rank(preds []models.Prediction) {
	slices.SortStableFunc(preds, func(a, b models.Prediction) int {
		if c := cmp.Compare(b.HRProbability, a.HRProbability); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Player, b.Player); c != 0 {
			return c
		}
		return cmp.Compare(a.GameID, b.GameID)
	})
}

// Categorize splits the first topN ranked predictions into three tiers. Each
// prediction of the slice lands in exactly one tier. preds must already be
// ranked; topN <= 0 or larger than the slice means all of it.
func Categorize(preds []models.Prediction, topN int, lockQ, hotQ float64) models.Tiers {
	n := len(preds)
	if topN > 0 && topN < n {
		n = topN
	}
	top := preds[:n]

	if n == 0 {
		return models.Tiers{}
	}
	if n >= MinQuantileSample {
		return byQuantile(top, lockQ, hotQ)
	}
	return byCount(top)
}

func byQuantile(top []models.Prediction, lockQ, hotQ float64) models.Tiers {
	probs := make([]float64, len(top))
	for i, p := range top {
		probs[i] = p.HRProbability
	}
	slices.Sort(probs)

	lockAt := Quantile(probs, lockQ)
	hotAt := Quantile(probs, hotQ)

	var t models.Tiers
	for _, p := range top {
		switch {
		case p.HRProbability >= lockAt:
			t.Locks = append(t.Locks, p)
		case p.HRProbability >= hotAt:
			t.HotPicks = append(t.HotPicks, p)
		default:
			t.Sleepers = append(t.Sleepers, p)
		}
	}
	return t
}

func byCount(top []models.Prediction) models.Tiers {
	n := len(top)
	locks := min(n, max(1, n/5))
	hot := min(n-locks, max(1, n/3))

	return models.Tiers{
		Locks:    slices.Clone(top[:locks]),
		HotPicks: slices.Clone(top[locks : locks+hot]),
		Sleepers: slices.Clone(top[locks+hot:]),
	}
}

// Quantile returns the q-th quantile of ascending values, interpolating
// linearly between the closest ranks
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	q = math.Max(0, math.Min(1, q))

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
