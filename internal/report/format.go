// Package report renders ranked predictions for delivery and keeps the
// day-keyed tracking log.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/hr-predictor/internal/models"
)

// Run labels
const (
	LabelEarly  = "Early"
	LabelMidday = "Midday"
)

var hundred = decimal.NewFromInt(100)

// RunLabel names a run by the local time it starts at
func RunLabel(t time.Time) string {
	if t.Hour() < 12 {
		return LabelEarly
	}
	return LabelMidday
}

// Percent renders a probability as a percentage with one decimal, "9.8%"
func Percent(p float64) string {
	return decimal.NewFromFloat(p).Mul(hundred).StringFixed(1) + "%"
}

// AmericanOdds converts a probability to its fair American moneyline,
// "+920" for underdogs and "-150" for favourites. Probabilities outside (0,1)
// have no line and render as "n/a".
func AmericanOdds(p float64) string {
	if !(p > 0 && p < 1) {
		return "n/a"
	}
	prob := decimal.NewFromFloat(p)
	rest := decimal.NewFromInt(1).Sub(prob)

	if prob.LessThan(decimal.NewFromFloat(0.5)) {
		return "+" + rest.Div(prob).Mul(hundred).Round(0).String()
	}
	return "-" + prob.Div(rest).Mul(hundred).Round(0).String()
}

// Format renders the tiers as a Telegram message
func Format(date time.Time, label string, t models.Tiers) string {
	var b strings.Builder

	fmt.Fprintf(&b, "⚾ MLB Home Run Picks | %s | %s run\n", date.Format(models.DateLayout), label)

	if t.Len() == 0 {
		b.WriteString("\nNo predictions today.\n")
		return b.String()
	}

	rank := 1
	for _, section := range []struct {
		title string
		preds []models.Prediction
	}{
		{"🔒 LOCKS", t.Locks},
		{"🔥 HOT PICKS", t.HotPicks},
		{"💤 SLEEPERS", t.Sleepers},
	} {
		if len(section.preds) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", section.title)
		for _, p := range section.preds {
			writePick(&b, rank, p)
			rank++
		}
	}

	b.WriteString("\nProbabilities are model estimates, not guarantees.\n")
	return b.String()
}

func writePick(b *strings.Builder, rank int, p models.Prediction) {
	venue := "vs"
	if !p.IsHomeTeam {
		venue = "@"
	}
	fmt.Fprintf(b, "%d. %s (%s) %s %s: %s (%s)\n",
		rank, p.Player, p.Team, venue, p.Opponent, Percent(p.HRProbability), AmericanOdds(p.HRProbability))

	details := []string{"SP " + p.OpponentPitcher}
	if p.PlatoonEdge {
		details = append(details, "platoon edge")
	}
	details = append(details, fmt.Sprintf("%s x%s", p.Ballpark, decimal.NewFromFloat(p.BallparkFactor).StringFixed(2)))
	if p.WeatherTemp != 0 || p.WeatherWind != 0 {
		details = append(details, fmt.Sprintf("%.0f°F, wind %.0f mph", p.WeatherTemp, p.WeatherWind))
	}
	fmt.Fprintf(b, "   %s\n", strings.Join(details, " | "))
}
