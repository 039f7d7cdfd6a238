package datasource

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hr-predictor/internal/ballpark"
	"github.com/yourusername/hr-predictor/internal/models"
)

// LineupPageClient scrapes projected lineups and starters from a daily
// lineups web page. It fills in games the Stats API has no lineup for yet.
type LineupPageClient struct {
	httpClient *RateLimitedHTTPClient
	pageURL    string
	logger     *logrus.Entry
}

// PageLineups is what a lineup page yields, keyed by game ID
type PageLineups struct {
	Lineups  map[string]models.Lineup
	Pitchers map[string]models.ProbablePitchers
}

// NewLineupPageClient creates a lineup page scraper
func NewLineupPageClient(httpClient *RateLimitedHTTPClient, pageURL string, logger *logrus.Logger) *LineupPageClient {
	return &LineupPageClient{
		httpClient: httpClient,
		pageURL:    pageURL,
		logger:     logger.WithField("component", SourceLineupPage),
	}
}

// Name returns the name of the data source
func (c *LineupPageClient) Name() string {
	return SourceLineupPage
}

// Fetch downloads and parses the lineup page for date
func (c *LineupPageClient) Fetch(ctx context.Context, date time.Time) (*PageLineups, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL, nil)
	if err != nil {
		return nil, NewDataSourceError(SourceLineupPage, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(SourceLineupPage, ErrCodeNetworkError, "failed to fetch lineup page", err)
	}
	defer resp.Body.Close()

	if err := CheckStatus(SourceLineupPage, resp); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, NewDataSourceError(SourceLineupPage, ErrCodeInvalidData, "failed to parse page", err)
	}

	page := ParseLineupPage(doc, date)
	c.logger.WithField("games", len(page.Lineups)).Info("Parsed lineup page")
	return page, nil
}

// ParseLineupPage extracts every lineup card. A card lists the away club
// first, then the home club; players prefer the full name in the link title.
func ParseLineupPage(doc *goquery.Document, date time.Time) *PageLineups {
	page := &PageLineups{
		Lineups:  make(map[string]models.Lineup),
		Pitchers: make(map[string]models.ProbablePitchers),
	}

	doc.Find("div.lineup").Each(func(_ int, card *goquery.Selection) {
		var codes []string
		card.Find(".lineup__abbr").Each(func(_ int, s *goquery.Selection) {
			if code, ok := ballpark.TeamCode(strings.TrimSpace(s.Text())); ok {
				codes = append(codes, code)
			}
		})
		if len(codes) != 2 || codes[0] == codes[1] {
			return
		}
		away, home := codes[0], codes[1]
		id := models.GameID(home, away, date)

		lineup := models.Lineup{
			Home: players(card.Find("ul.lineup__list.is-home")),
			Away: players(card.Find("ul.lineup__list.is-visit")),
		}
		if len(lineup.Home) > 0 || len(lineup.Away) > 0 {
			page.Lineups[id] = lineup
		}
		page.Pitchers[id] = models.ProbablePitchers{
			Home: starter(card.Find("ul.lineup__list.is-home")),
			Away: starter(card.Find("ul.lineup__list.is-visit")),
		}
	})

	return page
}

func players(list *goquery.Selection) []string {
	var out []string
	list.Find("li.lineup__player a").Each(func(_ int, a *goquery.Selection) {
		if name := linkName(a); name != "" {
			out = append(out, name)
		}
	})
	return out
}

func starter(list *goquery.Selection) string {
	name := linkName(list.Find(".lineup__player-highlight-name a").First())
	if name == "" {
		return models.UnknownPitcher
	}
	return name
}

func linkName(a *goquery.Selection) string {
	if title, ok := a.Attr("title"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	return strings.TrimSpace(a.Text())
}
