package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hr-predictor/internal/datasource"
	"github.com/yourusername/hr-predictor/internal/logger"
	"github.com/yourusername/hr-predictor/internal/metrics"
	"github.com/yourusername/hr-predictor/internal/models"
	"github.com/yourusername/hr-predictor/internal/report"
	"github.com/yourusername/hr-predictor/internal/tiers"
)

// SlateSource provides the day's schedule with probable pitchers and lineups
type SlateSource interface {
	FetchSlate(ctx context.Context, date time.Time) (*models.Slate, error)
}

// LineupSource supplements lineups the schedule does not have yet
type LineupSource interface {
	Fetch(ctx context.Context, date time.Time) (*datasource.PageLineups, error)
}

// WeatherSource returns conditions for every game. It never fails.
type WeatherSource interface {
	FetchAll(ctx context.Context, games []models.Game) map[string]models.WeatherSample
}

// StatsSource loads the stat snapshot and the handedness tables
type StatsSource interface {
	LoadStats(ctx context.Context) (*datasource.StatSnapshot, error)
	LoadHandedness(ctx context.Context) (*datasource.HandednessTable, error)
}

// Publisher delivers a formatted report and returns how many messages it took
type Publisher interface {
	Name() string
	Send(ctx context.Context, text string) (int, error)
}

// Tracker records each day's tiers for later accuracy checks
type Tracker interface {
	Record(date time.Time, label, runID string, tiers models.Tiers) (string, error)
}

// PipelineOptions tunes tiering and delivery
type PipelineOptions struct {
	TopN         int
	LockQuantile float64
	HotQuantile  float64
	// DryRun formats the report without tracking or sending it
	DryRun   bool
	Location *time.Location
}

// RunRequest selects what one run predicts
type RunRequest struct {
	Date time.Time
	// GameIDs restricts the run to these games; empty means all
	GameIDs []string
	// Label overrides the early/midday label derived from the clock
	Label string
}

// RunReport is the outcome of one successful run
type RunReport struct {
	RunID        uuid.UUID
	Label        string
	Date         time.Time
	Result       *Result
	Tiers        models.Tiers
	Message      string
	TrackingPath string
	Sent         bool
}

// Pipeline wires the collaborators around the predictor
type Pipeline struct {
	slates    SlateSource
	lineups   LineupSource
	weather   WeatherSource
	stats     StatsSource
	predictor *Predictor
	publisher Publisher
	tracker   Tracker
	opts      PipelineOptions
	delivery  *logger.DeliveryLogger
	logger    *logrus.Entry
	now       func() time.Time
}

// PipelineDeps groups the collaborators. LineupSource, Publisher and Tracker are optional.
type PipelineDeps struct {
	Slates    SlateSource
	Lineups   LineupSource
	Weather   WeatherSource
	Stats     StatsSource
	Predictor *Predictor
	Publisher Publisher
	Tracker   Tracker
}

// NewPipeline creates a pipeline
func NewPipeline(deps PipelineDeps, opts PipelineOptions, log *logrus.Logger) *Pipeline {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Pipeline{
		slates:    deps.Slates,
		lineups:   deps.Lineups,
		weather:   deps.Weather,
		stats:     deps.Stats,
		predictor: deps.Predictor,
		publisher: deps.Publisher,
		tracker:   deps.Tracker,
		opts:      opts,
		delivery:  logger.NewDeliveryLogger(log),
		logger:    log.WithField("component", "pipeline"),
		now:       time.Now,
	}
}

// Run executes one complete prediction run. It fails without producing a
// report when there are no games or no predictions.
func (p *Pipeline) Run(ctx context.Context, req RunRequest) (*RunReport, error) {
	start := p.now()
	runID := uuid.New()

	label := req.Label
	if label == "" {
		label = report.RunLabel(start.In(p.opts.Location))
	}
	date := req.Date
	if date.IsZero() {
		date = start.In(p.opts.Location)
	}

	out, err := p.run(ctx, runID, label, date, req.GameIDs)

	outcome := "success"
	if err != nil {
		outcome = "failure"
		p.logger.WithError(err).WithField("run_id", runID).Error("Prediction run failed")
	}
	metrics.RecordRun(label, outcome, p.now().Sub(start))
	return out, err
}

func (p *Pipeline) run(ctx context.Context, runID uuid.UUID, label string, date time.Time, gameIDs []string) (*RunReport, error) {
	start := p.now()
	predictor := p.predictor.WithRun(runID.String())
	plog := predictor.log

	slate, err := p.slates.FetchSlate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if slate == nil {
		return nil, models.ErrNoGames
	}
	slate.Filter(gameIDs)
	if len(slate.Games) == 0 {
		return nil, models.ErrNoGames
	}

	if p.lineups != nil {
		page, err := p.lineups.Fetch(ctx, date)
		if err != nil {
			plog.WithError(err).Warn("Lineup page unavailable, using schedule lineups only")
		} else {
			added := MergeLineups(slate, page)
			plog.WithField("games", added).Info("Merged lineup page data")
		}
	}

	plog.LogRunStarted(date, label, len(slate.Games))

	stats, err := p.stats.LoadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	hands, err := p.stats.LoadHandedness(ctx)
	if err != nil {
		plog.WithError(err).Warn("Handedness tables unavailable")
		hands = datasource.NewHandednessTable()
	}

	weather := p.weather.FetchAll(ctx, slate.Games)

	result, err := predictor.Predict(Inputs{
		Slate:      slate,
		Weather:    weather,
		Stats:      stats,
		Handedness: hands,
	})
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	grouped := tiers.Categorize(result.Predictions, p.opts.TopN, p.opts.LockQuantile, p.opts.HotQuantile)
	rep := &RunReport{
		RunID:   runID,
		Label:   label,
		Date:    date,
		Result:  result,
		Tiers:   grouped,
		Message: report.Format(date, label, grouped),
	}

	metrics.RecordPredictions(result.Probabilities())
	plog.LogRunFinished(len(result.Predictions), result.GamesProcessed, result.GamesSkipped, result.BattersSkipped, p.now().Sub(start))

	if p.opts.DryRun {
		return rep, nil
	}
	return rep, p.deliver(ctx, rep)
}

// deliver writes the tracking entry first, then sends the report
func (p *Pipeline) deliver(ctx context.Context, rep *RunReport) error {
	if p.tracker != nil {
		path, err := p.tracker.Record(rep.Date, rep.Label, rep.RunID.String(), rep.Tiers)
		if err != nil {
			p.logger.WithError(err).Warn("Failed to record predictions for tracking")
		} else {
			rep.TrackingPath = path
			p.delivery.LogTrackingWritten(path, rep.Date.Format(models.DateLayout), len(rep.Tiers.Locks), len(rep.Tiers.HotPicks), len(rep.Tiers.Sleepers))
		}
	}

	if p.publisher == nil {
		return nil
	}

	parts, err := p.publisher.Send(ctx, rep.Message)
	metrics.RecordReport(p.publisher.Name(), err)
	if err != nil {
		p.delivery.LogReportFailed(p.publisher.Name(), err)
		return fmt.Errorf("failed to send report: %w", err)
	}
	rep.Sent = true
	p.delivery.LogReportSent(p.publisher.Name(), parts, len(rep.Message))
	return nil
}

// MergeLineups fills games that have no usable schedule lineup from a lineup
// page, and replaces unannounced starters. It returns the number of games
// that gained a lineup.
func MergeLineups(slate *models.Slate, page *datasource.PageLineups) int {
	if page == nil {
		return 0
	}

	if slate.Lineups == nil {
		slate.Lineups = make(map[string]models.Lineup)
	}
	if slate.Pitchers == nil {
		slate.Pitchers = make(map[string]models.ProbablePitchers)
	}

	added := 0
	for _, g := range slate.Games {
		if scraped, ok := page.Lineups[g.ID]; ok {
			current, has := slate.Lineups[g.ID]
			if !has || (len(current.Home) == 0 && len(current.Away) == 0) {
				slate.Lineups[g.ID] = scraped
				added++
			}
		}

		scraped, ok := page.Pitchers[g.ID]
		if !ok {
			continue
		}
		current, has := slate.Pitchers[g.ID]
		if !has {
			current = models.ProbablePitchers{Home: models.UnknownPitcher, Away: models.UnknownPitcher}
		}
		if !models.IsKnownPitcher(current.Home) && models.IsKnownPitcher(scraped.Home) {
			current.Home = scraped.Home
		}
		if !models.IsKnownPitcher(current.Away) && models.IsKnownPitcher(scraped.Away) {
			current.Away = scraped.Away
		}
		slate.Pitchers[g.ID] = current
	}
	return added
}

// IsFatal reports whether err ended a run without any report
func IsFatal(err error) bool {
	return errors.Is(err, models.ErrNoGames) || errors.Is(err, models.ErrNoPredictions)
}
