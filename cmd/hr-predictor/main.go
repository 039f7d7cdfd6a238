// Package main provides the command line entry point of the HR predictor.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/hr-predictor/internal/health"
	"github.com/yourusername/hr-predictor/internal/models"
	"github.com/yourusername/hr-predictor/internal/report"
	"github.com/yourusername/hr-predictor/internal/scheduler"
	"github.com/yourusername/hr-predictor/internal/scoring"
	"github.com/yourusername/hr-predictor/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string

	runDate    string
	runGames   []string
	runLabel   string
	dryRun     bool
	runTimeout time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	runCmd.Flags().StringVarP(&runDate, "date", "d", "", "Slate date (YYYY-MM-DD), defaults to today")
	runCmd.Flags().StringSliceVarP(&runGames, "games", "g", nil, "Only score these game IDs (HOME_AWAY_YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runLabel, "label", "", "Run label (Early or Midday), derived from the clock by default")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report without tracking or sending it")
	rootCmd.PersistentFlags().DurationVar(&runTimeout, "timeout", 20*time.Minute, "Maximum duration of one prediction run")

	rootCmd.AddCommand(runCmd, scheduleCmd, weightsCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "hr-predictor",
	Short:         "Daily MLB home run probability picks",
	Long:          `Scores every batter of the day's MLB slate for home run probability, groups the best into tiers and delivers the report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one prediction pass now",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		ctx, cancelTimeout := context.WithTimeout(ctx, runTimeout)
		defer cancelTimeout()

		a, err := newApp(ctx, dryRun)
		if err != nil {
			return err
		}
		defer a.close()

		req := service.RunRequest{GameIDs: runGames, Label: runLabel}
		if runDate != "" {
			req.Date, err = time.ParseInLocation(models.DateLayout, runDate, a.loc)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", runDate, err)
			}
		}

		rep, err := a.run(ctx, req)
		if err != nil {
			if service.IsFatal(err) {
				a.log.WithError(err).Warn("Nothing to report")
			}
			return err
		}

		if dryRun {
			fmt.Fprintln(cmd.OutOrStdout(), rep.Message)
		}
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the early and midday passes on their cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.close()

		sched := scheduler.NewScheduler(a.loc, runTimeout, a.log)

		var srv *health.Server
		if a.cfg.Metrics.Enabled {
			srv = health.NewServer(health.Config{
				ServiceName: a.cfg.App.Name,
				Version:     Version,
				Commit:      GitCommit,
				Port:        strconv.Itoa(a.cfg.Metrics.Port),
				MetricsPath: a.cfg.Metrics.Path,
				Logger:      a.log,
				Checks:      map[string]health.CheckFunc{"stats": a.statsReady},
				NextRun:     sched.GetNextRun,
			})
		}

		job := func(ctx context.Context, label string) error {
			_, err := a.run(ctx, service.RunRequest{Label: label})
			if srv != nil {
				srv.RecordRun(label, time.Now(), err)
			}
			return err
		}
		if err := sched.ScheduleRun(report.LabelEarly, a.cfg.Schedule.EarlyCron, job); err != nil {
			return err
		}
		if err := sched.ScheduleRun(report.LabelMidday, a.cfg.Schedule.MiddayCron, job); err != nil {
			return err
		}

		if srv != nil {
			if err := srv.Start(ctx); err != nil {
				return fmt.Errorf("failed to start health server: %w", err)
			}
		}
		if err := sched.Start(); err != nil {
			return err
		}
		if srv != nil {
			srv.SetReady(true)
		}

		a.log.WithField("next_run", sched.GetNextRun().Format(time.RFC3339)).Info("Waiting for scheduled runs")
		<-ctx.Done()

		a.log.Info("Shutting down")
		if srv != nil {
			srv.SetReady(false)
		}
		return sched.Stop()
	},
}

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print the effective factor weight table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		engine, err := scoring.NewEngineFromConfig(cfg.Scoring)
		if err != nil {
			return err
		}

		weights := engine.Weights().Map()
		names := make([]string, 0, len(weights))
		for name := range weights {
			names = append(names, name)
		}
		sort.Strings(names)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "base rate %.3f, clamp [%.3f, %.3f]\n", engine.BaseRate(), cfg.Scoring.MinProbability, cfg.Scoring.MaxProbability)
		for _, name := range names {
			fmt.Fprintf(out, "  %-22s %.3f\n", name, weights[name])
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hr-predictor %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
