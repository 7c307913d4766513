package cmd

import (
	"fmt"

	"nms-extractor/core/config"
	"nms-extractor/core/database"
	"nms-extractor/core/logger"
	"nms-extractor/feature/extract"
	"nms-extractor/feature/report"
	"nms-extractor/feature/smoke"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the extract command
	recordRun      bool
	runVersion     string
	verifyCatalogs bool
)

// extractCmd runs the full extraction pipeline.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run the full catalog extraction pipeline",
	Long: `Rebuilds the localization table, extracts every source table,
categorizes and enriches the items, and writes the JSON catalogs.

Examples:
  # Plain run
  extract

  # Run, verify the output, and record the run in the history database
  extract --verify --record --version 5.05`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&recordRun, "record", false, "Record the run in the history database")
	extractCmd.Flags().StringVar(&runVersion, "version", "", "Game version label stored with the recorded run")
	extractCmd.Flags().BoolVar(&verifyCatalogs, "verify", false, "Run the smoke checks on the written catalogs")

	RootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	svc := extract.NewService(cfg.Game, logg)
	summary, err := svc.Run()
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	for _, f := range summary.Files {
		logg.Info("catalog written",
			zap.String("file", f.Name),
			zap.Int("items", f.Items),
			zap.Int64("bytes", f.Bytes),
		)
	}

	if verifyCatalogs {
		checker := smoke.NewService(cfg.Game.OutputDir, logg)
		result, err := checker.Check(smoke.Options{})
		if err != nil {
			return fmt.Errorf("smoke check failed: %w", err)
		}
		if !result.OK() {
			return fmt.Errorf("smoke check found %d failures", len(result.Failures))
		}
	}

	if recordRun {
		if err := recordExtraction(cfg, logg, summary); err != nil {
			// History is a convenience; a failed recording should not fail
			// the extraction itself.
			logg.Warn("failed to record run", zap.Error(err))
		}
	}

	return nil
}

// recordExtraction stores the run in the history database and logs the
// per-catalog deltas against the previous run.
func recordExtraction(cfg *config.Config, logg *zap.Logger, summary *extract.Summary) error {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect history database: %w", err)
	}

	svc, err := report.NewService(db, logg)
	if err != nil {
		return err
	}

	diff, err := svc.Record(summary, runVersion)
	if err != nil {
		return err
	}

	for _, d := range diff.Changed {
		logg.Info("catalog changed",
			zap.String("file", d.File),
			zap.Int("previous", d.Previous),
			zap.Int("current", d.Current),
			zap.Int("delta", d.Delta),
		)
	}
	logg.Info("run recorded",
		zap.String("run_id", diff.RunID),
		zap.Int("total_delta", diff.TotalDelta),
	)
	return nil
}
