package cmd

import (
	"fmt"

	"nms-extractor/core/config"
	"nms-extractor/core/database"
	"nms-extractor/core/logger"
	"nms-extractor/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reportCmd shows how the latest recorded run compares to the one before.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the latest run's catalog deltas",
	Long: `Reads the run history database and reports how each catalog's item
count changed between the two most recent recorded runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to history database: %w", err)
		}

		svc, err := report.NewService(db, logg)
		if err != nil {
			return err
		}

		diff, err := svc.LatestDiff()
		if err != nil {
			return err
		}

		if len(diff.Changed) == 0 {
			logg.Info("no catalog changes since previous run", zap.String("run_id", diff.RunID))
			return nil
		}
		for _, d := range diff.Changed {
			logg.Info("catalog changed",
				zap.String("file", d.File),
				zap.Int("previous", d.Previous),
				zap.Int("current", d.Current),
				zap.Int("delta", d.Delta),
			)
		}
		logg.Info("run comparison",
			zap.String("run_id", diff.RunID),
			zap.String("previous_run_id", diff.PreviousRunID),
			zap.Int("total_delta", diff.TotalDelta),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)
}
