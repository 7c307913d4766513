package cmd

import (
	"fmt"

	"nms-extractor/core/config"
	"nms-extractor/core/logger"
	"nms-extractor/feature/smoke"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the smoke command
	strictDuplicates      bool
	strictCrossDuplicates bool
)

// smokeCmd validates the generated catalogs without regenerating them.
var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Validate the generated catalog files",
	Long: `Checks that every expected catalog exists, parses as JSON, and has no
duplicate Id values. Duplicates warn by default; the strict flags turn
them into failures.`,
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

		result, err := smoke.NewService(cfg.Game.OutputDir, logg).Check(smoke.Options{
			StrictDuplicates:          strictDuplicates,
			StrictCrossFileDuplicates: strictCrossDuplicates,
		})
		if err != nil {
			return err
		}

		if !result.OK() {
			return fmt.Errorf("%d of %d catalog checks failed", len(result.Failures), result.FilesChecked)
		}
		logg.Info("smoke check passed",
			zap.Int("files", result.FilesChecked),
			zap.Int("warnings", len(result.Warnings)),
		)
		return nil
	},
}

func init() {
	smokeCmd.Flags().BoolVar(&strictDuplicates, "strict-duplicates", false, "Fail on duplicate Id values within a file")
	smokeCmd.Flags().BoolVar(&strictCrossDuplicates, "strict-global-duplicates", false, "Fail on Id values shared across files")

	RootCmd.AddCommand(smokeCmd)
}
