package cmd

import (
	"fmt"

	"nms-extractor/core/config"
	"nms-extractor/core/logger"
	"nms-extractor/feature/extract"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// localizationCmd rebuilds only the localization table, without running
// the catalog extractors.
var localizationCmd = &cobra.Command{
	Use:   "localization",
	Short: "Rebuild the flat localization table",
	Long: `Merges every exported locale document into a flat key-to-text table
and writes it to the output directory as localization.json.`,
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

		keys, err := extract.NewService(cfg.Game, logg).RebuildLocalization()
		if err != nil {
			return err
		}

		logg.Info("localization table written",
			zap.String("path", cfg.Game.OutputPath(extract.LocalizationFile)),
			zap.Int("keys", keys),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(localizationCmd)
}
