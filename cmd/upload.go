package cmd

import (
	"fmt"

	"nms-extractor/core/config"
	"nms-extractor/core/logger"
	"nms-extractor/core/storage"
	"nms-extractor/feature/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// uploadCmd publishes the generated catalogs to object storage.
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the generated catalogs to object storage",
	Long: `Uploads every JSON file in the output directory to the configured
bucket, creating the bucket if it does not exist yet.`,
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

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		svc := publish.NewService(client, cfg.Storage.Bucket, logg)
		count, err := svc.Upload(cmd.Context(), cfg.Game.OutputDir)
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}

		logg.Info("catalogs uploaded",
			zap.Int("files", count),
			zap.String("bucket", cfg.Storage.Bucket),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(uploadCmd)
}
