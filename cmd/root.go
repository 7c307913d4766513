package cmd

import (
	"fmt"
	"os"

	"nms-extractor/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "nms-extractor",
	Short: "NMS game data extraction pipeline",
	Long: `nms-extractor converts exported No Man's Sky game tables into
cross-referenced, de-duplicated JSON catalogs ready for a downstream
application or CDN.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format and debug level keep CLI output readable.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
