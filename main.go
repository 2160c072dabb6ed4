package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parisxmas/sitesurvey/internal/config"
	"github.com/parisxmas/sitesurvey/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg       *config.Config
	logger    *zap.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "sitesurvey",
	Short: "Civil-engineering site quality survey",
	Long: `sitesurvey serves a one-page survey about civil-engineering project quality.

Responses are appended to a spreadsheet file and the page shows a bar chart of
the material quality ratings collected so far.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		logger, logCloser, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, initCmd, summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
