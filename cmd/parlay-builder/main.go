// Package main provides the parlay-builder CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/parlay-builder/internal/config"
	"github.com/yourusername/parlay-builder/internal/logger"
	"github.com/yourusername/parlay-builder/internal/slate"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	slatePath  string
	outputDir  string
	log        *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&slatePath, "slate", "s", "", "Slate CSV path or http(s) URL (overrides slate.path)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides output.dir)")

	rootCmd.AddCommand(buildCmd, scoreCmd, watchCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "parlay-builder",
	Short: "Score a slate and build parlay tickets",
	Long: `Scores a slate of propositions against model probabilities and builds
moonshot and payout-band spray parlay tickets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "parlay-builder %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	// Values from .env feed ${VAR} placeholders and PARLAY_BUILDER_* overrides.
	_ = godotenv.Load()

	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if slatePath != "" {
		loaded.Slate.Path = slatePath
	}
	if outputDir != "" {
		loaded.Output.Dir = outputDir
	}
	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	return nil
}

func newSlateSource() *slate.Source {
	httpCfg := slate.DefaultHTTPClientConfig()
	if t := cfg.SlateTimeout(); t > 0 {
		httpCfg.Timeout = t
	}
	httpCfg.MaxRetries = cfg.Slate.MaxRetries
	httpCfg.RateLimit = cfg.Slate.RateLimit
	return slate.NewSource(httpCfg, log)
}
