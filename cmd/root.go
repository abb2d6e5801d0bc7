// Package cmd implements the CLI commands for AccessLens using Cobra.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/accesslens/config"
)

var (
	flagConfig   string
	flagLogLevel string

	// cfg is loaded once, before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "accesslens",
	Short: "AccessLens audits web pages for accessibility",
	Long: `AccessLens analyses an HTML document and reports its reading level,
worst text contrast, structural accessibility defects and a short summary.

Usage:
  accesslens report <url|file|-> [flags]
  accesslens serve [flags]`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

// setup loads the configuration and configures the global logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339})

	cfg = c
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
