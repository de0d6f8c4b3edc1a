// Package commands implements the gafcheck command tree.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const appName = "gafcheck"

// Version information, set at build time.
const (
	Version   = "0.1.0"
	BuildTime = "dev"
)

// NewRootCmd builds the gafcheck root command.
func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "gafcheck",
		Short: "GO annotation validator",
		Long: `Gafcheck validates GO annotation files (GAF 2.1) against an ontology
released in the OBO graph JSON format.

It checks each annotation against the GO annotation rules, repairs
annotations to obsolete terms when the ontology names a replacement,
and writes the corrected annotation stream plus a findings report.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// configureLogging installs the process-wide text logger on stderr.
func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
