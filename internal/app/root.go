// Package app contains the Cobra command tree for repodash.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repodash/internal/config"
	"github.com/blackwell-systems/repodash/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "repodash",
	Short: "Inventory local projects and score their health",
	Long: `repodash walks the projects under a development root, records objective
facts about each one (git history, well-known files, manifests, TODO counts),
and derives a status, a health score, and tags from those facts.

  repodash scan ~/dev > facts.json
  repodash derive < facts.json
  repodash report ~/dev`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// reportedError marks a failure whose message was already written to
// stdout as a JSON document. Execute exits without printing it again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/repodash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log degraded signals to stderr")
}

// setup loads configuration and prepares the logger and color mode shared
// by every subcommand.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	color := cfg.Output.Color && !flagNoColor
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		color = output.ColorWanted(f, color)
	} else {
		color = false
	}
	output.SetNoColor(!color)

	return cfg, logger, nil
}
