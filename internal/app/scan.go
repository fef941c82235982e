package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repodash/internal/config"
	"github.com/blackwell-systems/repodash/internal/project"
	"github.com/blackwell-systems/repodash/internal/scanner"
)

var scanFlagExclude []string

var scanCmd = &cobra.Command{
	Use:   "scan [root] [exclude_csv]",
	Short: "Collect raw facts for every project under root",
	Long: `Scan enumerates the immediate subdirectories of root that look like
projects (a .git entry or a language manifest), inspects each one, and writes
a JSON document of raw facts to stdout.

root defaults to the configured root (DEV_ROOT, ~/dev). The comma-separated
exclusion list defaults to EXCLUDE_DIRS; --exclude takes precedence over both.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanFlagExclude, "exclude", nil, "Directory names to skip (comma-separated or repeated)")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	root, exclude := scanTarget(cfg, args, scanFlagExclude)

	report, err := newScanner(cfg, logger).ScanAll(cmd.Context(), root, exclude)
	if err != nil {
		if errors.Is(err, scanner.ErrRootNotFound) {
			if werr := writeJSON(cmd.OutOrStdout(), project.ErrorReport{Error: err.Error()}); werr != nil {
				return werr
			}
			return &reportedError{err: err}
		}
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	return writeJSON(cmd.OutOrStdout(), report)
}

// scanTarget resolves the scan root and exclusion list. Positional
// arguments override configuration; --exclude overrides both.
func scanTarget(cfg *config.Config, args []string, flagExclude []string) (string, []string) {
	root := cfg.Root
	if len(args) > 0 && args[0] != "" {
		root = config.ExpandPath(args[0])
	}

	exclude := cfg.Exclude
	switch {
	case len(flagExclude) > 0:
		exclude = scanner.ParseExclude(strings.Join(flagExclude, ","))
	case len(args) > 1:
		exclude = scanner.ParseExclude(args[1])
	}
	return root, exclude
}

func newScanner(cfg *config.Config, logger *slog.Logger) *scanner.Scanner {
	return scanner.New(
		scanner.WithGitRunner(scanner.ExecGit{Timeout: cfg.GitTimeout}),
		scanner.WithWorkers(cfg.Workers),
		scanner.WithLogger(logger),
	)
}
