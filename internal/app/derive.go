package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repodash/internal/deriver"
)

var (
	deriveFlagInput string
	deriveFlagRules string
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive status, scores, and tags from a scan document",
	Long: `Derive reads the JSON document written by 'repodash scan' from stdin (or
--input) and writes one derived view per project, keyed by pathHash.

--rules selects the rule generation: v3 (active, completed, paused,
archived) is current; v1 and v2 reproduce earlier label sets.`,
	Args: cobra.NoArgs,
	RunE: runDerive,
}

func init() {
	deriveCmd.Flags().StringVarP(&deriveFlagInput, "input", "i", "", "Read the scan document from this file instead of stdin")
	deriveCmd.Flags().StringVar(&deriveFlagRules, "rules", "", "Rule generation (default from config, v3)")

	rootCmd.AddCommand(deriveCmd)
}

func runDerive(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	d, err := newDeriver(deriveFlagRules, cfg.Rules)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if deriveFlagInput != "" {
		f, err := os.Open(deriveFlagInput)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	doc, err := deriver.Decode(in)
	if err != nil {
		return err
	}
	logger.Debug("deriving", "projects", len(doc.Projects), "rules", d.Rules().Generation)

	return writeJSON(cmd.OutOrStdout(), d.DeriveAll(doc))
}

// newDeriver resolves the rule generation, preferring the flag over the
// configured value.
func newDeriver(flagRules, cfgRules string) (*deriver.Deriver, error) {
	name := cfgRules
	if flagRules != "" {
		name = flagRules
	}
	rules, err := deriver.Lookup(name)
	if err != nil {
		return nil, err
	}
	return deriver.New(rules), nil
}
