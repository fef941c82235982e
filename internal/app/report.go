package app

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repodash/internal/deriver"
	"github.com/blackwell-systems/repodash/internal/output"
	"github.com/blackwell-systems/repodash/internal/project"
)

var (
	reportFlagRules     string
	reportFlagSort      string
	reportFlagMinHealth int
	reportFlagExclude   []string
	reportFlagAttention bool
)

var reportCmd = &cobra.Command{
	Use:   "report [root]",
	Short: "Scan, derive, and print a project health table",
	Long: `Report runs scan and derive in one step and prints a table of every
project with its status, health, hygiene, momentum, and tags. The Attn
column shows the most urgent reason a project needs attention: low hygiene
or momentum, a tree left dirty or commits left unpushed for over a week, or
20 or more TODOs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFlagRules, "rules", "", "Rule generation (default from config, v3)")
	reportCmd.Flags().StringVar(&reportFlagSort, "sort", "health", "Sort by: health, name, status, inactive")
	reportCmd.Flags().IntVar(&reportFlagMinHealth, "min-health", 0, "Only show projects with health >= this value")
	reportCmd.Flags().StringSliceVar(&reportFlagExclude, "exclude", nil, "Directory names to skip (comma-separated or repeated)")
	reportCmd.Flags().BoolVar(&reportFlagAttention, "attention", false, "Only show projects that need attention")

	rootCmd.AddCommand(reportCmd)
}

// reportRow joins a project's facts with its derived view.
type reportRow struct {
	facts     project.Facts
	view      project.View
	attention []deriver.Reason
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	d, err := newDeriver(reportFlagRules, cfg.Rules)
	if err != nil {
		return err
	}

	root, exclude := scanTarget(cfg, args, reportFlagExclude)
	scan, err := newScanner(cfg, logger).ScanAll(cmd.Context(), root, exclude)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	views := d.DeriveAll(project.DeriveInput{ScannedAt: &scan.ScannedAt, Projects: scan.Projects})
	byHash := make(map[string]project.View, len(views.Projects))
	for _, v := range views.Projects {
		byHash[v.PathHash] = v
	}

	rows := make([]reportRow, 0, len(scan.Projects))
	for _, f := range scan.Projects {
		v := byHash[f.PathHash]
		if v.HealthScore < reportFlagMinHealth {
			continue
		}
		reasons := deriver.Attention(&f, v)
		if reportFlagAttention && len(reasons) == 0 {
			continue
		}
		rows = append(rows, reportRow{facts: f, view: v, attention: reasons})
	}
	sortRows(rows, reportFlagSort)

	w := cmd.OutOrStdout()
	fmt.Fprint(w, output.Section(fmt.Sprintf("Projects in %s", root), cfg.Output.Width-2))
	fmt.Fprintln(w)
	renderReportTable(w, rows, cfg.Output.Width)
	renderReportSummary(w, rows, d.Rules().Generation)
	return nil
}

func sortRows(rows []reportRow, sortBy string) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch sortBy {
		case "name":
			return strings.ToLower(a.facts.Name) < strings.ToLower(b.facts.Name)
		case "status":
			if a.view.Status != b.view.Status {
				return a.view.Status < b.view.Status
			}
		case "inactive":
			da, db := inactiveDays(a.facts), inactiveDays(b.facts)
			if da != db {
				return da < db
			}
		default: // "health"
			if a.view.HealthScore != b.view.HealthScore {
				return a.view.HealthScore > b.view.HealthScore
			}
		}
		return a.facts.Name < b.facts.Name
	})
}

// inactiveDays orders projects without commits after every dated one.
func inactiveDays(f project.Facts) int {
	if f.DaysInactive == nil {
		return math.MaxInt
	}
	return *f.DaysInactive
}

func renderReportTable(w io.Writer, rows []reportRow, width int) {
	if len(rows) == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render(" No projects found."))
		return
	}

	tbl := output.NewTable("Status", "Attn", "Health", "Hyg", "Mom", "Project", "Last Commit", "Tags")
	tagWidth := width / 3
	if tagWidth < 12 {
		tagWidth = 12
	}

	for _, r := range rows {
		last := output.StyleMuted.Render("never")
		if r.facts.DaysInactive != nil {
			last = fmt.Sprintf("%dd ago", *r.facts.DaysInactive)
		}
		name := r.facts.Name
		if r.facts.IsDirty {
			name += output.StyleWarning.Render("*")
		}

		tbl.AddRow(
			output.StatusStyle(r.view.Status).Render(r.view.Status),
			attentionCell(r.attention),
			output.ScoreBar(r.view.HealthScore, 10),
			fmt.Sprintf("%3d", r.view.HygieneScore),
			fmt.Sprintf("%3d", r.view.MomentumScore),
			name,
			last,
			output.StyleMuted.Render(output.Truncate(strings.Join(r.view.Tags, ", "), tagWidth)),
		)
	}

	_, _ = tbl.WriteTo(w)
}

// attentionCell shows the most urgent severity and how many reasons
// apply, or a dash.
func attentionCell(reasons []deriver.Reason) string {
	if len(reasons) == 0 {
		return output.StyleMuted.Render("-")
	}
	sev := deriver.MaxSeverity(reasons)
	text := sev.String()
	if len(reasons) > 1 {
		text = fmt.Sprintf("%s+%d", text, len(reasons)-1)
	}
	switch sev {
	case deriver.SeverityHigh:
		return output.StyleError.Render(text)
	case deriver.SeverityMedium:
		return output.StyleWarning.Render(text)
	default:
		return text
	}
}

func renderReportSummary(w io.Writer, rows []reportRow, generation string) {
	if len(rows) == 0 {
		return
	}

	var total, flagged int
	byStatus := make(map[string]int)
	for _, r := range rows {
		total += r.view.HealthScore
		byStatus[r.view.Status]++
		if len(r.attention) > 0 {
			flagged++
		}
	}
	statuses := make([]string, 0, len(byStatus))
	for s := range byStatus {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	fmt.Fprint(w, output.Section("Summary", 0))
	fmt.Fprintln(w)
	line := func(label, value string) {
		fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render(label), output.StyleValue.Render(value))
	}
	line("Projects:", fmt.Sprintf("%d", len(rows)))
	line("Mean health:", fmt.Sprintf("%d/100", (total+len(rows)/2)/len(rows)))
	for _, s := range statuses {
		line(s+":", fmt.Sprintf("%d", byStatus[s]))
	}
	line("Needs attention:", fmt.Sprintf("%d", flagged))
	line("Rules:", generation)
	fmt.Fprintln(w)
}
