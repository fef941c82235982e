// Package output provides styled terminal rendering helpers for repodash.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for healthy scores and active projects.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for poor scores and archived projects.
	ColorError = lipgloss.Color("#ef5350")

	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style

	// StyleLabel and StyleValue align label/value summary lines.
	StyleLabel lipgloss.Style
	StyleValue lipgloss.Style
)

var noColor bool

func init() {
	applyStyles(true)
}

func applyStyles(color bool) {
	if !color {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(20)
		StyleValue = plain.Width(12)
		return
	}
	StyleHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold = lipgloss.NewStyle().Bold(true)
	StyleLabel = lipgloss.NewStyle().Width(20)
	StyleValue = lipgloss.NewStyle().Bold(true).Width(12)
}

// SetNoColor disables or enables color output globally.
func SetNoColor(disabled bool) {
	noColor = disabled
	applyStyles(!disabled)
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// ColorWanted reports whether styled output should be written to f: the
// caller must want color and f must be a terminal.
func ColorWanted(f *os.File, want bool) bool {
	if !want || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// StatusStyle returns the style used for a derived status label.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "active":
		return StyleSuccess
	case "completed", "in-progress":
		return StyleHeader
	case "paused", "stale":
		return StyleWarning
	default:
		return StyleMuted
	}
}
