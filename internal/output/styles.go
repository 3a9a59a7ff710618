package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. These are the single source of truth; never use inline
// lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: paths, project and endpoint names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "created" status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "merged" and "overwritten" statuses.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed paths in diffs.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (generating, installing, verifying).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators, descriptions).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	styleAdded   = lipgloss.NewStyle().Foreground(ColorGreen)
	styleRemoved = lipgloss.NewStyle().Foreground(ColorRed)
	styleChanged = lipgloss.NewStyle().Foreground(ColorYellow)
)

// Entry status names, as reported by the applier.
const (
	StatusCreated     = "created"
	StatusOverwritten = "overwritten"
	StatusMerged      = "merged"
	StatusUnchanged   = "unchanged"
	StatusSkipped     = "skipped"
	StatusFailed      = "failed"
	StatusPassed      = "passed"
)

// StatusStyle returns the style for a status string. Unknown statuses
// return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated, StatusPassed:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusMerged, StatusOverwritten:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged, StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth keeps status words aligned for typical path lengths.
const minPathColumnWidth = 56

// FormatEntryLine renders a manifest path with a right-aligned,
// color-coded status suffix.
//
// Format: f:<path>  <status> for creations, m:<path>  <status> for merges.
func FormatEntryLine(path string, merge bool, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	prefix := "f:"
	if merge {
		prefix = "m:"
	}

	return StyleDim.Render(prefix) + StyleNoun.Render(path) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
