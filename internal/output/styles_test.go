package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "created returns green", status: StatusCreated, wantFG: ColorGreen},
		{name: "passed returns green", status: StatusPassed, wantFG: ColorGreen},
		{name: "merged returns yellow", status: StatusMerged, wantFG: ColorYellow},
		{name: "overwritten returns yellow", status: StatusOverwritten, wantFG: ColorYellow},
		{name: "unchanged returns faint", status: StatusUnchanged, wantDim: true},
		{name: "skipped returns faint", status: StatusSkipped, wantDim: true},
		{name: "failed returns bold red", status: StatusFailed, wantBold: true, wantFG: ColorBoldRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestFormatEntryLine(t *testing.T) {
	line := FormatEntryLine("server/routes.js", true, StatusMerged)
	assert.Contains(t, line, "m:")
	assert.Contains(t, line, "server/routes.js")
	assert.True(t, strings.HasSuffix(line, StatusStyle(StatusMerged).Render(StatusMerged)))

	short := FormatEntryLine("a.js", false, StatusCreated)
	long := FormatEntryLine(strings.Repeat("x", 80)+".js", false, StatusCreated)
	assert.Contains(t, short, "f:")
	assert.Contains(t, long, "  ")
	assert.Greater(t, strings.Count(short, " "), strings.Count(long, " "))
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
	assert.Contains(t, FormatCheckmark("done"), "✔")
}
