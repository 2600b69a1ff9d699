package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openmatchlabs/proforma/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// risk badge and assumptions source on the right.
func RenderStatusBar(width int, source string, risk string, riskColor lipgloss.Color) string {
	t := theme.Active

	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	left := " [?]help  [q]uit"

	badge := ""
	if risk != "" {
		badge = "risk " + risk
	}
	right := ""
	if source != "" {
		right = source
	}

	rightPlain := badge
	if badge != "" && right != "" {
		rightPlain += "  "
	}
	rightPlain += right

	padding := width - lipgloss.Width(left) - lipgloss.Width(rightPlain) - 1
	if padding < 0 {
		padding = 0
	}

	var b strings.Builder
	b.WriteString(muted.Render(left))
	b.WriteString(strings.Repeat(" ", padding))
	if badge != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(riskColor).Bold(true).Render(badge))
		if right != "" {
			b.WriteString("  ")
		}
	}
	b.WriteString(muted.Render(right))
	b.WriteString(" ")
	return b.String()
}
