package components

import (
	"strings"

	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left, an
// optional flash message in the middle and plan freshness on the right.
func RenderStatusBar(width int, hints, flash string, warn bool, updated string) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	flashStyle := lipgloss.NewStyle().
		Foreground(t.GreenBright).
		Background(t.Surface).
		Bold(true)
	if warn {
		flashStyle = flashStyle.Foreground(t.Orange)
	}

	left := base.Render(" " + hints)
	mid := ""
	if flash != "" {
		mid = base.Render("  ") + flashStyle.Render(flash)
	}
	right := ""
	if updated != "" {
		right = base.Foreground(t.TextDim).Render(updated + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if padding < 0 {
		// Hints give way to the flash message on narrow terminals.
		left = ""
		padding = width - lipgloss.Width(mid) - lipgloss.Width(right)
		if padding < 0 {
			padding = 0
		}
	}

	return left + mid + base.Render(strings.Repeat(" ", padding)) + right
}
