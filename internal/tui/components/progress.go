package components

import (
	"fmt"

	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// GoalColor goes from red through orange and yellow to green as a goal fills.
func GoalColor(fraction float64) lipgloss.Color {
	t := theme.Active
	switch {
	case fraction >= 1:
		return t.Green
	case fraction >= 0.5:
		return t.Yellow
	case fraction > 0:
		return t.Orange
	default:
		return t.Red
	}
}

// GoalBar renders fraction as a bar followed by its percentage, fitting the
// whole line into width. A non-empty label gets a column labelW wide.
func GoalBar(label string, fraction float64, labelW, width int) string {
	t := theme.Active
	fraction = max(0, min(1, fraction))
	color := GoalColor(fraction)

	bg := lipgloss.NewStyle().Background(t.Surface)
	pct := bg.Foreground(color).Bold(true).Render(fmt.Sprintf("%4.0f%%", fraction*100))

	prefix := ""
	if label != "" {
		prefix = bg.Foreground(t.TextMuted).Render(fmt.Sprintf("%-*s ", labelW, label))
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(5, width-lipgloss.Width(prefix)-lipgloss.Width(pct)-1)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	return prefix + bar.ViewAs(fraction) + bg.Render(" ") + pct
}
