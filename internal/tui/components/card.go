// Package components provides reusable TUI widgets for the planifica dashboard.
package components

import (
	"strings"

	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// cardFrame is the horizontal space taken by a card's border and padding.
const cardFrame = 4

// LayoutRow splits total into n widths that add up to total exactly, giving
// the remainder to the leftmost items.
func LayoutRow(total, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = total / n
		if i < total%n {
			widths[i]++
		}
	}
	return widths
}

// CardInnerWidth is the text width available inside a card outerWidth wide.
func CardInnerWidth(outerWidth int) int {
	return max(10, outerWidth-cardFrame)
}

// Metric is one headline number. Color tints the value; empty means the
// primary text color.
type Metric struct {
	Label string
	Value string
	Note  string
	Color lipgloss.Color
}

func card(outerWidth int, border lipgloss.Color) lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(max(10, outerWidth-2)).
		Padding(0, 1)
}

// MetricCard renders m in a card outerWidth wide, border included.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	bg := lipgloss.NewStyle().Background(t.Surface)
	color := m.Color
	if color == "" {
		color = t.TextPrimary
	}

	lines := []string{
		bg.Foreground(t.TextMuted).Render(m.Label),
		bg.Foreground(color).Bold(true).Render(m.Value),
	}
	if m.Note != "" {
		lines = append(lines, bg.Foreground(t.TextDim).Render(m.Note))
	}
	return card(outerWidth, t.Border).Render(strings.Join(lines, "\n"))
}

// MetricCardRow lays metrics side by side across totalWidth.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = MetricCard(m, widths[i])
	}
	return CardRow(cards)
}

// ContentCard renders body under an optional title in a card outerWidth wide.
func ContentCard(title, body string, outerWidth int) string {
	return titledCard(title, body, outerWidth, theme.Active.Border)
}

// FocusCard is a ContentCard with the accent border, for the selected item
// of a list.
func FocusCard(title, body string, outerWidth int) string {
	return titledCard(title, body, outerWidth, theme.Active.BorderAccent)
}

func titledCard(title, body string, outerWidth int, border lipgloss.Color) string {
	t := theme.Active
	if title != "" {
		heading := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
		body = heading.Render(title) + "\n" + body
	}
	return card(outerWidth, border).Render(body)
}

// CardRow joins rendered cards horizontally, extending shorter cards with
// background-colored lines so no unstyled cells remain.
func CardRow(cards []string) string {
	tallest := 0
	for _, c := range cards {
		tallest = max(tallest, lipgloss.Height(c))
	}
	fill := lipgloss.NewStyle().Background(theme.Active.Background)
	for i, c := range cards {
		if short := tallest - lipgloss.Height(c); short > 0 {
			blank := "\n" + fill.Render(strings.Repeat(" ", lipgloss.Width(c)))
			cards[i] = c + strings.Repeat(blank, short)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
