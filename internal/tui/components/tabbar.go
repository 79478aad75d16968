package components

import (
	"strings"

	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: '1'},
	{Name: "Periods", Key: '2'},
	{Name: "Evidence", Key: '3'},
	{Name: "Settings", Key: '4'},
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)
	nameStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	if active {
		keyStyle = keyStyle.Foreground(t.AccentBright).Background(t.SurfaceHover)
		nameStyle = nameStyle.Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	}
	return keyStyle.Render(" "+string(tab.Key)+" ") + nameStyle.Render(tab.Name+" ")
}

// TabVisualWidth returns the rendered width of a tab.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index, with the
// title on the right.
func RenderTabBar(activeIdx int, width int, title string) string {
	t := theme.Active

	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		parts = append(parts, renderTab(tab, i == activeIdx))
	}
	left := strings.Join(parts, sep)

	right := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true).
		Render(title + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(left)
	}
	fill := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap))
	return left + fill + right
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
