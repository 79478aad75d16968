package cli

import (
	"math"
	"strings"

	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const titleWidth = 55

var (
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	textStyle   lipgloss.Style
	mutedStyle  lipgloss.Style
	moneyStyle  lipgloss.Style
	accentStyle lipgloss.Style
	warnStyle   lipgloss.Style
	dimStyle    lipgloss.Style
)

func init() {
	UseTheme(theme.Active)
}

// UseTheme colors CLI output with th so it matches the TUI.
func UseTheme(th theme.Theme) {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	titleStyle = fg(th.TextPrimary).Bold(true)
	headerStyle = fg(th.Accent).Bold(true)
	textStyle = fg(th.TextPrimary)
	mutedStyle = fg(th.TextMuted)
	moneyStyle = fg(th.Green)
	accentStyle = fg(th.AccentBright)
	warnStyle = fg(th.Orange)
	dimStyle = fg(th.TextDim)
}

// Column is one table column. Amount columns set Right.
type Column struct {
	Header string
	Right  bool
}

// Table is a bordered table with an optional title above it.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string

	// Highlight styles a single data cell; ok=false keeps the text style.
	Highlight func(row, col int) (style lipgloss.Style, ok bool)
}

// RenderTitle renders title centered in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimStyle.GetForeground()).
		Width(titleWidth).
		Align(lipgloss.Center).
		Render(titleStyle.Render(title))
}

// RenderTable renders t followed by a newline.
func RenderTable(t Table) string {
	if len(t.Columns) == 0 {
		return ""
	}
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := textStyle
			switch {
			case row == table.HeaderRow:
				s = headerStyle
			case t.Highlight != nil:
				if hs, ok := t.Highlight(row, col); ok {
					s = hs
				}
			}
			if col < len(t.Columns) && t.Columns[col].Right {
				s = s.Align(lipgloss.Right)
			}
			return s.Padding(0, 1)
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar draws fraction (clamped to 0-1) as a bar width cells
// wide followed by label.
func RenderProgressBar(fraction float64, width int, label string) string {
	if width <= 0 {
		return label
	}
	filled := int(math.Round(max(0, min(1, fraction)) * float64(width)))
	return "[" + moneyStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled)) + "] " + label
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline draws one block per value, scaled to the largest.
func RenderSparkline(values []float64) string {
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if peak > 0 {
			level = int(math.Round(max(0, v) / peak * 7))
		}
		out[i] = sparkBlocks[level]
	}
	return string(out)
}
