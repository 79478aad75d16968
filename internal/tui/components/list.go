package components

import (
	"strings"

	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a run of text in one color within a ListRow.
type Segment struct {
	Text  string
	Color lipgloss.Color
}

// ListRow renders one line of a cursor list, padded to width. The selected
// row gets a marker, bold text and the highlight background.
func ListRow(segs []Segment, selected bool, width int) string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)
	marker := "  "
	if selected {
		base = base.Background(t.SurfaceBright).Bold(true)
		marker = "▸ "
	}

	var b strings.Builder
	b.WriteString(base.Foreground(t.AccentBright).Render(marker))
	for _, s := range segs {
		b.WriteString(base.Foreground(s.Color).Render(s.Text))
	}
	line := b.String()
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += base.Render(strings.Repeat(" ", pad))
	}
	return line
}
