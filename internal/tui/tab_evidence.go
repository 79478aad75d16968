package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planifica/internal/cli"
	"github.com/theirongolddev/planifica/internal/model"
	"github.com/theirongolddev/planifica/internal/tui/components"
	"github.com/theirongolddev/planifica/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// galleryState tracks the evidence tab state.
type galleryState struct {
	cursor int
}

func (g *galleryState) clamp(n int) {
	if g.cursor >= n {
		g.cursor = n - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

// evidenceItems returns the periods that carry evidence, in period order.
func (a App) evidenceItems() []model.Period {
	var items []model.Period
	for _, p := range a.mgr.State().Periods {
		if p.Evidence != nil {
			items = append(items, p)
		}
	}
	return items
}

func (a App) updateGalleryKey(key string) (App, tea.Cmd, bool) {
	n := len(a.evidenceItems())
	switch key {
	case "j", "down":
		a.gallery.cursor++
	case "k", "up":
		a.gallery.cursor--
	case "g", "home":
		a.gallery.cursor = 0
	case "G", "end":
		a.gallery.cursor = n - 1
	case "enter":
		// Jump to the period that owns the selected evidence.
		items := a.evidenceItems()
		if a.gallery.cursor < len(items) {
			a.periods.cursor = items[a.gallery.cursor].Index - 1
			a.activeTab = tabPeriods
		}
	default:
		return a, nil, false
	}
	a.gallery.clamp(n)
	return a, nil, true
}

func (a App) renderEvidenceTab(cw, h int) string {
	t := theme.Active
	items := a.evidenceItems()

	if a.mgr.State().IsEmpty() {
		return components.ContentCard("Evidence", emptyPlanHint(), cw)
	}
	if len(items) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Evidence",
			muted.Render("No evidence attached. Select a period and press [a] to attach a receipt."), cw)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	missingStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	// Each card is six lines tall including its border.
	perPage := h / 6
	if perPage < 1 {
		perPage = 1
	}
	start := 0
	if a.gallery.cursor >= perPage {
		start = a.gallery.cursor - perPage + 1
	}
	end := min(start+perPage, len(items))

	innerW := components.CardInnerWidth(cw)
	var cards []string
	for i := start; i < end; i++ {
		p := items[i]
		ev := p.Evidence

		row := func(label, value string, style lipgloss.Style) string {
			return labelStyle.Render(fmt.Sprintf("%-10s", label)) + style.Render(truncStr(value, innerW-10))
		}

		var body strings.Builder
		details := ev.MediaType
		if ev.SizeBytes > 0 {
			details += "  " + cli.FormatBytes(ev.SizeBytes)
		}
		if !ev.AttachedAt.IsZero() {
			details += "  attached " + cli.FormatAgo(ev.AttachedAt)
		}
		body.WriteString(row("File", details, valueStyle))
		body.WriteString("\n")

		location, ok := a.evidenceLocation(ev.Ref)
		if ok {
			body.WriteString(row("Stored", location, dimStyle))
		} else {
			body.WriteString(row("Stored", location, missingStyle))
		}
		body.WriteString("\n")
		body.WriteString(row("Saved", a.money(p.SavedAmount), valueStyle))

		title := fmt.Sprintf("%s  %s", cli.PeriodLabel(p.Index), ev.Name)
		if i == a.gallery.cursor {
			cards = append(cards, components.FocusCard(title, body.String(), cw))
		} else {
			cards = append(cards, components.ContentCard(title, body.String(), cw))
		}
	}

	footer := dimStyle.Render(fmt.Sprintf("%d of %d  [Enter] go to period", a.gallery.cursor+1, len(items)))
	return strings.Join(cards, "\n") + "\n" + footer
}

// evidenceLocation resolves ref to its blob path. ok is false when the blob
// is missing or the reference is malformed.
func (a App) evidenceLocation(ref string) (string, bool) {
	if a.evidence == nil {
		return ref, true
	}
	path, err := a.evidence.Path(ref)
	if err != nil {
		return err.Error(), false
	}
	if !a.evidence.Exists(ref) {
		return path + " (missing)", false
	}
	return path, true
}
