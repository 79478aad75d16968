package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

type binding struct{ keys, desc string }

var helpSections = []struct {
	title    string
	bindings []binding
}{
	{"Navigation", []binding{
		{"1 2 3 4", "Jump to tab"},
		{"← → Tab", "Previous / next tab"},
		{"j k g G", "Move in lists"},
	}},
	{"Plan", []binding{
		{"c", "Calculate or edit the plan"},
		{"e Enter", "Edit saved amount"},
		{"Space x", "Mark period complete, or clear it"},
		{"a", "Attach evidence file"},
		{"s", "Save now"},
		{"R", "Reset plan"},
	}},
	{"General", []binding{
		{"Esc", "Cancel"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
}

// overlay centers body in a bordered card over the whole screen.
func (a App) overlay(body string, border lipgloss.Color, padX int) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(t.Surface).
		Padding(1, padX).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewForm() string {
	return a.overlay(a.form.View(), theme.Active.BorderAccent, 2)
}

func (a App) viewConfirmReset() string {
	t := theme.Active
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := warn.Render("Reset the savings plan?") + "\n\n" +
		muted.Render("All periods, amounts and evidence will be removed.") + "\n\n" +
		muted.Render("[y] reset   any other key cancels")
	return a.overlay(body, t.Orange, 3)
}

func (a App) viewHelp() string {
	t := theme.Active
	bg := lipgloss.NewStyle().Background(t.Surface)
	title := bg.Foreground(t.AccentBright).Bold(true)
	section := bg.Foreground(t.Accent).Bold(true)
	key := bg.Foreground(t.Cyan).Bold(true)
	desc := bg.Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(title.Render("◈ Keyboard Shortcuts"))
	for _, sec := range helpSections {
		b.WriteString("\n\n" + section.Render(sec.title))
		for _, bind := range sec.bindings {
			b.WriteString("\n  " + key.Render(fmt.Sprintf("%-10s", bind.keys)) + "  " + desc.Render(bind.desc))
		}
	}
	b.WriteString("\n\n" + bg.Foreground(t.TextDim).Render("Press any key to close"))
	return a.overlay(b.String(), t.BorderAccent, 3)
}

// fitHeight cuts or pads s to exactly h lines.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return strings.Join(lines[:h], "\n")
	}
	return s + strings.Repeat("\n", h-len(lines))
}
