package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theirongolddev/planifica/internal/cli"
	"github.com/theirongolddev/planifica/internal/config"
	"github.com/theirongolddev/planifica/internal/model"
	"github.com/theirongolddev/planifica/internal/store"
	"github.com/theirongolddev/planifica/internal/tui/components"
	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldMonths
	settingsFieldPeriod
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) updateSettingsKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		return a.settingsStartEdit()
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (App, tea.Cmd, bool) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldCurrency:
		ti.Placeholder = cli.DefaultCurrency
		ti.SetValue(a.cfg.General.Currency)
	case settingsFieldMonths:
		ti.Placeholder = "12"
		if a.cfg.Defaults.Months > 0 {
			ti.SetValue(strconv.Itoa(a.cfg.Defaults.Months))
		}
	case settingsFieldPeriod:
		ti.Placeholder = "monthly or semimonthly"
		ti.SetValue(a.cfg.Defaults.PeriodType)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd(), true
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited field and writes the config file. The
// in-memory config only changes when the new value validates.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Exists(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
	case settingsFieldCurrency:
		cfg.General.Currency = val
	case settingsFieldMonths:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			a.settings.saveErr = errors.New("months must be a whole number of at least 1")
			return
		}
		cfg.Defaults.Months = n
	case settingsFieldPeriod:
		if val == "" {
			val = string(model.PeriodMonthly)
		}
		cfg.Defaults.PeriodType = string(model.ParsePeriodType(val))
	}

	if err := config.Save(cfg); err != nil {
		a.settings.saveErr = err
		return
	}
	a.cfg = cfg
	a.settings.saveErr = nil
	theme.SetActive(cfg.Appearance.Theme)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	orUnset := func(s string) string {
		if s == "" {
			return "(not set)"
		}
		return s
	}
	months := "(not set)"
	if cfg.Defaults.Months > 0 {
		months = strconv.Itoa(cfg.Defaults.Months)
	}

	fields := []struct{ label, value string }{
		{"Theme", cfg.Appearance.Theme},
		{"Currency", orUnset(cfg.General.Currency)},
		{"Default Months", months},
		{"Default Period", model.ParsePeriodType(cfg.Defaults.PeriodType).Label()},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		selected := i == a.settings.cursor
		if selected && a.settings.editing {
			edit := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
			formBody.WriteString(edit.Render(fmt.Sprintf("▸ %-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}
		labelColor := t.TextMuted
		if selected {
			labelColor = t.Accent
		}
		formBody.WriteString(components.ListRow([]components.Segment{
			{Text: fmt.Sprintf("%-18s ", f.label+":"), Color: labelColor},
			{Text: f.value, Color: t.TextPrimary},
		}, selected, innerW))
		formBody.WriteString("\n")
	}

	switch {
	case a.settings.saveErr != nil:
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n" + warnStyle.Render("Save failed: "+a.settings.saveErr.Error()))
	case a.settings.saved:
		okStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
		formBody.WriteString("\n" + okStyle.Render("Saved to "+config.ConfigPath()))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// Storage info card
	st := a.mgr.State()
	info := []struct{ label, value string }{
		{"Data directory", orUnset(a.dataDir)},
		{"Plan database", orUnset(a.planPath())},
		{"Evidence", orUnset(a.evidenceDir())},
		{"Config file", config.ConfigPath()},
		{"Plan ID", orUnset(st.PlanID)},
		{"Last updated", cli.FormatAgo(st.UpdatedAt)},
	}
	var infoBody strings.Builder
	for i, f := range info {
		if i > 0 {
			infoBody.WriteString("\n")
		}
		infoBody.WriteString(labelStyle.Render(fmt.Sprintf("%-17s", f.label+":")))
		infoBody.WriteString(valueStyle.Render(truncStr(f.value, innerW-17)))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Storage", infoBody.String(), cw))
	return b.String()
}

func (a App) planPath() string {
	if a.dataDir == "" {
		return ""
	}
	return filepath.Join(a.dataDir, store.FileName)
}

func (a App) evidenceDir() string {
	if a.evidence == nil {
		return ""
	}
	return a.evidence.Dir()
}
