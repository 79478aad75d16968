package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/planifica/internal/cli"
	"github.com/theirongolddev/planifica/internal/model"
	"github.com/theirongolddev/planifica/internal/tui/components"
	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type periodsMode int

const (
	periodsBrowse periodsMode = iota
	periodsEditAmount
	periodsAttach
)

// periodsState tracks the periods tab state.
type periodsState struct {
	cursor int
	mode   periodsMode
	input  textinput.Model
	err    string // validation message for the active input
}

// move shifts the cursor by delta and clamps it to n periods.
func (p *periodsState) move(delta, n int) {
	p.cursor += delta
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func newPeriodInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 48
	ti.SetValue(value)
	ti.Focus()
	return ti
}

// selectedIndex returns the 1-based index of the period under the cursor.
func (a App) selectedIndex() (int, bool) {
	st := a.mgr.State()
	if a.periods.cursor < 0 || a.periods.cursor >= len(st.Periods) {
		return 0, false
	}
	return st.Periods[a.periods.cursor].Index, true
}

func (a App) updatePeriodsKey(key string) (App, tea.Cmd, bool) {
	n := len(a.mgr.State().Periods)

	switch key {
	case "j", "down":
		a.periods.move(1, n)
	case "k", "up":
		a.periods.move(-1, n)
	case "g", "home":
		a.periods.cursor = 0
	case "G", "end":
		a.periods.move(n, n)
	case "e", "enter":
		idx, ok := a.selectedIndex()
		if !ok {
			return a, nil, true
		}
		st := a.mgr.State()
		value := ""
		if p, ok := st.Period(idx); ok && !p.SavedAmount.IsZero() {
			value = p.SavedAmount.StringFixed(2)
		}
		a.periods.mode = periodsEditAmount
		a.periods.err = ""
		a.periods.input = newPeriodInput("amount saved", value)
		return a, textinput.Blink, true
	case " ", "space", "x":
		idx, ok := a.selectedIndex()
		if !ok {
			return a, nil, true
		}
		a.lastWrite = time.Now()
		if err := a.mgr.ToggleCompletion(a.ctx, idx); err != nil {
			return a, a.flashError("Toggle", err), true
		}
		return a, nil, true
	case "a":
		if _, ok := a.selectedIndex(); !ok || a.reader == nil {
			return a, nil, true
		}
		if a.reading != 0 {
			return a, a.setFlash("An evidence file is still being read", true), true
		}
		a.periods.mode = periodsAttach
		a.periods.err = ""
		a.periods.input = newPeriodInput("path to image or PDF", "")
		return a, textinput.Blink, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updatePeriodsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.periods.mode = periodsBrowse
		a.periods.err = ""
		return a, nil
	case "enter":
		return a.submitPeriodsInput()
	}

	var cmd tea.Cmd
	a.periods.input, cmd = a.periods.input.Update(msg)
	return a, cmd
}

func (a App) submitPeriodsInput() (tea.Model, tea.Cmd) {
	idx, ok := a.selectedIndex()
	if !ok {
		a.periods.mode = periodsBrowse
		return a, nil
	}
	val := strings.TrimSpace(a.periods.input.Value())

	switch a.periods.mode {
	case periodsEditAmount:
		amount := model.ParseAmount(val)
		a.periods.mode = periodsBrowse
		a.lastWrite = time.Now()
		if err := a.mgr.SetSavedAmount(a.ctx, idx, amount); err != nil {
			return a, a.flashError("Save amount", err)
		}
		return a, nil

	case periodsAttach:
		if val == "" {
			a.periods.err = "enter a file path"
			return a, nil
		}
		a.periods.mode = periodsBrowse
		a.reading = idx
		return a, tea.Batch(
			readEvidenceCmd(a.ctx, a.reader, idx, expandPath(val)),
			a.spinner.Tick,
		)
	}

	a.periods.mode = periodsBrowse
	return a, nil
}

func (a App) finishEvidenceRead(msg evidenceReadMsg) (tea.Model, tea.Cmd) {
	a.reading = 0

	if msg.err != nil {
		a.mgr.EvidenceFailed(msg.index, msg.err)
		if f := a.notices.takeFailure(); f != nil {
			return a, a.setFlash(fmt.Sprintf("Evidence unavailable for %s: %v", cli.PeriodLabel(f.index), rootCause(f.err)), true)
		}
		return a, nil
	}

	st := a.mgr.State()
	if _, ok := st.Period(msg.index); !ok {
		a.pruneEvidence()
		return a, a.setFlash(fmt.Sprintf("%s no longer exists; %s was not attached", cli.PeriodLabel(msg.index), msg.ev.Name), true)
	}

	a.lastWrite = time.Now()
	if err := a.mgr.AttachEvidence(a.ctx, msg.index, msg.ev); err != nil {
		return a, a.flashError("Attach", err)
	}
	a.pruneEvidence()
	a.gallery.clamp(len(a.evidenceItems()))
	return a, a.setFlash(fmt.Sprintf("Attached %s to %s", msg.ev.Name, cli.PeriodLabel(msg.index)), false)
}

// expandPath resolves a leading ~ to the home directory.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// rootCause unwraps err to its innermost message for short status lines.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func (a App) renderPeriodsTab(cw, h int) string {
	t := theme.Active
	st := a.mgr.State()

	if st.IsEmpty() {
		return components.ContentCard("Periods", emptyPlanHint(), cw)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	moneyW := len(a.money(st.PerPeriodTarget))
	if w := len(a.money(st.TotalTarget)); w > moneyW {
		moneyW = w
	}
	evW := innerW - 6 - 2*(moneyW+2) - 12
	if evW < 8 {
		evW = 8
	}

	// Visible window: card border, title, header and the input/footer lines
	visible := h - 7
	if visible < 3 {
		visible = 3
	}
	offset := 0
	if a.periods.cursor >= visible {
		offset = a.periods.cursor - visible + 1
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-6s%*s  %*s  %-10s  %s",
		"", moneyW, "Target", moneyW, "Saved", "Status", "Evidence")))
	b.WriteString("\n")

	end := min(offset+visible, len(st.Periods))
	for i := offset; i < end; i++ {
		p := st.Periods[i]
		status := components.Segment{Text: fmt.Sprintf("%-10s  ", "Mark"), Color: t.TextDim}
		if p.Completed(st.PerPeriodTarget) {
			status = components.Segment{Text: fmt.Sprintf("%-10s  ", "Completed"), Color: t.GreenBright}
		}
		ev := components.Segment{Text: "-", Color: t.TextDim}
		if p.Evidence != nil {
			ev = components.Segment{Text: truncStr(p.Evidence.Name, evW), Color: t.Cyan}
		}
		amounts := components.Segment{
			Text: fmt.Sprintf("%-4s%*s  %*s  ", cli.PeriodLabel(p.Index),
				moneyW, a.money(st.PerPeriodTarget), moneyW, a.money(p.SavedAmount)),
			Color: t.TextPrimary,
		}
		b.WriteString(components.ListRow([]components.Segment{amounts, status, ev}, i == a.periods.cursor, innerW))
		b.WriteString("\n")
	}
	if len(st.Periods) > visible {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d-%d of %d", offset+1, end, len(st.Periods))))
		b.WriteString("\n")
	}

	switch a.periods.mode {
	case periodsEditAmount, periodsAttach:
		label := "Saved amount: "
		if a.periods.mode == periodsAttach {
			label = "Evidence file: "
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(label))
		b.WriteString(a.periods.input.View())
		if a.periods.err != "" {
			b.WriteString("\n")
			b.WriteString(warnStyle.Render(a.periods.err))
		}
	}

	title := fmt.Sprintf("Periods (%d)", len(st.Periods))
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), cw)
}
