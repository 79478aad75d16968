// Package tui provides the interactive Bubble Tea dashboard for planifica.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/theirongolddev/planifica/internal/cli"
	"github.com/theirongolddev/planifica/internal/config"
	"github.com/theirongolddev/planifica/internal/evidence"
	"github.com/theirongolddev/planifica/internal/planner"
	"github.com/theirongolddev/planifica/internal/tui/components"
	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
)

// Options wires the dashboard to its collaborators.
type Options struct {
	Store    planner.Persister
	Evidence *evidence.Store
	Reader   planner.EvidenceReader
	Config   config.Config
	DataDir  string
	// Watch reloads the plan when another process writes it.
	Watch bool
}

// App is the root Bubble Tea model.
type App struct {
	ctx      context.Context
	mgr      *planner.Manager
	notices  *notices
	evidence *evidence.Store
	reader   planner.EvidenceReader
	cfg      config.Config
	dataDir  string
	watcher  *fsnotify.Watcher

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	periods  periodsState
	gallery  galleryState
	settings settingsState

	// Plan form (huh)
	form     *huh.Form
	formVals *planValues

	confirmReset bool

	// Background evidence read
	spinner spinner.Model
	reading int // period index being read, 0 when idle

	flash         flashState
	lastWrite     time.Time
	reloadPending bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height

	tabOverview = 0
	tabPeriods  = 1
	tabEvidence = 2
	tabSettings = 3
)

// NewApp loads the plan and returns the dashboard model.
func NewApp(ctx context.Context, opts Options) (App, error) {
	n := &notices{}
	mgr, err := planner.Open(ctx, opts.Store, n)
	if err != nil {
		return App{}, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		ctx:      ctx,
		mgr:      mgr,
		notices:  n,
		evidence: opts.Evidence,
		reader:   opts.Reader,
		cfg:      opts.Config,
		dataDir:  opts.DataDir,
		spinner:  sp,
	}
	if opts.Watch && opts.DataDir != "" {
		a.watcher = newPlanWatcher(opts.DataDir)
	}

	// First run: go straight to the plan form.
	if a.mgr.State().IsEmpty() {
		a.openPlanForm()
	}
	return a, nil
}

// Close releases the file watcher.
func (a App) Close() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	app, err := NewApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if fa, ok := final.(App); ok {
		if err := fa.mgr.Save(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		waitForPlanChange(a.watcher),
	}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) openPlanForm() {
	a.formVals = planValuesFrom(a.cfg.Defaults)
	a.form = newPlanForm(a.formVals, a.currency())
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, 72)).WithHeight(a.height)
	}
}

func (a App) currency() string {
	return a.cfg.General.Currency
}

func (a App) money(d decimal.Decimal) string {
	return cli.FormatMoney(a.currency(), d)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 72)).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp || a.confirmReset {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a.updateKey(msg)

	case evidenceReadMsg:
		return a.finishEvidenceRead(msg)

	case spinner.TickMsg:
		if a.reading != 0 {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case clearFlashMsg:
		if msg.seq == a.flash.seq {
			a.flash.text = ""
		}
		return a, nil

	case planChangedMsg:
		cmds := []tea.Cmd{waitForPlanChange(a.watcher)}
		if !a.reloadPending {
			a.reloadPending = true
			cmds = append(cmds, tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
				return reloadPlanMsg{}
			}))
		}
		return a, tea.Batch(cmds...)

	case reloadPlanMsg:
		a.reloadPending = false
		if time.Since(a.lastWrite) < reloadQuiet {
			return a, nil
		}
		if err := a.mgr.Reload(a.ctx); err != nil {
			return a, a.flashError("Reload", err)
		}
		a.clampCursors()
		return a, a.setFlash("Plan reloaded", false)
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.periods.mode != periodsBrowse {
		var cmd tea.Cmd
		a.periods.input, cmd = a.periods.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

type reloadPlanMsg struct{}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.confirmReset {
		a.confirmReset = false
		if key == "y" || key == "Y" {
			return a.resetPlan()
		}
		return a, a.setFlash("Reset cancelled", false)
	}

	// Text inputs intercept all keys while active
	if a.activeTab == tabPeriods && a.periods.mode != periodsBrowse {
		return a.updatePeriodsInput(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Tab-specific bindings first
	switch a.activeTab {
	case tabPeriods:
		if m, cmd, ok := a.updatePeriodsKey(key); ok {
			return m, cmd
		}
	case tabEvidence:
		if m, cmd, ok := a.updateGalleryKey(key); ok {
			return m, cmd
		}
	case tabSettings:
		if m, cmd, ok := a.updateSettingsKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "c":
		a.openPlanForm()
		return a, a.form.Init()
	case "R":
		if a.mgr.State().IsEmpty() {
			return a, nil
		}
		a.confirmReset = true
		return a, nil
	case "s":
		a.lastWrite = time.Now()
		if err := a.mgr.Save(a.ctx); err != nil {
			return a, a.flashError("Save", err)
		}
		return a, a.setFlash("Saved locally", false)
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabPeriods && a.periods.mode == periodsBrowse {
			a.periods.move(-1, len(a.mgr.State().Periods))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabPeriods && a.periods.mode == periodsBrowse {
			a.periods.move(1, len(a.mgr.State().Periods))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" && !a.mgr.State().IsEmpty() {
		a.form = nil
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		vals := a.formVals
		a.form = nil
		a.formVals = nil
		return a.applyPlanForm(vals)
	case huh.StateAborted:
		a.form = nil
		a.formVals = nil
		return a, nil
	}
	return a, cmd
}

func (a App) applyPlanForm(v *planValues) (tea.Model, tea.Cmd) {
	cfg := v.config()
	a.lastWrite = time.Now()
	t, err := a.mgr.Calculate(a.ctx, cfg)
	if err != nil {
		return a, a.flashError("Calculate", err)
	}
	a.clampCursors()

	if v.remember {
		a.cfg.Defaults.SetPlanConfig(cfg)
		if err := config.Save(a.cfg); err != nil {
			slog.Warn("saving plan defaults", "error", err)
		}
	}

	return a, a.setFlash(fmt.Sprintf("Plan: %d periods of %s",
		t.PeriodCount, cli.FormatMoney(a.currency(), t.PerPeriodTarget)), false)
}

func (a App) resetPlan() (tea.Model, tea.Cmd) {
	a.lastWrite = time.Now()
	if err := a.mgr.Reset(a.ctx); err != nil {
		return a, a.flashError("Reset", err)
	}
	a.pruneEvidence()
	a.periods = periodsState{}
	a.gallery = galleryState{}
	a.activeTab = tabOverview
	return a, a.setFlash("Plan reset", false)
}

// pruneEvidence drops blobs no longer referenced by the plan. It is skipped
// while a read is in flight so the new blob is not removed before it is
// attached.
func (a *App) pruneEvidence() {
	if a.evidence == nil || a.reading != 0 {
		return
	}
	st := a.mgr.State()
	if _, err := a.evidence.Prune(st.EvidenceRefs()); err != nil {
		slog.Warn("pruning evidence", "error", err)
	}
}

func (a *App) clampCursors() {
	n := len(a.mgr.State().Periods)
	a.periods.move(0, n)
	a.gallery.clamp(len(a.evidenceItems()))
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	if a.confirmReset {
		return a.viewConfirmReset()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  planifica needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return fitHeight(msg, h)
}

func (a App) statusHints() string {
	switch {
	case a.activeTab == tabPeriods && a.periods.mode != periodsBrowse:
		return "[Enter] apply  [Esc] cancel"
	case a.activeTab == tabPeriods:
		return "[e]dit  [space] toggle  [a]ttach  [c]alc  [?]help  [q]uit"
	case a.activeTab == tabSettings:
		return "[j/k] navigate  [Enter] edit  [?]help  [q]uit"
	default:
		return "[c]alc  [s]ave  [R]eset  [?]help  [q]uit"
	}
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header and status bar
	header := components.RenderTabBar(a.activeTab, w, "◈ planifica")

	flash := a.flash.text
	if a.reading != 0 {
		flash = a.spinner.View() + " reading evidence for " + cli.PeriodLabel(a.reading)
	}
	updated := ""
	if st := a.mgr.State(); !st.UpdatedAt.IsZero() {
		updated = "updated " + cli.FormatAgo(st.UpdatedAt)
	}
	statusBar := components.RenderStatusBar(w, a.statusHints(), flash, a.flash.warn, updated)

	// 2. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 3. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabPeriods:
		content = a.renderPeriodsTab(cw, contentH)
	case tabEvidence:
		content = a.renderEvidenceTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 4. Exactly contentH lines, centered on the background
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, fitHeight(content, contentH),
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same widths used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
