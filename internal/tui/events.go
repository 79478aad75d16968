package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/planifica/internal/model"
	"github.com/theirongolddev/planifica/internal/planner"
)

const flashDuration = 3 * time.Second

// notices is the planner.Renderer of the TUI. Views read the manager state
// directly, so it only keeps what the next Update has to surface.
type notices struct {
	renders int
	failure *evidenceFailure
}

type evidenceFailure struct {
	index int
	err   error
}

func (n *notices) Render(model.PlanState, model.Progress) {
	n.renders++
}

func (n *notices) EvidenceUnavailable(index int, err error) {
	n.failure = &evidenceFailure{index: index, err: err}
}

// takeFailure returns and clears the last evidence failure.
func (n *notices) takeFailure() *evidenceFailure {
	f := n.failure
	n.failure = nil
	return f
}

// evidenceReadMsg carries the result of a background evidence read.
type evidenceReadMsg struct {
	index int
	path  string
	ev    model.Evidence
	err   error
}

func readEvidenceCmd(ctx context.Context, r planner.EvidenceReader, index int, path string) tea.Cmd {
	return func() tea.Msg {
		ev, err := r.ReadEvidence(ctx, path)
		return evidenceReadMsg{index: index, path: path, ev: ev, err: err}
	}
}

type flashState struct {
	text string
	warn bool
	seq  int
}

type clearFlashMsg struct{ seq int }

func (a *App) setFlash(text string, warn bool) tea.Cmd {
	a.flash.seq++
	a.flash.text = text
	a.flash.warn = warn
	seq := a.flash.seq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{seq: seq}
	})
}

func (a *App) flashError(action string, err error) tea.Cmd {
	return a.setFlash(fmt.Sprintf("%s failed: %v", action, err), true)
}
