package tui

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/theirongolddev/planifica/internal/store"
)

// reloadQuiet suppresses reloads caused by the app's own writes.
const reloadQuiet = time.Second

// planChangedMsg is sent when another process writes the plan database.
type planChangedMsg struct{}

// newPlanWatcher watches dir for writes to the plan database. A nil watcher
// is returned when the platform cannot watch.
func newPlanWatcher(dir string) *fsnotify.Watcher {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("plan watcher unavailable", "error", err)
		return nil
	}
	if err := w.Add(dir); err != nil {
		slog.Warn("plan watcher unavailable", "dir", dir, "error", err)
		_ = w.Close()
		return nil
	}
	return w
}

func isPlanWrite(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
		return false
	}
	// The WAL file changes on every commit.
	return strings.HasPrefix(filepath.Base(ev.Name), store.FileName)
}

// waitForPlanChange blocks until the next relevant event. It returns nil
// once the watcher is closed.
func waitForPlanChange(w *fsnotify.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if isPlanWrite(ev) {
					return planChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				slog.Warn("plan watcher error", "error", err)
			}
		}
	}
}
