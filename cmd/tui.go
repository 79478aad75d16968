package cmd

import (
	"path/filepath"

	"github.com/theirongolddev/planifica/internal/evidence"
	"github.com/theirongolddev/planifica/internal/store"
	"github.com/theirongolddev/planifica/internal/tui"
	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagNoWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload when another process changes the plan")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	dir := dataDir(cfg)
	st, err := store.Open(filepath.Join(dir, store.FileName))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ev := evidence.NewOSStore(filepath.Join(dir, evidenceDirName))
	return tui.Run(cmd.Context(), tui.Options{
		Store:    st,
		Evidence: ev,
		Reader:   evidence.NewReader(nil, ev),
		Config:   cfg,
		DataDir:  dir,
		Watch:    !flagNoWatch,
	})
}
