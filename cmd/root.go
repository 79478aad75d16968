package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/theirongolddev/planifica/internal/cli"
	"github.com/theirongolddev/planifica/internal/config"
	"github.com/theirongolddev/planifica/internal/evidence"
	"github.com/theirongolddev/planifica/internal/planner"
	"github.com/theirongolddev/planifica/internal/store"
	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagDataDir string
	flagQuiet   bool
	flagVerbose bool
)

// evidenceDirName is the blob directory inside the data directory.
const evidenceDirName = "evidence"

var errNoPlan = errors.New("no savings plan yet, run `planifica calc` first")

var rootCmd = &cobra.Command{
	Use:               "planifica",
	Short:             "Savings goal planner",
	Long:              "Plan how much to save each period from your income and expenses, then track deposits and receipts.",
	SilenceUsage:      true,
	PersistentPreRunE: setupRuntime,
	RunE:              runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default from config or "+config.DataDirEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print errors after changes")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Debug logging on stderr")
}

func setupRuntime(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if err := config.LoadEnv(); err != nil {
		slog.Warn("loading .env", "error", err)
	}

	// Plain output when piped.
	if f, ok := cmd.OutOrStdout().(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return nil
}

// loadConfig returns the user config, falling back to defaults when the file
// is missing or invalid.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("using default config", "error", err)
		return config.DefaultConfig()
	}
	return cfg
}

func dataDir(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	return config.DataDir(cfg)
}

// session is the plan opened for one command.
type session struct {
	cfg      config.Config
	dataDir  string
	store    *store.Store
	evidence *evidence.Store
	report   *cli.Report
	mgr      *planner.Manager
}

// openSession loads the plan. Mutating commands pass compact so each change
// prints a single progress line, which --quiet suppresses.
func openSession(ctx context.Context, cmd *cobra.Command, compact bool) (*session, error) {
	cfg := loadConfig()
	dir := dataDir(cfg)

	st, err := store.Open(filepath.Join(dir, store.FileName))
	if err != nil {
		return nil, err
	}

	var out io.Writer = cmd.OutOrStdout()
	if compact && flagQuiet {
		out = io.Discard
	}
	cli.UseTheme(theme.ByName(cfg.Appearance.Theme))
	report := cli.NewReport(out, cfg.General.Currency)
	report.Compact = compact

	mgr, err := planner.Open(ctx, st, report)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &session{
		cfg:      cfg,
		dataDir:  dir,
		store:    st,
		evidence: evidence.NewOSStore(filepath.Join(dir, evidenceDirName)),
		report:   report,
		mgr:      mgr,
	}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		slog.Warn("closing plan store", "error", err)
	}
}

// pruneEvidence removes blobs the plan no longer references.
func (s *session) pruneEvidence() {
	st := s.mgr.State()
	if _, err := s.evidence.Prune(st.EvidenceRefs()); err != nil {
		slog.Warn("pruning evidence", "error", err)
	}
}

// requirePlan fails when there is nothing to act on yet.
func (s *session) requirePlan() error {
	if s.mgr.State().IsEmpty() {
		return errNoPlan
	}
	return nil
}
