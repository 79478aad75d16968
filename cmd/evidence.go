package cmd

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/theirongolddev/planifica/internal/cli"
	"github.com/theirongolddev/planifica/internal/evidence"
	"github.com/theirongolddev/planifica/internal/model"
	"github.com/theirongolddev/planifica/internal/planner"

	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach <period> <file>",
	Short: "Attach a receipt image or PDF to a period",
	Long: "Attach proof of a deposit to a period. Images and PDFs up to 25 MiB are accepted; " +
		"the file is copied into the data directory. A file that cannot be read leaves the " +
		"period's current evidence untouched.",
	Args: cobra.ExactArgs(2),
	RunE: runAttach,
}

var evidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Inspect attached evidence",
}

var evidencePathCmd = &cobra.Command{
	Use:   "path <period>",
	Short: "Print where a period's evidence is stored",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvidencePath,
}

var evidenceOpenCmd = &cobra.Command{
	Use:   "open <period>",
	Short: "Open a period's evidence in the default viewer",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvidenceOpen,
}

func init() {
	evidenceCmd.AddCommand(evidencePathCmd, evidenceOpenCmd)
	rootCmd.AddCommand(attachCmd, evidenceCmd)
}

func runAttach(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.requirePlan(); err != nil {
		return err
	}

	idx, err := parsePeriod(args[0], s.mgr.State().PeriodCount)
	if err != nil {
		return err
	}

	r := evidence.NewReader(nil, s.evidence)
	if err := s.mgr.AttachEvidenceFrom(cmd.Context(), idx, r, args[1]); err != nil {
		if errors.Is(err, planner.ErrEvidenceUnavailable) {
			// Already reported by the renderer.
			return fmt.Errorf("%s unchanged", cli.PeriodLabel(idx))
		}
		return err
	}
	s.pruneEvidence()
	return nil
}

// periodEvidence resolves the evidence of the period named by arg.
func (s *session) periodEvidence(arg string) (model.Evidence, string, error) {
	if err := s.requirePlan(); err != nil {
		return model.Evidence{}, "", err
	}
	st := s.mgr.State()
	idx, err := parsePeriod(arg, st.PeriodCount)
	if err != nil {
		return model.Evidence{}, "", err
	}
	p, _ := st.Period(idx)
	if p == nil || p.Evidence == nil {
		return model.Evidence{}, "", fmt.Errorf("%s has no evidence attached", cli.PeriodLabel(idx))
	}

	path, err := s.evidence.Path(p.Evidence.Ref)
	if err != nil {
		return model.Evidence{}, "", err
	}
	if _, err := s.evidence.Stat(p.Evidence.Ref); err != nil {
		return model.Evidence{}, "", fmt.Errorf("%s (%s): %w", cli.PeriodLabel(idx), p.Evidence.Name, err)
	}
	return *p.Evidence, path, nil
}

func runEvidencePath(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	_, path, err := s.periodEvidence(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runEvidenceOpen(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ev, path, err := s.periodEvidence(args[0])
	if err != nil {
		return err
	}

	// The viewer outlives this process; do not tie it to the command context.
	var open *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		open = exec.Command("open", path)
	case "windows":
		open = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		open = exec.Command("xdg-open", path)
	}
	if err := open.Start(); err != nil {
		return fmt.Errorf("opening %s (%s): %w", ev.Name, ev.MediaType, err)
	}
	if !flagQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "  Opened %s (%s)\n", ev.Name, cli.FormatBytes(ev.SizeBytes))
	}
	return nil
}
