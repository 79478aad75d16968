package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/theirongolddev/planifica/internal/cli"
	"github.com/theirongolddev/planifica/internal/snapshot"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the plan as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the plan with an exported snapshot",
	Long: "Replace the plan with a JSON or YAML snapshot written by export. Periods are " +
		"renumbered, negative amounts become zero and evidence references are kept as is.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "json or yaml (default from --output extension, else json)")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to file instead of stdout")
	importCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "json or yaml (default from file extension)")
	rootCmd.AddCommand(exportCmd, importCmd)
}

// snapshotFormat picks the explicit --format or guesses from path.
func snapshotFormat(path string) (snapshot.Format, error) {
	if flagFormat != "" {
		return snapshot.ParseFormat(flagFormat)
	}
	return snapshot.FormatForPath(path), nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	f, err := snapshotFormat(flagOutput)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.requirePlan(); err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if flagOutput != "" {
		file, err := os.OpenFile(flagOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagOutput, err)
		}
		defer func() { _ = file.Close() }()
		w = file
	}

	if err := snapshot.Encode(w, s.mgr.State(), f); err != nil {
		return err
	}
	if flagOutput != "" && !flagQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "  Exported %d periods to %s\n", s.mgr.State().PeriodCount, flagOutput)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := snapshotFormat(path)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	st, err := snapshot.Decode(file, f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	s, err := openSession(cmd.Context(), cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.mgr.Replace(cmd.Context(), st); err != nil {
		return err
	}

	// Evidence blobs travel separately from the snapshot.
	for _, p := range s.mgr.State().Periods {
		if p.Evidence != nil && !s.evidence.Exists(p.Evidence.Ref) {
			slog.Warn("imported evidence missing from data directory",
				"period", cli.PeriodLabel(p.Index), "file", p.Evidence.Name)
		}
	}
	s.pruneEvidence()
	return nil
}
