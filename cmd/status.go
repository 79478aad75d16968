package cmd

import (
	"github.com/spf13/cobra"
)

var flagCompact bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the savings plan and progress",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&flagCompact, "compact", false, "Single progress line")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	s.report.Compact = flagCompact
	s.report.Render(s.mgr.State(), s.mgr.Progress())
	return nil
}
