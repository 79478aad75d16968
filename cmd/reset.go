package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the savings plan, its progress and evidence",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.mgr.State().IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), "  Nothing to reset.")
		return nil
	}

	if !flagYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("refusing to reset without --yes when stdin is not a terminal")
		}
		confirmed := false
		err := huh.NewConfirm().
			Title("Reset the savings plan?").
			Description("All periods, amounts and evidence will be removed.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirmation: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "  Reset cancelled.")
			return nil
		}
	}

	if err := s.mgr.Reset(cmd.Context()); err != nil {
		return err
	}
	s.pruneEvidence()
	return nil
}
