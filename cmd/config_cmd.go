// Package cmd implements the planifica CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/planifica/internal/config"
	"github.com/theirongolddev/planifica/internal/model"
	"github.com/theirongolddev/planifica/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	dir := dataDir(cfg)

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Data directory: %s\n", dir)
	dbPath := filepath.Join(dir, store.FileName)
	fmt.Fprintf(out, "    Plan database:  %s\n", dbPath)
	if n, err := evidenceCount(cmd.Context(), dbPath); err == nil {
		fmt.Fprintf(out, "    Evidence:       %d attached\n", n)
	}
	fmt.Fprintf(out, "    Currency:       %s\n", orNotSet(cfg.General.Currency))
	fmt.Fprintln(out)

	d := cfg.Defaults
	fmt.Fprintln(out, "  [Defaults]")
	fmt.Fprintf(out, "    Income:          %s\n", orNotSet(d.Income))
	fmt.Fprintf(out, "    Fixed expenses:  %s\n", orNotSet(d.Fixed))
	fmt.Fprintf(out, "    Leisure:         %s\n", orNotSet(d.Leisure))
	fmt.Fprintf(out, "    Savings percent: %s\n", orNotSet(d.SavingsPercent))
	if d.Months > 0 {
		fmt.Fprintf(out, "    Months:          %d\n", d.Months)
	} else {
		fmt.Fprintln(out, "    Months:          not set")
	}
	fmt.Fprintf(out, "    Period:          %s\n", model.ParsePeriodType(d.PeriodType).Label())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `planifica setup` to reconfigure.")
	return nil
}

// evidenceCount reads how many periods carry evidence without creating a
// database that does not exist yet.
func evidenceCount(ctx context.Context, dbPath string) (int, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return 0, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = st.Close() }()
	return st.EvidenceCount(ctx)
}

func orNotSet(s string) string {
	if s == "" {
		return "not set"
	}
	return s
}
