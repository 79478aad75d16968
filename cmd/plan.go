package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/theirongolddev/planifica/internal/config"
	"github.com/theirongolddev/planifica/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagIncome       string
	flagFixed        string
	flagLeisure      string
	flagPercent      string
	flagMonths       string
	flagPeriod       string
	flagSaveDefaults bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate per-period savings targets",
	Long: "Calculate how much to save each period. Omitted inputs come from the [defaults] " +
		"section of the config file; anything that is not a number counts as zero. " +
		"Recalculating keeps the amounts and evidence already recorded.",
	Args: cobra.NoArgs,
	RunE: runCalc,
}

var setCmd = &cobra.Command{
	Use:   "set <period> <amount>",
	Short: "Record the amount saved in a period",
	Args:  cobra.ExactArgs(2),
	RunE:  runSet,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <period>",
	Short: "Mark a period complete, or clear it",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

func init() {
	f := calcCmd.Flags()
	f.StringVar(&flagIncome, "income", "", "Monthly income")
	f.StringVar(&flagFixed, "fixed", "", "Monthly fixed expenses")
	f.StringVar(&flagLeisure, "leisure", "", "Monthly leisure expenses")
	f.StringVar(&flagPercent, "percent", "", "Percent of the surplus to save")
	f.StringVar(&flagMonths, "months", "", "Plan length in months")
	f.StringVar(&flagPeriod, "period", "", "monthly or semimonthly")
	f.BoolVar(&flagSaveDefaults, "save-defaults", false, "Store these inputs as config defaults")

	rootCmd.AddCommand(calcCmd, setCmd, toggleCmd)
}

// calcInputs overrides the configured defaults with the calc flags given.
func calcInputs(cmd *cobra.Command, d config.DefaultsConfig) model.PlanConfig {
	in := d.PlanConfig()
	f := cmd.Flags()
	if f.Changed("income") {
		in.Income = model.ParseAmount(flagIncome)
	}
	if f.Changed("fixed") {
		in.FixedExpenses = model.ParseAmount(flagFixed)
	}
	if f.Changed("leisure") {
		in.LeisureExpenses = model.ParseAmount(flagLeisure)
	}
	if f.Changed("percent") {
		in.SavingsPercent = model.ParseAmount(flagPercent)
	}
	if f.Changed("months") {
		in.Months = model.ParseMonths(flagMonths)
	}
	if f.Changed("period") {
		in.PeriodType = model.ParsePeriodType(flagPeriod)
	}
	return in.Normalized()
}

func runCalc(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	in := calcInputs(cmd, s.cfg.Defaults)
	slog.Debug("calc inputs",
		"income", in.Income, "fixed", in.FixedExpenses, "leisure", in.LeisureExpenses,
		"percent", in.SavingsPercent, "months", in.Months, "period", in.PeriodType)

	if _, err := s.mgr.Calculate(cmd.Context(), in); err != nil {
		return err
	}

	if flagSaveDefaults {
		s.cfg.Defaults.SetPlanConfig(in)
		if err := config.Save(s.cfg); err != nil {
			return fmt.Errorf("saving defaults: %w", err)
		}
	}
	return nil
}

// parsePeriod accepts "3", "P3" or "p3" and checks it against the plan.
func parsePeriod(arg string, count int) (int, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(arg), "P"), "p")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: use a number like 3 or P3", arg)
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("no period P%d: the plan has %d", n, count)
	}
	return n, nil
}

func runSet(cmd *cobra.Command, args []string) error {
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
	return s.mgr.SetSavedAmount(cmd.Context(), idx, model.ParseAmount(args[1]))
}

func runToggle(cmd *cobra.Command, args []string) error {
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
	return s.mgr.ToggleCompletion(cmd.Context(), idx)
}
