package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/planifica/internal/config"
	"github.com/theirongolddev/planifica/internal/model"
	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure currency, theme and default plan inputs",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	out := cmd.OutOrStdout()

	months := ""
	if cfg.Defaults.Months > 0 {
		months = strconv.Itoa(cfg.Defaults.Months)
	}
	period := string(model.ParsePeriodType(cfg.Defaults.PeriodType))

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to planifica!").
				Description("These settings are stored in "+config.ConfigPath()+"\nand can be changed anytime."),
			huh.NewInput().
				Title("Currency symbol").
				Placeholder("RD$").
				Validate(func(s string) error {
					if len(s) > 8 {
						return errors.New("use at most 8 characters")
					}
					return nil
				}).
				Value(&cfg.General.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
		),
		huh.NewGroup(
			huh.NewNote().
				Title("Default plan inputs").
				Description("Used by `planifica calc` and the TUI form when a value is not given."),
			huh.NewInput().Title("Monthly income").Value(&cfg.Defaults.Income),
			huh.NewInput().Title("Fixed expenses").Value(&cfg.Defaults.Fixed),
			huh.NewInput().Title("Leisure expenses").Value(&cfg.Defaults.Leisure),
			huh.NewInput().Title("Savings percent").Value(&cfg.Defaults.SavingsPercent),
			huh.NewInput().Title("Months").Value(&months),
			huh.NewSelect[string]().
				Title("Period").
				Options(
					huh.NewOption("Monthly", string(model.PeriodMonthly)),
					huh.NewOption("Semi-monthly", string(model.PeriodSemiMonthly)),
				).
				Value(&period),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(out, "  Setup cancelled.")
			return nil
		}
		return err
	}

	// Store amounts in their canonical numeric form.
	for _, v := range []*string{&cfg.Defaults.Income, &cfg.Defaults.Fixed, &cfg.Defaults.Leisure, &cfg.Defaults.SavingsPercent} {
		if strings.TrimSpace(*v) != "" {
			*v = model.ParseAmount(*v).String()
		}
	}
	cfg.Defaults.Months = 0
	if strings.TrimSpace(months) != "" {
		cfg.Defaults.Months = model.ParseMonths(months)
	}
	cfg.Defaults.PeriodType = period

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.ConfigPath())
	fmt.Fprintln(out, "  Run `planifica setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}
