package tui

import (
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/planifica/internal/config"
	"github.com/theirongolddev/planifica/internal/model"
)

// planValues backs the plan form fields. It lives on the heap so the form's
// field bindings survive App copies.
type planValues struct {
	income   string
	fixed    string
	leisure  string
	percent  string
	months   string
	period   string
	remember bool
}

func planValuesFrom(d config.DefaultsConfig) *planValues {
	months := ""
	if d.Months > 0 {
		months = strconv.Itoa(d.Months)
	}
	period := string(model.ParsePeriodType(d.PeriodType))
	return &planValues{
		income:   d.Income,
		fixed:    d.Fixed,
		leisure:  d.Leisure,
		percent:  d.SavingsPercent,
		months:   months,
		period:   period,
		remember: true,
	}
}

// config converts the form input into plan inputs, coercing anything invalid.
func (v *planValues) config() model.PlanConfig {
	return model.PlanConfig{
		Income:          model.ParseAmount(v.income),
		FixedExpenses:   model.ParseAmount(v.fixed),
		LeisureExpenses: model.ParseAmount(v.leisure),
		SavingsPercent:  model.ParseAmount(v.percent),
		Months:          model.ParseMonths(v.months),
		PeriodType:      model.ParsePeriodType(v.period),
	}.Normalized()
}

func newPlanForm(v *planValues, currency string) *huh.Form {
	amountTitle := func(label string) string {
		if currency == "" {
			return label
		}
		return label + " (" + currency + ")"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Savings plan").
				Description("Monthly figures. Blank or unreadable fields count as zero.\nRecalculating keeps the progress you already recorded."),

			huh.NewInput().
				Title(amountTitle("Income")).
				Placeholder("50000").
				Value(&v.income),

			huh.NewInput().
				Title(amountTitle("Fixed expenses")).
				Placeholder("20000").
				Value(&v.fixed),

			huh.NewInput().
				Title(amountTitle("Leisure expenses")).
				Placeholder("5000").
				Value(&v.leisure),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Savings percent of surplus").
				Placeholder("20").
				Value(&v.percent),

			huh.NewInput().
				Title("Months").
				Placeholder("12").
				Value(&v.months),

			huh.NewSelect[string]().
				Title("Period").
				Options(
					huh.NewOption("Monthly", string(model.PeriodMonthly)),
					huh.NewOption("Semi-monthly (twice a month)", string(model.PeriodSemiMonthly)),
				).
				Value(&v.period),

			huh.NewConfirm().
				Title("Remember these as defaults?").
				Affirmative("Yes").
				Negative("No").
				Value(&v.remember),
		),
	).WithTheme(huh.ThemeDracula())
}
