// Package planner derives savings schedules from plan inputs, reconciles
// recorded progress when the inputs change and aggregates that progress.
package planner

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

// MoneyPlaces is the number of decimal places amounts are stored with.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Targets is the output of Calculate.
type Targets struct {
	Surplus         decimal.Decimal
	MonthlySavings  decimal.Decimal
	PerPeriodTarget decimal.Decimal
	TotalTarget     decimal.Decimal
	PeriodCount     int
}

// Calculate derives the per-period and total savings targets from cfg.
// Inputs are normalized first, so Calculate never fails.
func Calculate(cfg model.PlanConfig) Targets {
	cfg = cfg.Normalized()

	surplus := cfg.Income.Sub(cfg.FixedExpenses.Add(cfg.LeisureExpenses))
	if surplus.IsNegative() {
		surplus = decimal.Zero
	}
	monthly := surplus.Mul(cfg.SavingsPercent).Div(hundred)

	perMonth := cfg.PeriodType.PeriodsPerMonth()
	perPeriod := monthly
	if perMonth > 1 {
		perPeriod = monthly.Div(decimal.NewFromInt(int64(perMonth)))
	}

	return Targets{
		Surplus:         RoundMoney(surplus),
		MonthlySavings:  RoundMoney(monthly),
		PerPeriodTarget: RoundMoney(perPeriod),
		TotalTarget:     RoundMoney(monthly.Mul(decimal.NewFromInt(int64(cfg.Months)))),
		PeriodCount:     cfg.Months * perMonth,
	}
}

// RoundMoney rounds d to cents, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
