package planner

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate_SemiMonthlyExample(t *testing.T) {
	got := Calculate(model.PlanConfig{
		Income:          dec("50000"),
		FixedExpenses:   dec("20000"),
		LeisureExpenses: dec("5000"),
		SavingsPercent:  dec("20"),
		Months:          3,
		PeriodType:      model.PeriodSemiMonthly,
	})

	if !got.Surplus.Equal(dec("25000")) {
		t.Errorf("Surplus = %s, want 25000", got.Surplus)
	}
	if !got.MonthlySavings.Equal(dec("5000")) {
		t.Errorf("MonthlySavings = %s, want 5000", got.MonthlySavings)
	}
	if got.PerPeriodTarget.StringFixed(2) != "2500.00" {
		t.Errorf("PerPeriodTarget = %s, want 2500.00", got.PerPeriodTarget.StringFixed(2))
	}
	if got.TotalTarget.StringFixed(2) != "15000.00" {
		t.Errorf("TotalTarget = %s, want 15000.00", got.TotalTarget.StringFixed(2))
	}
	if got.PeriodCount != 6 {
		t.Errorf("PeriodCount = %d, want 6", got.PeriodCount)
	}
}

func TestCalculate_TotalEqualsPerPeriodTimesCount(t *testing.T) {
	for _, pt := range []model.PeriodType{model.PeriodMonthly, model.PeriodSemiMonthly} {
		for _, months := range []int{1, 2, 7, 12} {
			got := Calculate(model.PlanConfig{
				Income:          dec("41000"),
				FixedExpenses:   dec("12500"),
				LeisureExpenses: dec("3500"),
				SavingsPercent:  dec("30"),
				Months:          months,
				PeriodType:      pt,
			})
			product := got.PerPeriodTarget.Mul(decimal.NewFromInt(int64(got.PeriodCount)))
			if !product.Equal(got.TotalTarget) {
				t.Errorf("%s/%d months: perPeriod*count = %s, total = %s", pt, months, product, got.TotalTarget)
			}
			perMonth := got.PerPeriodTarget.Mul(decimal.NewFromInt(int64(pt.PeriodsPerMonth())))
			if !perMonth.Equal(got.MonthlySavings) {
				t.Errorf("%s: perPeriod*periodsPerMonth = %s, monthly = %s", pt, perMonth, got.MonthlySavings)
			}
		}
	}
}

func TestCalculate_ExpensesExceedIncome(t *testing.T) {
	got := Calculate(model.PlanConfig{
		Income:          dec("1000"),
		FixedExpenses:   dec("900"),
		LeisureExpenses: dec("300"),
		SavingsPercent:  dec("50"),
		Months:          4,
	})
	if !got.Surplus.IsZero() || !got.PerPeriodTarget.IsZero() || !got.TotalTarget.IsZero() {
		t.Fatalf("expected zero targets, got %+v", got)
	}
	if got.PeriodCount != 4 {
		t.Errorf("PeriodCount = %d, want 4", got.PeriodCount)
	}
}

func TestCalculate_CoercesMonthsAndPeriodType(t *testing.T) {
	got := Calculate(model.PlanConfig{
		Income:         dec("100"),
		SavingsPercent: dec("10"),
		Months:         -3,
		PeriodType:     "fortnightly",
	})
	if got.PeriodCount != 1 {
		t.Errorf("PeriodCount = %d, want 1", got.PeriodCount)
	}
	if !got.TotalTarget.Equal(dec("10")) {
		t.Errorf("TotalTarget = %s, want 10", got.TotalTarget)
	}
}

func TestCalculate_RoundsHalfAwayFromZero(t *testing.T) {
	// 333.33 * 15% = 49.9995 monthly, 24.99975 per half month.
	got := Calculate(model.PlanConfig{
		Income:         dec("333.33"),
		SavingsPercent: dec("15"),
		Months:         1,
		PeriodType:     model.PeriodSemiMonthly,
	})
	if got.MonthlySavings.StringFixed(2) != "50.00" {
		t.Errorf("MonthlySavings = %s, want 50.00", got.MonthlySavings.StringFixed(2))
	}
	if got.PerPeriodTarget.StringFixed(2) != "25.00" {
		t.Errorf("PerPeriodTarget = %s, want 25.00", got.PerPeriodTarget.StringFixed(2))
	}

	if r := RoundMoney(dec("0.125")); !r.Equal(dec("0.13")) {
		t.Errorf("RoundMoney(0.125) = %s, want 0.13", r)
	}
}
