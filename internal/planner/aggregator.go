package planner

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

// Aggregate computes accumulated savings and percent of the total target.
// Percent is capped at 100 and is zero when the plan has no target.
func Aggregate(s model.PlanState) model.Progress {
	var p model.Progress
	for _, period := range s.Periods {
		p.Accumulated = p.Accumulated.Add(model.NonNegative(period.SavedAmount))
		if period.Completed(s.PerPeriodTarget) {
			p.CompletedPeriods++
		}
	}

	if s.TotalTarget.IsPositive() {
		p.Percent = decimal.Min(hundred, p.Accumulated.Div(s.TotalTarget).Mul(hundred))
	}
	return p
}

// SavedSeries returns saved amounts in period order, for charts.
func SavedSeries(s model.PlanState) []float64 {
	vals := make([]float64, len(s.Periods))
	for i, p := range s.Periods {
		vals[i] = RoundMoney(p.SavedAmount).InexactFloat64()
	}
	return vals
}

// CumulativeSeries returns the running total of saved amounts in period order.
func CumulativeSeries(s model.PlanState) []float64 {
	vals := make([]float64, len(s.Periods))
	running := decimal.Zero
	for i, p := range s.Periods {
		running = running.Add(p.SavedAmount)
		vals[i] = RoundMoney(running).InexactFloat64()
	}
	return vals
}
