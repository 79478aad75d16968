package planner

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

// Reconcile returns exactly count periods. Periods of prev whose index is
// within the new range are reused as they are, evidence pointer included.
// Indices past len(prev) start empty and indices past count are dropped.
func Reconcile(prev []model.Period, count int) []model.Period {
	if count < 0 {
		count = 0
	}
	out := make([]model.Period, count)
	for i := range out {
		if i < len(prev) {
			out[i] = prev[i]
			continue
		}
		out[i] = model.Period{Index: i + 1, SavedAmount: decimal.Zero}
	}
	return out
}
