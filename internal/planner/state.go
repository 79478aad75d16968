package planner

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

// Recalculate applies cfg to s: targets are replaced and periods reconciled
// against the new period count.
func Recalculate(s *model.PlanState, cfg model.PlanConfig) Targets {
	t := Calculate(cfg)
	s.PerPeriodTarget = t.PerPeriodTarget
	s.TotalTarget = t.TotalTarget
	s.Periods = Reconcile(s.Periods, t.PeriodCount)
	s.PeriodCount = len(s.Periods)
	return t
}

// SetSavedAmount records amount for one period, clamped at zero.
// It reports false when index is not a period of s.
func SetSavedAmount(s *model.PlanState, index int, amount decimal.Decimal) bool {
	p, ok := s.Period(index)
	if !ok {
		return false
	}
	p.SavedAmount = RoundMoney(model.NonNegative(amount))
	return true
}

// AttachEvidence replaces the evidence of one period.
func AttachEvidence(s *model.PlanState, index int, ev model.Evidence) bool {
	p, ok := s.Period(index)
	if !ok {
		return false
	}
	p.Evidence = &ev
	return true
}

// ToggleCompletion fills a period up to the per-period target, or clears it
// back to zero when it already reached the target. Calling it twice restores
// zero, not the amount recorded before the first call.
func ToggleCompletion(s *model.PlanState, index int) bool {
	p, ok := s.Period(index)
	if !ok {
		return false
	}
	if p.SavedAmount.LessThan(s.PerPeriodTarget) {
		p.SavedAmount = s.PerPeriodTarget
	} else {
		p.SavedAmount = decimal.Zero
	}
	return true
}

// Reset clears s to the empty plan.
func Reset(s *model.PlanState) {
	*s = model.EmptyState()
}

// Normalize repairs a state read from outside the planner: periods are
// ordered by index and renumbered 1..n, amounts are clamped and rounded and
// PeriodCount is recomputed.
func Normalize(s *model.PlanState) {
	if s.Periods == nil {
		s.Periods = []model.Period{}
	}
	sort.SliceStable(s.Periods, func(i, j int) bool {
		return s.Periods[i].Index < s.Periods[j].Index
	})
	for i := range s.Periods {
		s.Periods[i].Index = i + 1
		s.Periods[i].SavedAmount = RoundMoney(model.NonNegative(s.Periods[i].SavedAmount))
	}
	s.PeriodCount = len(s.Periods)
	s.PerPeriodTarget = RoundMoney(model.NonNegative(s.PerPeriodTarget))
	s.TotalTarget = RoundMoney(model.NonNegative(s.TotalTarget))
}
