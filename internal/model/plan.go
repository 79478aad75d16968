// Package model defines the plan state shared by the planner, the store and the renderers.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType is the granularity of the savings schedule.
type PeriodType string

const (
	PeriodMonthly     PeriodType = "monthly"
	PeriodSemiMonthly PeriodType = "semimonthly"
)

// PeriodsPerMonth returns 2 for semi-monthly plans and 1 otherwise.
func (p PeriodType) PeriodsPerMonth() int {
	if p == PeriodSemiMonthly {
		return 2
	}
	return 1
}

// Label returns the human-readable name of the period type.
func (p PeriodType) Label() string {
	if p == PeriodSemiMonthly {
		return "semi-monthly"
	}
	return "monthly"
}

// PlanConfig holds the user inputs a plan is derived from. It is never persisted.
type PlanConfig struct {
	Income          decimal.Decimal
	FixedExpenses   decimal.Decimal
	LeisureExpenses decimal.Decimal
	SavingsPercent  decimal.Decimal
	Months          int
	PeriodType      PeriodType
}

// Normalized returns a copy with negative amounts zeroed, months clamped to at
// least one and an unknown period type replaced by monthly.
func (c PlanConfig) Normalized() PlanConfig {
	c.Income = NonNegative(c.Income)
	c.FixedExpenses = NonNegative(c.FixedExpenses)
	c.LeisureExpenses = NonNegative(c.LeisureExpenses)
	c.SavingsPercent = NonNegative(c.SavingsPercent)
	c.Months = ClampMonths(c.Months)
	if c.PeriodType != PeriodSemiMonthly {
		c.PeriodType = PeriodMonthly
	}
	return c
}

// Evidence is a proof-of-deposit document attached to one period. Ref is an
// opaque content reference resolved by the evidence store.
type Evidence struct {
	Name       string    `json:"name" yaml:"name"`
	Ref        string    `json:"ref" yaml:"ref"`
	MediaType  string    `json:"media_type" yaml:"media_type"`
	SizeBytes  int64     `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`
	AttachedAt time.Time `json:"attached_at,omitempty" yaml:"attached_at,omitempty"`
}

// Period is one savings interval with its recorded progress.
type Period struct {
	Index       int             `json:"index" yaml:"index"`
	SavedAmount decimal.Decimal `json:"saved_amount" yaml:"saved_amount"`
	Evidence    *Evidence       `json:"evidence" yaml:"evidence,omitempty"`
}

// Completed reports whether the saved amount reached target.
func (p Period) Completed(target decimal.Decimal) bool {
	return p.SavedAmount.GreaterThanOrEqual(target)
}

// PlanState is the single persisted aggregate.
type PlanState struct {
	PlanID          string          `json:"plan_id,omitempty" yaml:"plan_id,omitempty"`
	PerPeriodTarget decimal.Decimal `json:"per_period_target" yaml:"per_period_target"`
	TotalTarget     decimal.Decimal `json:"total_target" yaml:"total_target"`
	Periods         []Period        `json:"periods" yaml:"periods"`
	PeriodCount     int             `json:"period_count" yaml:"period_count"`
	UpdatedAt       time.Time       `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// EmptyState returns the state of a plan that was never calculated or was reset.
func EmptyState() PlanState {
	return PlanState{Periods: []Period{}}
}

// IsEmpty reports whether the plan has no periods.
func (s PlanState) IsEmpty() bool {
	return s.PeriodCount == 0
}

// Period returns a pointer to the period with the given 1-based index.
func (s *PlanState) Period(index int) (*Period, bool) {
	if index < 1 || index > len(s.Periods) {
		return nil, false
	}
	p := &s.Periods[index-1]
	if p.Index != index {
		return nil, false
	}
	return p, true
}

// EvidenceRefs returns the set of content references held by the plan.
func (s *PlanState) EvidenceRefs() map[string]struct{} {
	refs := make(map[string]struct{})
	for _, p := range s.Periods {
		if p.Evidence != nil && p.Evidence.Ref != "" {
			refs[p.Evidence.Ref] = struct{}{}
		}
	}
	return refs
}

// Progress is derived from a PlanState after every mutation and never stored.
type Progress struct {
	Accumulated      decimal.Decimal
	Percent          decimal.Decimal // 0..100
	CompletedPeriods int
}

// Fraction returns Percent as a 0..1 float for progress bars.
func (p Progress) Fraction() float64 {
	return p.Percent.Div(decimal.NewFromInt(100)).InexactFloat64()
}
