package planner

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

func TestAggregate(t *testing.T) {
	s := model.PlanState{
		PerPeriodTarget: dec("100"),
		TotalTarget:     dec("300"),
		Periods:         periods("100", "50"),
		PeriodCount:     2,
	}
	p := Aggregate(s)
	if !p.Accumulated.Equal(dec("150")) {
		t.Errorf("Accumulated = %s, want 150", p.Accumulated)
	}
	if !p.Percent.Equal(dec("50")) {
		t.Errorf("Percent = %s, want 50", p.Percent)
	}
	if p.CompletedPeriods != 1 {
		t.Errorf("CompletedPeriods = %d, want 1", p.CompletedPeriods)
	}
	if p.Fraction() != 0.5 {
		t.Errorf("Fraction = %v, want 0.5", p.Fraction())
	}
}

func TestAggregate_CapsAtHundred(t *testing.T) {
	s := model.PlanState{
		TotalTarget: dec("100"),
		Periods:     periods("80", "80"),
		PeriodCount: 2,
	}
	if p := Aggregate(s); !p.Percent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Percent = %s, want 100", p.Percent)
	}
}

func TestAggregate_ZeroTarget(t *testing.T) {
	s := model.PlanState{Periods: periods("80"), PeriodCount: 1}
	p := Aggregate(s)
	if !p.Percent.IsZero() {
		t.Errorf("Percent = %s, want 0", p.Percent)
	}
	if !p.Accumulated.Equal(dec("80")) {
		t.Errorf("Accumulated = %s, want 80", p.Accumulated)
	}
}

func TestCumulativeSeries(t *testing.T) {
	s := model.PlanState{Periods: periods("10", "0", "5.25")}
	got := CumulativeSeries(s)
	want := []float64{10, 10, 15.25}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CumulativeSeries[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if saved := SavedSeries(s); saved[2] != 5.25 {
		t.Errorf("SavedSeries[2] = %v, want 5.25", saved[2])
	}
}
