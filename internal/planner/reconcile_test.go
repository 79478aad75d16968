package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func periods(amounts ...string) []model.Period {
	out := make([]model.Period, len(amounts))
	for i, a := range amounts {
		out[i] = model.Period{Index: i + 1, SavedAmount: dec(a)}
	}
	return out
}

func TestReconcile_PreservesOverlap(t *testing.T) {
	got := Reconcile(periods("50", "30"), 3)
	want := periods("50", "30", "0")
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Fatalf("Reconcile mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcile_Truncates(t *testing.T) {
	got := Reconcile(periods("10", "20", "30", "40"), 2)
	want := periods("10", "20")
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Fatalf("Reconcile mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	prev := periods("100", "0", "25.5")
	ev := &model.Evidence{Name: "deposit.png", Ref: "sha256:abc", MediaType: "image/png"}
	prev[1].Evidence = ev

	once := Reconcile(prev, 3)
	twice := Reconcile(once, 3)
	if diff := cmp.Diff(prev, twice, decimalEqual); diff != "" {
		t.Fatalf("Reconcile not idempotent (-want +got):\n%s", diff)
	}
	if twice[1].Evidence != ev {
		t.Error("evidence pointer was not reused")
	}
}

func TestReconcile_FromEmpty(t *testing.T) {
	got := Reconcile(nil, 4)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for i, p := range got {
		if p.Index != i+1 {
			t.Errorf("period %d Index = %d", i, p.Index)
		}
		if !p.SavedAmount.IsZero() || p.Evidence != nil {
			t.Errorf("period %d not fresh: %+v", i, p)
		}
	}
	if got := Reconcile(periods("1"), 0); len(got) != 0 {
		t.Errorf("Reconcile(_, 0) len = %d, want 0", len(got))
	}
}

func TestReconcile_DoesNotAliasPrevious(t *testing.T) {
	prev := periods("5", "6")
	got := Reconcile(prev, 2)
	got[0].SavedAmount = dec("99")
	if !prev[0].SavedAmount.Equal(dec("5")) {
		t.Error("mutating the result changed the previous slice")
	}
}
