package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", FileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func samplePlan() model.PlanState {
	at := time.Date(2025, 2, 14, 9, 30, 0, 0, time.UTC)
	return model.PlanState{
		PlanID:          "2f1b",
		PerPeriodTarget: d("2500"),
		TotalTarget:     d("15000"),
		Periods: []model.Period{
			{Index: 1, SavedAmount: d("2500")},
			{Index: 2, SavedAmount: d("1200.5"), Evidence: &model.Evidence{
				Name: "deposit.png", Ref: "sha256:abc", MediaType: "image/png", SizeBytes: 42, AttachedAt: at,
			}},
			{Index: 3, SavedAmount: decimal.Zero},
		},
		PeriodCount: 3,
		UpdatedAt:   at,
	}
}

func TestLoad_EmptyDatabase(t *testing.T) {
	s := openTemp(t)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("Load on empty db = %+v, want nil", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	want := samplePlan()

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil after Save")
	}
	if got.PlanID != want.PlanID || got.PeriodCount != 3 || len(got.Periods) != 3 {
		t.Fatalf("plan = %+v", got)
	}
	if !got.TotalTarget.Equal(want.TotalTarget) || !got.PerPeriodTarget.Equal(want.PerPeriodTarget) {
		t.Errorf("targets = %s/%s", got.PerPeriodTarget, got.TotalTarget)
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, want.UpdatedAt)
	}
	if !got.Periods[1].SavedAmount.Equal(d("1200.5")) {
		t.Errorf("period 2 saved = %s, want 1200.5", got.Periods[1].SavedAmount)
	}
	ev := got.Periods[1].Evidence
	if ev == nil || ev.Ref != "sha256:abc" || ev.MediaType != "image/png" || ev.SizeBytes != 42 {
		t.Errorf("evidence = %+v", ev)
	}
	if got.Periods[0].Evidence != nil || got.Periods[2].Evidence != nil {
		t.Error("periods without evidence came back with evidence")
	}
}

func TestSave_ReplacesPreviousPeriods(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if err := s.Save(ctx, samplePlan()); err != nil {
		t.Fatal(err)
	}

	smaller := samplePlan()
	smaller.Periods = smaller.Periods[:1]
	smaller.PeriodCount = 1
	if err := s.Save(ctx, smaller); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Periods) != 1 || got.PeriodCount != 1 {
		t.Errorf("periods = %d (count %d), want 1", len(got.Periods), got.PeriodCount)
	}
	n, err := s.EvidenceCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("evidence rows = %d, want 0 after truncation", n)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if err := s.Save(ctx, samplePlan()); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Load after Clear = %+v, want nil", got)
	}
}

func TestSave_EmptyStateClears(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if err := s.Save(ctx, samplePlan()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, model.EmptyState()); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Load after empty save = %+v, want nil", got)
	}
}

func TestReopenKeepsPlan(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, samplePlan()); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s2.Close() }()
	got, err := s2.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.PeriodCount != 3 {
		t.Fatalf("reopened plan = %+v", got)
	}
	if s2.Path() != path {
		t.Errorf("Path = %q, want %q", s2.Path(), path)
	}
}
