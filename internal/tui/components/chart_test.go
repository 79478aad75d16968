package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/planifica/internal/tui/theme"
)

func TestBarSeriesBucket(t *testing.T) {
	s := BarSeries{
		Values: []float64{1, 3, 5, 7, 9},
		Labels: []string{"P1", "P2", "P3", "P4", "P5"},
		Goal:   4,
	}

	if got := s.bucket(10); len(got.Values) != 5 {
		t.Errorf("bucket(10) len = %d, want 5 unchanged", len(got.Values))
	}

	got := s.bucket(3)
	want := []float64{2, 6, 9}
	if len(got.Values) != len(want) {
		t.Fatalf("bucket(3) len = %d, want %d", len(got.Values), len(want))
	}
	for i := range want {
		if got.Values[i] != want[i] {
			t.Errorf("bucket(3)[%d] = %v, want %v", i, got.Values[i], want[i])
		}
	}
	if strings.Join(got.Labels, ",") != "P1,P3,P5" {
		t.Errorf("bucket(3) labels = %v", got.Labels)
	}
	if got.Goal != 4 {
		t.Errorf("bucket(3) goal = %v, want 4", got.Goal)
	}
}

func TestPlaceLabels(t *testing.T) {
	tests := []struct {
		labels []string
		pitch  int
		width  int
		want   string
	}{
		{[]string{"P1", "P2", "P3"}, 4, 11, "P1  P2  P3"},
		{[]string{"P1", "P2", "P3", "P4"}, 2, 7, "P1   P4"},
		{[]string{"P1"}, 3, 6, "P1"},
	}
	for _, tt := range tests {
		if got := placeLabels(tt.labels, tt.pitch, tt.width); got != tt.want {
			t.Errorf("placeLabels(%v, %d, %d) = %q, want %q", tt.labels, tt.pitch, tt.width, got, tt.want)
		}
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		top  float64
		want float64
	}{
		{0, 1},
		{4, 1},
		{2500, 1000},
		{3000, 1000},
		{6000, 2000},
		{15000, 5000},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.top); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.top, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0.5, "0.50"},
		{800, "800"},
		{2500, "2.5k"},
		{25000, "25k"},
		{1500000, "1.5M"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.v); got != tt.want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestBarChart_GoalLineAndLabels(t *testing.T) {
	theme.SetActive("flexoki-dark")
	s := BarSeries{
		Values: []float64{2500, 1000, 0},
		Labels: []string{"P1", "P2", "P3"},
		Goal:   2500,
	}
	out := BarChart(s, theme.Active.Accent, 40, 8)

	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("BarChart lines = %d, want 8 rows plus axis and labels", len(lines))
	}
	if !strings.Contains(out, "┄") {
		t.Error("BarChart has no goal line")
	}
	last := lines[len(lines)-1]
	for _, lbl := range s.Labels {
		if !strings.Contains(last, lbl) {
			t.Errorf("label row %q missing %s", last, lbl)
		}
	}

	noGoal := BarChart(BarSeries{Values: []float64{1, 2}, Labels: []string{"P1", "P2"}}, theme.Active.Accent, 40, 8)
	if strings.Contains(noGoal, "┄") {
		t.Error("goal line drawn without a goal")
	}

	if got := BarChart(s, theme.Active.Accent, 10, 8); strings.Contains(got, "\n") {
		t.Errorf("narrow BarChart should fall back to a sparkline, got %q", got)
	}
	if got := BarChart(BarSeries{}, theme.Active.Accent, 40, 8); got != "" {
		t.Errorf("empty BarChart = %q, want empty", got)
	}
}

func TestGoalBar_FitsWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	for _, f := range []float64{-1, 0, 0.4, 1, 3} {
		got := GoalBar("Saved", f, 5, 50)
		if w := lipgloss.Width(got); w != 50 {
			t.Errorf("GoalBar(%v) width = %d, want 50", f, w)
		}
	}
	if !strings.Contains(GoalBar("", 1.5, 0, 30), "100%") {
		t.Error("GoalBar should clamp to 100%")
	}
}

func TestGoalColor(t *testing.T) {
	theme.SetActive("flexoki-dark")
	th := theme.Active
	tests := []struct {
		f    float64
		want lipgloss.Color
	}{
		{0, th.Red},
		{0.2, th.Orange},
		{0.5, th.Yellow},
		{1, th.Green},
	}
	for _, tt := range tests {
		if got := GoalColor(tt.f); got != tt.want {
			t.Errorf("GoalColor(%v) = %v, want %v", tt.f, got, tt.want)
		}
	}
}
