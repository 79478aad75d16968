package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planifica/internal/cli"
	"github.com/theirongolddev/planifica/internal/planner"
	"github.com/theirongolddev/planifica/internal/tui/components"
	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func emptyPlanHint() string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	return muted.Render("No savings plan yet. Press ") + key.Render("c") + muted.Render(" to calculate one.")
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	st := a.mgr.State()
	prog := a.mgr.Progress()

	if st.IsEmpty() {
		return components.ContentCard("Overview", emptyPlanHint(), cw)
	}

	var b strings.Builder

	// Row 1: Metric cards
	remaining := st.TotalTarget.Sub(prog.Accumulated)
	remainingNote := a.money(remaining) + " to go"
	if !remaining.IsPositive() {
		remainingNote = "goal reached"
	}
	metrics := []components.Metric{
		{Label: "Per Period", Value: a.money(st.PerPeriodTarget), Note: fmt.Sprintf("%d periods", st.PeriodCount)},
		{Label: "Total Target", Value: a.money(st.TotalTarget), Note: remainingNote},
		{Label: "Accumulated", Value: a.money(prog.Accumulated), Color: t.Green,
			Note: fmt.Sprintf("%d of %d completed", prog.CompletedPeriods, st.PeriodCount)},
		{Label: "Progress", Value: cli.FormatPercent(prog.Percent), Color: components.GoalColor(prog.Fraction())},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	// Row 2: overall progress
	goal := components.GoalBar("Saved", prog.Fraction(), 5, components.CardInnerWidth(cw))
	if st.PeriodCount > 0 {
		goal += "\n" + components.GoalBar("Done", float64(prog.CompletedPeriods)/float64(st.PeriodCount), 5, components.CardInnerWidth(cw))
	}
	b.WriteString(components.ContentCard("Goal", goal, cw))
	b.WriteString("\n")

	// Row 3: saved per period against the per-period target
	series := components.BarSeries{
		Values: planner.SavedSeries(st),
		Labels: make([]string, len(st.Periods)),
		Goal:   st.PerPeriodTarget.InexactFloat64(),
	}
	for i, p := range st.Periods {
		series.Labels[i] = cli.PeriodLabel(p.Index)
	}
	chart := components.BarChart(series, t.Accent, components.CardInnerWidth(cw), 8)

	cumulative := planner.CumulativeSeries(st)
	trendStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	chart += "\n\n" + trendStyle.Render("Cumulative ") + components.Sparkline(cumulative, t.Accent)

	b.WriteString(components.ContentCard("Saved per Period", chart, cw))
	return b.String()
}
