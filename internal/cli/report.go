package cli

import (
	"fmt"
	"io"

	"github.com/theirongolddev/planifica/internal/model"
	"github.com/theirongolddev/planifica/internal/planner"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Report renders the plan as static terminal output. It satisfies
// planner.Renderer.
type Report struct {
	w        io.Writer
	currency string

	// Compact limits output to the progress line.
	Compact bool
}

// NewReport returns a Report writing to w.
func NewReport(w io.Writer, currency string) *Report {
	return &Report{w: w, currency: currency}
}

// Render implements planner.Renderer.
func (r *Report) Render(s model.PlanState, p model.Progress) {
	if s.IsEmpty() {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, "  No savings plan yet.")
		fmt.Fprintln(r.w, "  Run `planifica calc` to create one.")
		return
	}

	if r.Compact {
		fmt.Fprintf(r.w, "  %s\n", r.progressLine(s, p))
		return
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, RenderTitle("SAVINGS PLAN"))
	fmt.Fprintln(r.w)

	fmt.Fprint(r.w, RenderTable(Table{
		Columns: []Column{{Header: "Metric"}, {Header: "Value", Right: true}},
		Rows: [][]string{
			{"Per period", r.money(s.PerPeriodTarget)},
			{"Periods", FormatNumber(int64(s.PeriodCount))},
			{"Total target", r.money(s.TotalTarget)},
			{"Accumulated", r.money(p.Accumulated)},
			{"Progress", FormatPercent(p.Percent)},
			{"Completed", fmt.Sprintf("%d/%d", p.CompletedPeriods, s.PeriodCount)},
		},
		Highlight: func(row, col int) (lipgloss.Style, bool) {
			return moneyStyle, col == 1 && row == 3
		},
	}))
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "  %s\n\n", r.progressLine(s, p))

	fmt.Fprint(r.w, RenderTable(r.periodTable(s)))

	if len(s.Periods) > 1 {
		fmt.Fprintf(r.w, "\n  %s  %s\n",
			mutedStyle.Render("Saved per period"),
			accentStyle.Render(RenderSparkline(planner.SavedSeries(s))),
		)
	}

	r.renderGallery(s)

	if !s.UpdatedAt.IsZero() {
		fmt.Fprintf(r.w, "\n  %s\n", dimStyle.Render("Updated "+FormatAgo(s.UpdatedAt)))
	}
}

// EvidenceUnavailable implements planner.Renderer.
func (r *Report) EvidenceUnavailable(index int, err error) {
	fmt.Fprintf(r.w, "  %s\n", warnStyle.Render(fmt.Sprintf("Evidence for %s unavailable: %v", PeriodLabel(index), err)))
}

func (r *Report) money(d decimal.Decimal) string {
	return FormatMoney(r.currency, d)
}

func (r *Report) progressLine(s model.PlanState, p model.Progress) string {
	label := fmt.Sprintf("%s of %s (%s)", r.money(p.Accumulated), r.money(s.TotalTarget), FormatPercent(p.Percent))
	return RenderProgressBar(p.Fraction(), 30, label)
}

func (r *Report) periodTable(s model.PlanState) Table {
	t := Table{
		Title: "Periods",
		Columns: []Column{
			{Header: "Period"},
			{Header: "Target", Right: true},
			{Header: "Saved", Right: true},
			{Header: "Status"},
			{Header: "Evidence"},
		},
		Highlight: func(row, col int) (lipgloss.Style, bool) {
			if col != 3 || row < 0 || row >= len(s.Periods) {
				return lipgloss.Style{}, false
			}
			if s.Periods[row].Completed(s.PerPeriodTarget) {
				return moneyStyle, true
			}
			return warnStyle, true
		},
	}
	for _, p := range s.Periods {
		status := "Mark"
		if p.Completed(s.PerPeriodTarget) {
			status = "Completed"
		}
		ev := "-"
		if p.Evidence != nil {
			ev = p.Evidence.Name
		}
		t.Rows = append(t.Rows, []string{
			PeriodLabel(p.Index),
			r.money(s.PerPeriodTarget),
			r.money(p.SavedAmount),
			status,
			ev,
		})
	}
	return t
}

func (r *Report) renderGallery(s model.PlanState) {
	var rows [][]string
	for _, p := range s.Periods {
		if p.Evidence == nil {
			continue
		}
		rows = append(rows, []string{
			PeriodLabel(p.Index),
			p.Evidence.Name,
			p.Evidence.MediaType,
			FormatBytes(p.Evidence.SizeBytes),
			FormatAgo(p.Evidence.AttachedAt),
		})
	}
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	fmt.Fprint(r.w, RenderTable(Table{
		Title: "Evidence",
		Columns: []Column{
			{Header: "Period"},
			{Header: "File"},
			{Header: "Type"},
			{Header: "Size", Right: true},
			{Header: "Attached"},
		},
		Rows: rows,
	}))
}
