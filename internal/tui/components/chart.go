package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/planifica/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders one block character per value, scaled to the largest.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}

	runes := make([]rune, len(values))
	for i, v := range values {
		level := 1
		if peak > 0 && v > 0 {
			level = 1 + int(math.Round(v/peak*7))
		}
		runes[i] = eighths[min(level, 8)]
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Background(theme.Active.Surface).
		Render(string(runes))
}

// BarSeries is one bar per period and the amount each period aims for.
type BarSeries struct {
	Values []float64
	Labels []string
	Goal   float64
}

// bucket averages neighbouring bars until at most limit remain. Each bucket
// keeps the label of its first period.
func (s BarSeries) bucket(limit int) BarSeries {
	n := len(s.Values)
	if limit < 1 || n <= limit {
		return s
	}
	size := (n + limit - 1) / limit
	out := BarSeries{Goal: s.Goal}
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		sum := 0.0
		for _, v := range s.Values[start:end] {
			sum += v
		}
		out.Values = append(out.Values, sum/float64(end-start))
		if len(s.Labels) == n {
			out.Labels = append(out.Labels, s.Labels[start])
		}
	}
	return out
}

// BarChart draws the series as vertical bars over a labelled y axis.
// Bars at or above the goal are green and the goal itself is a dashed line.
// Tiny areas fall back to a sparkline.
func BarChart(s BarSeries, color lipgloss.Color, width, height int) string {
	if len(s.Values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(s.Values, color)
	}
	t := theme.Active

	top := s.Goal
	for _, v := range s.Values {
		top = math.Max(top, v)
	}
	if top <= 0 {
		top = 1
	}
	step := chartTickStep(top)
	top = math.Ceil(top/step) * step

	labelW := max(4, len(formatChartLabel(top))+1)
	plotW := max(5, width-labelW-1)
	s = s.bucket((plotW + 1) / 2)
	n := len(s.Values)

	barW := 1
	if n > 0 {
		barW = min(6, max(1, (plotW-(n-1))/n))
	}
	gap := 1
	if n == 1 {
		gap = 0
	}
	axisLen := n*barW + (n-1)*gap

	bg := lipgloss.NewStyle().Background(t.Surface)
	axis := bg.Foreground(t.TextDim)
	goal := bg.Foreground(t.Orange)
	pending := bg.Foreground(color)
	reached := bg.Foreground(t.Green)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		hi := top * float64(row) / float64(height)
		lo := top * float64(row-1) / float64(height)
		goalRow := s.Goal > 0 && s.Goal > lo && s.Goal <= hi

		// Label the row holding each tick.
		label := ""
		if tick := math.Floor(hi/step+1e-9) * step; tick > lo+1e-9 && tick > 0 {
			label = formatChartLabel(tick)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", labelW, label)))

		blank := func(w int) string {
			if goalRow {
				return goal.Render(strings.Repeat("┄", w))
			}
			return bg.Render(strings.Repeat(" ", w))
		}
		for i, v := range s.Values {
			if i > 0 {
				b.WriteString(blank(gap))
			}
			style := pending
			if s.Goal > 0 && v >= s.Goal {
				style = reached
			}
			switch {
			case v >= hi:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v > lo:
				level := max(1, min(8, int((v-lo)/(hi-lo)*8)))
				b.WriteString(style.Render(strings.Repeat(string(eighths[level]), barW)))
			default:
				b.WriteString(blank(barW))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", labelW, "0", strings.Repeat("─", axisLen))))

	if len(s.Labels) == n {
		b.WriteString("\n")
		b.WriteString(bg.Render(strings.Repeat(" ", labelW+1)))
		b.WriteString(axis.Render(placeLabels(s.Labels, barW+gap, axisLen)))
	}
	return b.String()
}

// placeLabels writes each label under its bar, skipping any that would
// touch the previous one. The last label is always shown when it fits.
func placeLabels(labels []string, pitch, width int) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	put := func(i int) bool {
		pos := i * pitch
		lbl := []rune(labels[i])
		if pos < next || pos+len(lbl) > width {
			return false
		}
		copy(line[pos:], lbl)
		next = pos + len(lbl) + 1
		return true
	}
	last := len(labels) - 1
	for i := 0; i < last; i++ {
		// Leave room for the final label.
		if i*pitch+len([]rune(labels[i]))+1 > last*pitch {
			break
		}
		put(i)
	}
	if !put(last) && last > 0 {
		lbl := []rune(labels[last])
		if pos := width - len(lbl); pos >= next {
			copy(line[pos:], lbl)
		}
	}
	return strings.TrimRight(string(line), " ")
}

// chartTickStep picks a 1, 2 or 5 times power-of-ten interval giving about
// four ticks.
func chartTickStep(top float64) float64 {
	if top <= 0 {
		return 1
	}
	rough := top / 4
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	for _, m := range []float64{1, 2, 5} {
		if rough <= m*base {
			return m * base
		}
	}
	return 10 * base
}

// formatChartLabel abbreviates an axis amount, e.g. 25000 -> "25k".
func formatChartLabel(v float64) string {
	trim := func(s string) string {
		return strings.TrimSuffix(s, ".0")
	}
	switch {
	case v >= 1e6:
		return trim(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trim(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
