package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/eulergrowth/internal/dynamo"
	"github.com/san-kum/eulergrowth/internal/models"
)

type RunSummary struct {
	Title   string
	Params  dynamo.Params
	Steps   int
	Final   float64
	Exact   float64
	Metrics map[string]float64
}

func Summary(s RunSummary) string {
	row := func(label string, value string) string {
		return MetricLabel.Render(fmt.Sprintf("%-16s", label)) + MetricValue.Render(value)
	}

	lines := []string{
		Title.Render(s.Title),
		row("n0", fmt.Sprintf("%g", s.Params.N0)),
		row("rate", fmt.Sprintf("%.6g", s.Params.Rate)),
		row("doubling time", doubling(s.Params.Rate)),
		row("dt", fmt.Sprintf("%g", s.Params.Dt)),
		row("duration", fmt.Sprintf("%g", s.Params.Duration)),
		row("samples", fmt.Sprintf("%d", s.Steps)),
		row("euler final", fmt.Sprintf("%.6g", s.Final)),
		row("exact final", fmt.Sprintf("%.6g", s.Exact)),
	}

	names := make([]string, 0, len(s.Metrics))
	for name := range s.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, row(name, fmt.Sprintf("%.6g", s.Metrics[name])))
	}

	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func doubling(rate float64) string {
	d := models.NewGrowth(rate).DoublingTime()
	if math.IsInf(d, 0) {
		return "never"
	}
	if d < 0 {
		return fmt.Sprintf("%.4g (halving)", -d)
	}
	return fmt.Sprintf("%.4g", d)
}

// Table renders rows as aligned columns with a subtle header.
func Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	format := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			if i >= len(widths) {
				parts[i] = c
				continue
			}
			parts[i] = fmt.Sprintf("%-*s", widths[i], c)
		}
		return strings.Join(parts, "  ")
	}

	var sb strings.Builder
	sb.WriteString(Subtle.Render(format(header)))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(format(r))
		sb.WriteString("\n")
	}
	return sb.String()
}
