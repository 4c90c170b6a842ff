package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/eulergrowth/internal/analysis"
)

// PlotComparison charts the Euler samples (red) and the closed-form values
// (blue) on shared axes. asciigraph resamples both series to width.
// Overflowed samples are left as gaps.
func PlotComparison(cmp *analysis.Comparison, width, height int) string {
	if len(cmp.Samples) == 0 {
		return ""
	}

	euler, eulerOK := gaps(cmp.EulerValues())
	exact, exactOK := gaps(cmp.ExactValues())
	if !eulerOK && !exactOK {
		return ""
	}
	// asciigraph needs two points to draw a line.
	if len(euler) == 1 {
		euler = append(euler, euler[0])
		exact = append(exact, exact[0])
	}

	last := cmp.Samples[len(cmp.Samples)-1]
	caption := fmt.Sprintf("euler (red) vs analytical (blue), t = 0..%g", last.Time)

	return asciigraph.PlotMany([][]float64{exact, euler},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends("analytical", "euler"),
		asciigraph.Caption(caption),
	)
}

// PlotConvergence charts log2 of the global error per row. A first order
// method gives a line with slope -1 per halving.
func PlotConvergence(rows []analysis.ConvergenceRow, width, height int) string {
	data := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.MaxAbsError > 0 {
			data = append(data, math.Log2(row.MaxAbsError))
		}
	}
	if len(data) < 2 {
		return ""
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("log2(max abs error) per halving of dt"),
	)
}

// gaps replaces non-finite values with NaN, which asciigraph skips, and
// reports whether any finite value is left.
func gaps(values []float64) ([]float64, bool) {
	ok := false
	for i, v := range values {
		if finite(v) {
			ok = true
			continue
		}
		values[i] = math.NaN()
	}
	return values, ok
}
