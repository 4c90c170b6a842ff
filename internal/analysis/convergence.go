package analysis

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/eulergrowth/internal/dynamo"
	"github.com/san-kum/eulergrowth/internal/integrators"
)

type ConvergenceRow struct {
	Dt          float64
	Steps       int
	FinalValue  float64
	MaxAbsError float64
	// Order is the observed order against the previous (coarser) row, NaN
	// for the first row.
	Order float64
}

// Halvings returns dt0, dt0/2, ... with n entries.
func Halvings(dt0 float64, n int) []float64 {
	dts := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		dts = append(dts, dt0/math.Pow(2, float64(i)))
	}
	return dts
}

// Convergence integrates the same problem once per step size and reports
// the global error of each run, coarsest first.
func Convergence(ctx context.Context, n0, r, duration float64, dts []float64) ([]ConvergenceRow, error) {
	if len(dts) == 0 {
		return nil, dynamo.InvalidArgument("dts", 0, "non-empty")
	}

	rows := make([]ConvergenceRow, len(dts))
	g, ctx := errgroup.WithContext(ctx)

	for i, dt := range dts {
		i, dt := i, dt
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			traj, err := integrators.Integrate(n0, r, dt, duration)
			if err != nil {
				return err
			}
			final, _ := traj.Final()
			rows[i] = ConvergenceRow{
				Dt:          dt,
				Steps:       traj.Len(),
				FinalValue:  final.Value,
				MaxAbsError: Compare(traj, n0, r).MaxAbsError,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Dt > rows[b].Dt })

	for i := range rows {
		rows[i].Order = math.NaN()
		if i == 0 {
			continue
		}
		prev := rows[i-1]
		if prev.MaxAbsError > 0 && rows[i].MaxAbsError > 0 && prev.Dt != rows[i].Dt {
			rows[i].Order = math.Log(prev.MaxAbsError/rows[i].MaxAbsError) / math.Log(prev.Dt/rows[i].Dt)
		}
	}

	return rows, nil
}
