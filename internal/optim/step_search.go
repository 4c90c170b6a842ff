package optim

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/eulergrowth/internal/dynamo"
	"github.com/san-kum/eulergrowth/internal/integrators"
	"github.com/san-kum/eulergrowth/internal/metrics"
	"github.com/san-kum/eulergrowth/internal/models"
)

// ErrToleranceUnreached means no candidate step met the tolerance.
var ErrToleranceUnreached = errors.New("optim: no step size meets the tolerance")

type Candidate struct {
	Dt    float64
	Steps int
	Error float64
}

// StepSearch grids over step sizes and scores each with a metric built per
// candidate. Lower scores are better.
type StepSearch struct {
	dts    []float64
	metric func(p dynamo.Params) metrics.Metric
}

func NewStepSearch(dts []float64, metric func(p dynamo.Params) metrics.Metric) *StepSearch {
	sorted := append([]float64(nil), dts...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return &StepSearch{dts: sorted, metric: metric}
}

// FinalRelError scores a candidate by its relative error at the horizon.
func FinalRelError(p dynamo.Params) metrics.Metric {
	g := models.NewGrowth(p.Rate)
	return metrics.NewFinalRelError(func(t float64) float64 { return g.Exact(p.N0, t) })
}

// Evaluate scores every candidate, largest dt first. p.Dt is ignored.
func (s *StepSearch) Evaluate(ctx context.Context, p dynamo.Params) ([]Candidate, error) {
	out := make([]Candidate, 0, len(s.dts))
	for _, dt := range s.dts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := s.score(p, dt)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *StepSearch) score(p dynamo.Params, dt float64) (Candidate, error) {
	p.Dt = dt
	traj, err := integrators.NewEuler().Integrate(p)
	if err != nil {
		return Candidate{}, err
	}
	m := s.metric(p)
	return Candidate{Dt: dt, Steps: traj.Len(), Error: metrics.Evaluate(traj, m)[m.Name()]}, nil
}

// LargestStep returns the coarsest candidate whose score is within tol.
func (s *StepSearch) LargestStep(ctx context.Context, p dynamo.Params, tol float64) (Candidate, error) {
	if !(tol > 0) {
		return Candidate{}, dynamo.InvalidArgument("tolerance", tol, "positive")
	}
	for _, dt := range s.dts {
		if err := ctx.Err(); err != nil {
			return Candidate{}, err
		}
		c, err := s.score(p, dt)
		if err != nil {
			return Candidate{}, err
		}
		if c.Error <= tol {
			return c, nil
		}
	}
	return Candidate{}, fmt.Errorf("%w: tolerance %g over %d candidates", ErrToleranceUnreached, tol, len(s.dts))
}
