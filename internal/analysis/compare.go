package analysis

import (
	"math"

	"github.com/san-kum/eulergrowth/internal/dynamo"
	"github.com/san-kum/eulergrowth/internal/models"
)

// Analytical evaluates n0*exp(r*t) at every time of traj.
func Analytical(traj dynamo.Trajectory, n0, r float64) []float64 {
	g := models.NewGrowth(r)
	out := make([]float64, len(traj))
	for i, p := range traj {
		out[i] = g.Exact(n0, p.Time)
	}
	return out
}

type Sample struct {
	Time     float64 `json:"t"`
	Euler    float64 `json:"euler"`
	Exact    float64 `json:"exact"`
	AbsError float64 `json:"abs_error"`
	RelError float64 `json:"rel_error"`
}

type Comparison struct {
	Samples       []Sample `json:"samples"`
	MaxAbsError   float64  `json:"max_abs_error"`
	FinalAbsError float64  `json:"final_abs_error"`
	FinalRelError float64  `json:"final_rel_error"`
}

func (c *Comparison) EulerValues() []float64 {
	out := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = s.Euler
	}
	return out
}

func (c *Comparison) ExactValues() []float64 {
	out := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = s.Exact
	}
	return out
}

// Compare lines traj up against the closed-form solution. RelError is 0
// where the exact value is 0.
func Compare(traj dynamo.Trajectory, n0, r float64) *Comparison {
	exact := Analytical(traj, n0, r)
	cmp := &Comparison{Samples: make([]Sample, len(traj))}

	for i, p := range traj {
		abs := math.Abs(p.Value - exact[i])
		rel := 0.0
		if exact[i] != 0 {
			rel = abs / math.Abs(exact[i])
		}
		cmp.Samples[i] = Sample{
			Time:     p.Time,
			Euler:    p.Value,
			Exact:    exact[i],
			AbsError: abs,
			RelError: rel,
		}
		cmp.MaxAbsError = math.Max(cmp.MaxAbsError, abs)
	}

	if n := len(cmp.Samples); n > 0 {
		cmp.FinalAbsError = cmp.Samples[n-1].AbsError
		cmp.FinalRelError = cmp.Samples[n-1].RelError
	}
	return cmp
}
