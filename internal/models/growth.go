package models

import (
	"math"

	"github.com/san-kum/eulergrowth/internal/dynamo"
)

// Growth is the exponential model dN/dt = Rate*N.
type Growth struct {
	Rate float64
}

func NewGrowth(rate float64) *Growth {
	return &Growth{Rate: rate}
}

// GrowthFromDoublingTime returns the model whose population doubles every d
// time units. A negative d is a halving time.
func GrowthFromDoublingTime(d float64) (*Growth, error) {
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return nil, dynamo.InvalidArgument("doubling_time", d, "finite and non-zero")
	}
	return &Growth{Rate: math.Ln2 / d}, nil
}

// Exact is the closed-form solution n0*exp(Rate*t).
func (g *Growth) Exact(n0, t float64) float64 {
	return n0 * math.Exp(g.Rate*t)
}

// DoublingTime returns +Inf for a flat model.
func (g *Growth) DoublingTime() float64 {
	if g.Rate == 0 {
		return math.Inf(1)
	}
	return math.Ln2 / g.Rate
}
