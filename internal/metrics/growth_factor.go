package metrics

import "github.com/san-kum/eulergrowth/internal/dynamo"

// GrowthFactor is the mean ratio between successive values. For an Euler
// run of dN/dt = rN it equals 1 + r*dt.
type GrowthFactor struct {
	name    string
	prev    float64
	seen    bool
	sum     float64
	samples int
}

func NewGrowthFactor() *GrowthFactor {
	return &GrowthFactor{name: "growth_factor"}
}

func (g *GrowthFactor) Name() string { return g.name }

func (g *GrowthFactor) Observe(p dynamo.Point) {
	if g.seen && g.prev != 0 {
		g.sum += p.Value / g.prev
		g.samples++
	}
	g.prev = p.Value
	g.seen = true
}

func (g *GrowthFactor) Value() float64 {
	if g.samples == 0 {
		return 1.0
	}
	return g.sum / float64(g.samples)
}

func (g *GrowthFactor) Reset() {
	g.prev = 0
	g.seen = false
	g.sum = 0
	g.samples = 0
}
