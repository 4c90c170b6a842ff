package metrics

import "github.com/san-kum/eulergrowth/internal/dynamo"

type Metric interface {
	Name() string
	Observe(p dynamo.Point)
	Value() float64
	Reset()
}

// Reference maps a sample time to the value the trajectory should have.
type Reference func(t float64) float64

// Evaluate resets every metric, feeds it the whole trajectory and collects
// the results by name.
func Evaluate(traj dynamo.Trajectory, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, p := range traj {
			m.Observe(p)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Default returns the metrics recorded with every stored run.
func Default(ref Reference) []Metric {
	return []Metric{
		NewMaxAbsError(ref),
		NewFinalRelError(ref),
		NewGrowthFactor(),
	}
}
