package dynamo

import "math"

type Point struct {
	Time  float64 `json:"t"`
	Value float64 `json:"n"`
}

// Trajectory is the ordered sample sequence of one integration. Times are
// i*dt for i = 0..Len()-1.
type Trajectory []Point

func (tr Trajectory) Len() int { return len(tr) }

// Final returns the last sample, or false for an empty trajectory.
func (tr Trajectory) Final() (Point, bool) {
	if len(tr) == 0 {
		return Point{}, false
	}
	return tr[len(tr)-1], true
}

// IsValid reports whether every sample is finite.
func (tr Trajectory) IsValid() bool {
	for _, p := range tr {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return false
		}
	}
	return true
}

// Params holds the inputs of one integration call. N0 and Rate are
// unconstrained; Dt must be positive and Duration non-negative.
type Params struct {
	N0       float64 `json:"n0" yaml:"n0"`
	Rate     float64 `json:"rate" yaml:"rate"`
	Dt       float64 `json:"dt" yaml:"dt"`
	Duration float64 `json:"duration" yaml:"duration"`
}

func (p Params) Validate() error {
	// Negated comparisons so NaN is rejected too.
	if !(p.Dt > 0) {
		return InvalidArgument("dt", p.Dt, "positive")
	}
	if !(p.Duration >= 0) {
		return InvalidArgument("duration", p.Duration, "non-negative")
	}
	return nil
}
