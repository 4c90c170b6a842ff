package metrics

import (
	"math"

	"github.com/san-kum/eulergrowth/internal/dynamo"
)

type MaxAbsError struct {
	name string
	ref  Reference
	max  float64
}

func NewMaxAbsError(ref Reference) *MaxAbsError {
	return &MaxAbsError{name: "max_abs_error", ref: ref}
}

func (m *MaxAbsError) Name() string { return m.name }

func (m *MaxAbsError) Observe(p dynamo.Point) {
	m.max = math.Max(m.max, math.Abs(p.Value-m.ref(p.Time)))
}

func (m *MaxAbsError) Value() float64 { return m.max }

func (m *MaxAbsError) Reset() { m.max = 0 }

// FinalRelError keeps the relative error of the latest observed sample.
type FinalRelError struct {
	name string
	ref  Reference
	last float64
}

func NewFinalRelError(ref Reference) *FinalRelError {
	return &FinalRelError{name: "final_rel_error", ref: ref}
}

func (f *FinalRelError) Name() string { return f.name }

func (f *FinalRelError) Observe(p dynamo.Point) {
	exact := f.ref(p.Time)
	if exact == 0 {
		f.last = math.Abs(p.Value)
		return
	}
	f.last = math.Abs(p.Value-exact) / math.Abs(exact)
}

func (f *FinalRelError) Value() float64 { return f.last }

func (f *FinalRelError) Reset() { f.last = 0 }
