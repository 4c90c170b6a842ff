package integrators

import (
	"math"

	"github.com/san-kum/eulergrowth/internal/dynamo"
)

// MaxSteps bounds the number of samples a single call may allocate.
const MaxSteps = 1 << 26

// StepCount returns the number of samples for an integration over
// [0, duration] with step dt: floor(duration/dt) + 1.
//
// It fails with dynamo.ErrInvalidArgument when dt is not positive, when
// duration is negative, or when floor(duration/dt) reaches MaxSteps, which
// includes an infinite duration.
func StepCount(dt, duration float64) (int, error) {
	if err := (dynamo.Params{Dt: dt, Duration: duration}).Validate(); err != nil {
		return 0, err
	}
	n := math.Floor(duration / dt)
	if !(n < MaxSteps) {
		return 0, dynamo.InvalidArgument("duration/dt", duration/dt, "below the step limit")
	}
	return int(n) + 1, nil
}

// Integrate advances dN/dt = r*N from n0 with forward Euler steps of size dt
// until the last multiple of dt not exceeding duration.
func Integrate(n0, r, dt, duration float64) (dynamo.Trajectory, error) {
	steps, err := StepCount(dt, duration)
	if err != nil {
		return nil, err
	}

	traj := make(dynamo.Trajectory, steps)
	traj[0] = dynamo.Point{Time: 0, Value: n0}
	for i := 1; i < steps; i++ {
		prev := traj[i-1].Value
		traj[i] = dynamo.Point{
			Time:  float64(i) * dt,
			Value: prev + r*dt*prev,
		}
	}
	return traj, nil
}

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

// Order is the global convergence order of the method.
func (e *Euler) Order() int { return 1 }

func (e *Euler) Integrate(p dynamo.Params) (dynamo.Trajectory, error) {
	return Integrate(p.N0, p.Rate, p.Dt, p.Duration)
}
