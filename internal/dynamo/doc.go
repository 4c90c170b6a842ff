// Package dynamo provides the core types shared by the growth lab.
//
// The package defines the values that flow between the integrator and its
// collaborators:
//
//   - [Point]: one (time, value) sample
//   - [Trajectory]: the ordered samples produced by one integration
//   - [Params]: the four scalar inputs of a single integration call
//
// # Example
//
//	p := dynamo.Params{N0: 1, Rate: math.Ln2 / 0.5, Dt: 0.01, Duration: 5}
//	traj, err := integrators.NewEuler().Integrate(p)
//
// # Thread Safety
//
// All types are plain values. A Trajectory returned by an integrator is
// owned by the caller and shares no memory with other calls.
package dynamo
