// Package analysis compares Euler trajectories with the closed-form
// solution of exponential growth.
//
//   - [Analytical]: n0*exp(r*t) at a trajectory's own sample times
//   - [Compare]: per-sample and summary errors
//   - [Convergence]: error and observed order across a set of step sizes
//
// # Convergence
//
// Forward Euler is first order, so halving dt should roughly halve the
// global error:
//
//	rows, _ := analysis.Convergence(ctx, 1, 1, 1, analysis.Halvings(0.1, 5))
//	for _, row := range rows {
//	    fmt.Println(row.Dt, row.MaxAbsError, row.Order) // Order -> 1
//	}
package analysis
