package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration calls.
var (
	// ErrInvalidArgument indicates a non-positive step size, a negative
	// duration, or a horizon too large to sample.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrEmptyTrajectory indicates an operation that needs at least one sample.
	ErrEmptyTrajectory = errors.New("dynamo: empty trajectory")
)

// ArgumentError wraps ErrInvalidArgument with the offending parameter.
type ArgumentError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s must be %s, got %g", ErrInvalidArgument, e.Name, e.Reason, e.Value)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// InvalidArgument builds an ArgumentError.
func InvalidArgument(name string, value float64, reason string) error {
	return &ArgumentError{Name: name, Value: value, Reason: reason}
}
