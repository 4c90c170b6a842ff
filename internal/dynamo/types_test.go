package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestTrajectory_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		traj  Trajectory
		valid bool
	}{
		{"empty", Trajectory{}, true},
		{"normal", Trajectory{{0, 1}, {0.1, 1.1}}, true},
		{"with NaN", Trajectory{{0, 1}, {0.1, math.NaN()}}, false},
		{"with +Inf", Trajectory{{0, math.Inf(1)}}, false},
		{"with -Inf", Trajectory{{0, math.Inf(-1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.traj.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestTrajectory_Final(t *testing.T) {
	tr := Trajectory{{0, 10}, {0.5, 12}, {1.0, 14.4}}

	if tr.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", tr.Len())
	}

	final, ok := tr.Final()
	if !ok || final.Time != 1.0 || final.Value != 14.4 {
		t.Errorf("Final() = %v, %v", final, ok)
	}

	if _, ok := (Trajectory{}).Final(); ok {
		t.Error("expected no final point for empty trajectory")
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		field  string
	}{
		{"valid", Params{N0: 1, Rate: 1, Dt: 0.1, Duration: 1}, ""},
		{"zero duration", Params{N0: 1, Rate: 1, Dt: 0.1, Duration: 0}, ""},
		{"negative n0", Params{N0: -3, Rate: 1, Dt: 0.1, Duration: 1}, ""},
		{"zero dt", Params{N0: 1, Rate: 1, Dt: 0, Duration: 1}, "dt"},
		{"negative dt", Params{N0: 1, Rate: 1, Dt: -0.1, Duration: 1}, "dt"},
		{"NaN dt", Params{N0: 1, Rate: 1, Dt: math.NaN(), Duration: 1}, "dt"},
		{"negative duration", Params{N0: 1, Rate: 1, Dt: 0.1, Duration: -1}, "duration"},
		{"NaN duration", Params{N0: 1, Rate: 1, Dt: 0.1, Duration: math.NaN()}, "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("expected *ArgumentError, got %T", err)
			}
			if argErr.Name != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, argErr.Name)
			}
		})
	}
}
