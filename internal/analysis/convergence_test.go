package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/eulergrowth/internal/dynamo"
)

func TestHalvings(t *testing.T) {
	dts := Halvings(0.1, 4)
	expected := []float64{0.1, 0.05, 0.025, 0.0125}
	if len(dts) != len(expected) {
		t.Fatalf("expected %d step sizes, got %d", len(expected), len(dts))
	}
	for i := range expected {
		if math.Abs(dts[i]-expected[i]) > 1e-15 {
			t.Errorf("dt[%d] = %g, want %g", i, dts[i], expected[i])
		}
	}
}

func TestConvergence_FirstOrder(t *testing.T) {
	// Shuffled on purpose: rows come back coarsest first.
	dts := []float64{0.0025, 0.01, 0.005}
	rows, err := Convergence(context.Background(), 1, 1, 1, dts)
	if err != nil {
		t.Fatalf("convergence failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Dt != 0.01 || rows[2].Dt != 0.0025 {
		t.Errorf("rows not sorted by descending dt: %v %v", rows[0].Dt, rows[2].Dt)
	}
	if !math.IsNaN(rows[0].Order) {
		t.Errorf("expected NaN order for the first row, got %f", rows[0].Order)
	}
	if rows[0].Steps != 101 {
		t.Errorf("expected 101 steps, got %d", rows[0].Steps)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].MaxAbsError >= rows[i-1].MaxAbsError {
			t.Errorf("error did not shrink: %g -> %g", rows[i-1].MaxAbsError, rows[i].MaxAbsError)
		}
		if math.Abs(rows[i].Order-1) > 0.1 {
			t.Errorf("row %d: observed order %.3f, expected ~1", i, rows[i].Order)
		}
	}
}

func TestConvergence_Invalid(t *testing.T) {
	_, err := Convergence(context.Background(), 1, 1, 1, nil)
	if !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty dts, got %v", err)
	}

	_, err = Convergence(context.Background(), 1, 1, 1, []float64{0.1, 0})
	if !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for zero dt, got %v", err)
	}
}

func TestConvergence_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Convergence(ctx, 1, 1, 1, Halvings(0.1, 3))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConvergence_FlatModel(t *testing.T) {
	rows, err := Convergence(context.Background(), 5, 0, 1, Halvings(0.1, 2))
	if err != nil {
		t.Fatalf("convergence failed: %v", err)
	}
	for _, row := range rows {
		if row.MaxAbsError != 0 {
			t.Errorf("expected exact flat solution, got error %g", row.MaxAbsError)
		}
		if !math.IsNaN(row.Order) {
			t.Errorf("expected NaN order for zero error, got %f", row.Order)
		}
	}
}
