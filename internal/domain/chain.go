package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const rollProbability = 1.0 / Faces

// TransitionMatrix builds the one-step transition matrix for the "hold at
// target" strategy. Transient rows send 1/6 to the death state and 1/6 to each
// of i+2..i+6; absorbing rows are identity rows.
func TransitionMatrix(target int) (*mat.Dense, error) {
	if target < 0 {
		return nil, fmt.Errorf("transition matrix for %d: %w", target, ErrInvalidTarget)
	}

	space := StateSpace{Target: target}
	n := space.Size()
	death := space.Death()

	t := mat.NewDense(n, n, nil)
	for i := 0; i < target; i++ {
		t.Set(i, death, rollProbability)
		for x := DeathFace + 1; x <= Faces; x++ {
			// i+x <= target+5 < death, so no roll ever aliases the death column.
			t.Set(i, i+x, t.At(i, i+x)+rollProbability)
		}
	}
	for i := target; i < n; i++ {
		t.Set(i, i, 1)
	}
	return t, nil
}

// CheckRowStochastic verifies that every row of m is non-negative and sums
// to one within tol.
func CheckRowStochastic(m mat.Matrix, tol float64) error {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		var sum float64
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if v < 0 {
				return fmt.Errorf("row %d column %d is %g: %w", i, j, v, ErrNotStochastic)
			}
			sum += v
		}
		if math.Abs(sum-1) > tol {
			return fmt.Errorf("row %d sums to %g: %w", i, sum, ErrNotStochastic)
		}
	}
	return nil
}
