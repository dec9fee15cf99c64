package domain

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// AbsorptionSteps is the number of steps after which the chain started at
// state 0 is guaranteed to be absorbed. Every non-fatal roll adds at least
// two points, so ceil(target/2) rolls always reach the target or die.
func AbsorptionSteps(target int) int {
	if target <= 0 {
		return 0
	}
	return (target + 1) / 2
}

// Distribution returns row 0 of T^steps: the state distribution after steps
// rolls starting from zero points. For steps >= AbsorptionSteps(target) this
// is the absorption distribution and further steps do not change it.
func Distribution(target, steps int) ([]float64, error) {
	if steps < 0 {
		return nil, fmt.Errorf("negative step count %d", steps)
	}
	t, err := TransitionMatrix(target)
	if err != nil {
		return nil, err
	}

	var p mat.Dense
	p.Pow(t, steps)
	return mat.Row(nil, 0, &p), nil
}

// Solve computes the absorption distribution from state 0 and reduces it to
// the expected final score.
func Solve(target int) (Outcome, error) {
	steps := AbsorptionSteps(target)
	dist, err := Distribution(target, steps)
	if err != nil {
		return Outcome{}, fmt.Errorf("solve target %d: %w", target, err)
	}

	space := StateSpace{Target: target}
	return Outcome{
		Target:       target,
		Steps:        steps,
		Distribution: dist,
		Death:        dist[space.Death()],
		Expected:     floats.Dot(dist, space.Values()),
	}, nil
}

// ExpectedScore returns the expected points banked in one turn when the
// player keeps rolling until reaching at least target.
func ExpectedScore(target int) (float64, error) {
	out, err := Solve(target)
	if err != nil {
		return 0, err
	}
	return out.Expected, nil
}

// ParseTarget converts user input into a target, rejecting anything that is
// not a non-negative base-10 integer.
func ParseTarget(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse target %q: %w", raw, ErrInvalidTarget)
	}
	if n < 0 {
		return 0, fmt.Errorf("parse target %q: %w", raw, ErrInvalidTarget)
	}
	return n, nil
}
