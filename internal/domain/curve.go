package domain

import "fmt"

const presizeLimit = 4096

// SampleCurve evaluates solve once for every target in [from, to], in order.
func SampleCurve(from, to int, solve func(target int) (float64, error)) (Curve, error) {
	if from < 0 || to < from {
		return Curve{}, fmt.Errorf("sample %d..%d: %w", from, to, ErrInvalidRange)
	}

	var points []Point
	if span := to - from; span < presizeLimit {
		points = make([]Point, 0, span+1)
	}
	// Stop on equality so to == math.MaxInt does not wrap the counter.
	for target := from; ; target++ {
		score, err := solve(target)
		if err != nil {
			return Curve{}, fmt.Errorf("sample target %d: %w", target, err)
		}
		points = append(points, Point{Target: target, Expected: score})
		if target == to {
			break
		}
	}
	return Curve{Points: points}, nil
}
