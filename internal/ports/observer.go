package ports

import "time"

// SolveObserver is notified after every expected-score computation.
type SolveObserver interface {
	ObserveSolve(d time.Duration, cached bool)
}

// NopObserver discards observations.
type NopObserver struct{}

func (NopObserver) ObserveSolve(time.Duration, bool) {}
