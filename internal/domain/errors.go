package domain

import "errors"

var (
	ErrInvalidTarget  = errors.New("target must be a non-negative integer")
	ErrInvalidRange   = errors.New("range must satisfy 0 <= from <= to")
	ErrNotStochastic  = errors.New("matrix is not row-stochastic")
	ErrTargetTooLarge = errors.New("target exceeds configured maximum")
	ErrTooManyPoints  = errors.New("range exceeds configured maximum number of points")
)
