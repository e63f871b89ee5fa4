package schedulers

import "errors"

var (
	ErrUnknownAlgorithm   = errors.New("unknown algorithm")
	ErrInvalidTimeQuantum = errors.New("time quantum must be positive")
)
