package requests

import "errors"

var (
	ErrNoJobs               = errors.New("at least one process is required")
	ErrTooManyJobs          = errors.New("too many processes")
	ErrInvalidArrivalTime   = errors.New("arrival time must not be negative")
	ErrInvalidBurstTime     = errors.New("burst time must be positive")
	ErrDuplicateProcessId   = errors.New("duplicate process id")
	ErrTooMuchWork          = errors.New("simulated time exceeds the limit")
	ErrInvalidInput         = errors.New("invalid process input")
	ErrProcessCountMismatch = errors.New("process count does not match input")
)
