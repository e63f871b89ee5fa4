package requests

import (
	"fmt"
	"math"
)

// Validate checks the request before any simulation work starts. maxJobs caps
// the process count and maxTime caps the simulated horizon, the latest
// arrival plus the total burst. A limit of zero or less is not enforced, but
// a horizon that overflows int is always rejected.
func (r *ScheduleRequests) Validate(maxJobs, maxTime int) error {
	if r == nil || len(r.Jobs) == 0 {
		return ErrNoJobs
	}
	if maxJobs > 0 && len(r.Jobs) > maxJobs {
		return fmt.Errorf("%w: got %d, limit is %d", ErrTooManyJobs, len(r.Jobs), maxJobs)
	}

	seen := make(map[int]struct{}, len(r.Jobs))
	var lastArrival, totalBurst int
	for _, job := range r.Jobs {
		if job.ArrivalTime < 0 {
			return fmt.Errorf("%w: pid %d arrives at %d", ErrInvalidArrivalTime, job.ProcessId, job.ArrivalTime)
		}
		if job.BurstTime <= 0 {
			return fmt.Errorf("%w: pid %d has burst %d", ErrInvalidBurstTime, job.ProcessId, job.BurstTime)
		}
		if _, ok := seen[job.ProcessId]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateProcessId, job.ProcessId)
		}
		seen[job.ProcessId] = struct{}{}

		if totalBurst > math.MaxInt-job.BurstTime {
			return fmt.Errorf("%w: total burst time overflows", ErrTooMuchWork)
		}
		totalBurst += job.BurstTime
		lastArrival = max(lastArrival, job.ArrivalTime)
	}

	if lastArrival > math.MaxInt-totalBurst {
		return fmt.Errorf("%w: last arrival %d plus total burst %d overflows", ErrTooMuchWork, lastArrival, totalBurst)
	}
	if horizon := lastArrival + totalBurst; maxTime > 0 && horizon > maxTime {
		return fmt.Errorf("%w: simulation may run until %d, limit is %d", ErrTooMuchWork, horizon, maxTime)
	}
	return nil
}
