package core

import (
	"fmt"

	"cpusim/internal/requests"
)

// Unset marks a timestamp or metric that has not been determined yet.
const Unset = -1

// Process is the mutable state of one job during a single simulation run.
// Derived metrics stay Unset until the process completes.
type Process struct {
	Job        *requests.Job
	Index      int
	Remaining  int
	FirstRun   int
	Completion int
	Waiting    int
	TurnAround int
	Response   int
}

// NewProcess wraps job with its full burst remaining and no metrics set.
func NewProcess(index int, job requests.Job) *Process {
	return &Process{
		Job:        &job,
		Index:      index,
		Remaining:  job.BurstTime,
		FirstRun:   Unset,
		Completion: Unset,
		Waiting:    Unset,
		TurnAround: Unset,
		Response:   Unset,
	}
}

// Arrived reports whether the job has been submitted by now.
func (p *Process) Arrived(now int) bool {
	return p.Job.ArrivalTime <= now
}

// Completed reports whether no work remains.
func (p *Process) Completed() bool {
	return p.Remaining == 0
}

// Ready reports whether the process has arrived and still needs the CPU.
func (p *Process) Ready(now int) bool {
	return p.Arrived(now) && !p.Completed()
}

// Started reports whether the process has held the CPU at least once.
func (p *Process) Started() bool {
	return p.FirstRun != Unset
}

// Dispatch records the first time the process is given the CPU. Later calls
// leave FirstRun untouched.
func (p *Process) Dispatch(now int) {
	if p.Started() {
		return
	}
	p.FirstRun = now
	p.Response = now - p.Job.ArrivalTime
}

// Execute runs the process for slice time units starting at now and returns
// the time the slice ends. Completion metrics are filled in when the remaining
// time reaches zero.
func (p *Process) Execute(now, slice int) int {
	if slice <= 0 || slice > p.Remaining {
		panic(fmt.Sprintf("core: pid %d cannot run %d of %d remaining units", p.Job.ProcessId, slice, p.Remaining))
	}
	p.Dispatch(now)
	p.Remaining -= slice
	end := now + slice
	if p.Remaining == 0 {
		p.complete(end)
	}
	return end
}

func (p *Process) complete(now int) {
	p.Completion = now
	p.TurnAround = p.Completion - p.Job.ArrivalTime
	p.Waiting = p.TurnAround - p.Job.BurstTime
}
