package schedulers

import (
	"log"

	"cpusim/internal/core"
	"cpusim/internal/requests"
)

// simulation holds everything one run mutates. Nothing outlives the run.
type simulation struct {
	processes []*core.Process
	timeline  core.Timeline
	now       int
	completed int
	trace     *log.Logger
}

func newSimulation(jobs []requests.Job, trace *log.Logger) *simulation {
	s := &simulation{
		processes: make([]*core.Process, len(jobs)),
		trace:     trace,
	}
	for i, job := range jobs {
		s.processes[i] = core.NewProcess(i, job)
	}
	return s
}

func (s *simulation) done() bool {
	return s.completed == len(s.processes)
}

// idle advances the clock to the next arrival among unfinished processes.
// Nothing can be selected before that instant, so jumping is equivalent to
// ticking one unit at a time.
func (s *simulation) idle() {
	next := core.Unset
	for _, p := range s.processes {
		if p.Completed() || p.Arrived(s.now) {
			continue
		}
		if next == core.Unset || p.Job.ArrivalTime < next {
			next = p.Job.ArrivalTime
		}
	}
	if next == core.Unset {
		next = s.now + 1
	}
	s.tracef("cpu idle from %d to %d", s.now, next)
	s.now = next
}

func (s *simulation) finish(p *core.Process) {
	s.completed++
	s.tracef("pid: %d completed at %d, waiting %d, turnaround %d", p.Job.ProcessId, p.Completion, p.Waiting, p.TurnAround)
}

func (s *simulation) tracef(format string, args ...interface{}) {
	if s.trace != nil {
		s.trace.Printf(format, args...)
	}
}

// selector returns the process to run at s.now, or nil when none is ready.
type selector func(s *simulation) *core.Process

// runNonPreemptive gives each selected process the CPU until it completes.
func (s *simulation) runNonPreemptive(pick selector) {
	for !s.done() {
		p := pick(s)
		if p == nil {
			s.idle()
			continue
		}

		start := s.now
		s.tracef("pid: %d dispatched at %d for %d", p.Job.ProcessId, start, p.Remaining)
		s.now = p.Execute(start, p.Remaining)
		s.timeline.Record(p.Job.ProcessId, start, s.now)
		s.finish(p)
	}
}

// runPreemptive re-selects every tick. Consecutive ticks of the same process
// extend one Gantt entry; idle gaps close it.
func (s *simulation) runPreemptive(pick selector) {
	for !s.done() {
		p := pick(s)
		if p == nil {
			s.timeline.Close(s.now)
			s.idle()
			continue
		}

		if s.timeline.Switch(p.Index, p.Job.ProcessId, s.now) {
			s.tracef("pid: %d dispatched at %d, %d remaining", p.Job.ProcessId, s.now, p.Remaining)
		}
		s.now = p.Execute(s.now, 1)
		if p.Completed() {
			s.finish(p)
		}
	}
	s.timeline.Close(s.now)
}

// runToCompletion marks a queue level whose dispatches are never cut short.
const runToCompletion = 0

// runQueues drives a ladder of FIFO ready queues. quanta[i] is the slice
// length on level i. New arrivals join level 0; a process still unfinished
// after its slice moves one level down, the last level keeping it. Arrivals
// that happened during a slice are queued ahead of the process that ran it.
func (s *simulation) runQueues(quanta []int) {
	levels := make([][]*core.Process, len(quanta))
	queued := make([]bool, len(s.processes))

	admit := func(running *core.Process) {
		for _, p := range s.processes {
			if p == running || queued[p.Index] || !p.Ready(s.now) {
				continue
			}
			levels[0] = append(levels[0], p)
			queued[p.Index] = true
			s.tracef("pid: %d queued at %d", p.Job.ProcessId, s.now)
		}
	}

	admit(nil)
	for !s.done() {
		level := highestNonEmpty(levels)
		if level < 0 {
			s.idle()
			admit(nil)
			continue
		}

		p := levels[level][0]
		levels[level] = levels[level][1:]
		queued[p.Index] = false

		slice := p.Remaining
		if quantum := quanta[level]; quantum != runToCompletion && quantum < slice {
			slice = quantum
		}

		start := s.now
		s.tracef("pid: %d dispatched from level %d at %d for %d", p.Job.ProcessId, level, start, slice)
		s.now = p.Execute(start, slice)
		s.timeline.Record(p.Job.ProcessId, start, s.now)

		admit(p)

		if p.Completed() {
			s.finish(p)
			continue
		}
		next := min(level+1, len(levels)-1)
		levels[next] = append(levels[next], p)
		queued[p.Index] = true
	}
}

func highestNonEmpty(levels [][]*core.Process) int {
	for i, queue := range levels {
		if len(queue) > 0 {
			return i
		}
	}
	return -1
}
