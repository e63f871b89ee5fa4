package schedulers

import (
	"sort"

	"cpusim/internal/core"
)

// lowest selects the ready process with the smallest key. Candidates are
// scanned in submission order and only a strictly smaller key replaces the
// current choice, so ties go to the process submitted first.
func lowest(key func(p *core.Process) int) selector {
	return func(s *simulation) *core.Process {
		var best *core.Process
		for _, p := range s.processes {
			if !p.Ready(s.now) {
				continue
			}
			if best == nil || key(p) < key(best) {
				best = p
			}
		}
		return best
	}
}

// inOrder serves processes in a fixed order, waiting for each one to arrive.
func inOrder(order []int) selector {
	next := 0
	return func(s *simulation) *core.Process {
		for next < len(order) && s.processes[order[next]].Completed() {
			next++
		}
		if next == len(order) {
			return nil
		}
		p := s.processes[order[next]]
		if !p.Arrived(s.now) {
			return nil
		}
		return p
	}
}

// byArrival returns process indices sorted by arrival time. Processes that
// arrive together keep their submission order.
func byArrival(processes []*core.Process) []int {
	order := make([]int, len(processes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return processes[order[i]].Job.ArrivalTime < processes[order[j]].Job.ArrivalTime
	})
	return order
}
