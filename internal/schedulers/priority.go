package schedulers

import (
	"log"

	"cpusim/internal/core"
)

func schedulePriority(s *simulation) {
	log.Println("running priority algorithm ...")
	s.runNonPreemptive(lowest(priority))
}

func schedulePreemptivePriority(s *simulation) {
	log.Println("running preemptive priority algorithm ...")
	s.runPreemptive(lowest(priority))
}

// priority is the selection key; lower values win.
func priority(p *core.Process) int {
	return p.Job.Priority
}
