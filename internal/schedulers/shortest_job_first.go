package schedulers

import (
	"log"

	"cpusim/internal/core"
)

func scheduleShortestJobFirst(s *simulation) {
	log.Println("running sjf algorithm ...")
	s.runNonPreemptive(lowest(burstTime))
}

// scheduleShortestRemainingTimeFirst is the preemptive variant: the job with
// the least remaining work is re-chosen every time unit.
func scheduleShortestRemainingTimeFirst(s *simulation) {
	log.Println("running srtf algorithm ...")
	s.runPreemptive(lowest(remainingTime))
}

func burstTime(p *core.Process) int {
	return p.Job.BurstTime
}

func remainingTime(p *core.Process) int {
	return p.Remaining
}
