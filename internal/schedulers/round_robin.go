package schedulers

import "log"

// scheduleRoundRobin is a single feedback level that never demotes.
func scheduleRoundRobin(s *simulation, timeQuantum int) {
	log.Println("running roundRobin algorithm with timeQuantum = ", timeQuantum)
	s.runQueues([]int{timeQuantum})
}
