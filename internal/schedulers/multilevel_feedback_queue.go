package schedulers

import "log"

// scheduleMultilevelFeedbackQueue runs one round-robin level per entry of
// timeQuantumList, highest level first, followed by a first-come-first-serve
// level that lets a process finish.
func scheduleMultilevelFeedbackQueue(s *simulation, timeQuantumList []int) {
	log.Println("mlfq algorithm with timeQuantum = ", timeQuantumList)

	quanta := make([]int, 0, len(timeQuantumList)+1)
	quanta = append(quanta, timeQuantumList...)
	quanta = append(quanta, runToCompletion)
	s.runQueues(quanta)
}
