package schedulers

import "log"

func scheduleFirstComeFirstServe(s *simulation) {
	log.Println("running fcfs algorithm ...")
	s.runNonPreemptive(inOrder(byArrival(s.processes)))
}
