package schedulers

import (
	"cpusim/internal/core"
	"cpusim/internal/responses"
	"cpusim/internal/util"
)

func generateResponse(algorithm Algorithm, s *simulation) responses.ScheduleResponse {
	proccessDetails := make([]responses.ProcessResponse, 0, len(s.processes))
	for _, process := range s.processes {
		proccessDetails = append(proccessDetails, generateProcessDetails(process))
	}
	averageWaitingTime, averageResponseTime, averageTimeAroundTime := util.CalculateAverage(proccessDetails)

	gantt := s.timeline.Entries()
	cpuMetric := core.MeasureCpu(gantt)

	return responses.ScheduleResponse{
		Algorithm:             string(algorithm),
		Gantt:                 gantt,
		Details:               proccessDetails,
		AverageWaitingTime:    averageWaitingTime,
		AverageTurnAroundTime: averageTimeAroundTime,
		AverageResponseTime:   averageResponseTime,
		TotalTime:             cpuMetric.TotalTime,
		IdleTime:              cpuMetric.IdleTime,
		CpuUtilization:        util.Ratio(cpuMetric.UtilizationTime, cpuMetric.TotalTime),
		CpuThroughput:         util.Ratio(len(proccessDetails), cpuMetric.TotalTime),
		ContextSwitches:       core.ContextSwitches(gantt),
	}
}

func generateProcessDetails(process *core.Process) responses.ProcessResponse {
	return responses.ProcessResponse{
		ProcessId:      process.Job.ProcessId,
		ArrivalTime:    process.Job.ArrivalTime,
		BurstTime:      process.Job.BurstTime,
		Priority:       process.Job.Priority,
		CompletionTime: process.Completion,
		WaitingTime:    process.Waiting,
		TurnAroundTime: process.TurnAround,
		ResponseTime:   process.Response,
	}
}
