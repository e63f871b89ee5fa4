package core

import "cpusim/internal/responses"

// CpuMetric summarizes how a run used the CPU.
type CpuMetric struct {
	TotalTime       int
	UtilizationTime int
	IdleTime        int
}

// MeasureCpu derives CPU usage from a finished timeline. The clock starts at
// zero, so any time before the first entry counts as idle.
func MeasureCpu(gantt []responses.GanttEntry) CpuMetric {
	var metric CpuMetric
	for _, entry := range gantt {
		metric.UtilizationTime += entry.Duration()
		if entry.End > metric.TotalTime {
			metric.TotalTime = entry.End
		}
	}
	metric.IdleTime = metric.TotalTime - metric.UtilizationTime
	return metric
}

// ContextSwitches counts transitions between different processes.
func ContextSwitches(gantt []responses.GanttEntry) int {
	switches := 0
	for i := 1; i < len(gantt); i++ {
		if gantt[i].ProcessId != gantt[i-1].ProcessId {
			switches++
		}
	}
	return switches
}
