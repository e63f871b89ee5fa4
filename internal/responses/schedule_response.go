package responses

// GanttEntry is one contiguous interval during which a single process held
// the CPU.
type GanttEntry struct {
	ProcessId int `json:"pid"`
	Start     int `json:"start"`
	End       int `json:"end"`
}

func (g GanttEntry) Duration() int {
	return g.End - g.Start
}

type ProcessResponse struct {
	ProcessId      int `json:"pid"`
	ArrivalTime    int `json:"arrival"`
	BurstTime      int `json:"burst"`
	Priority       int `json:"priority"`
	CompletionTime int `json:"completion"`
	WaitingTime    int `json:"waiting"`
	TurnAroundTime int `json:"turnaround"`
	ResponseTime   int `json:"response"`
}

// ScheduleResponse is the outcome of one simulation run. Details are kept in
// the order the processes were submitted.
type ScheduleResponse struct {
	Algorithm             string            `json:"algorithm"`
	Gantt                 []GanttEntry      `json:"gantt"`
	Details               []ProcessResponse `json:"processes"`
	AverageWaitingTime    float64           `json:"avg_waiting"`
	AverageTurnAroundTime float64           `json:"avg_turnaround"`
	AverageResponseTime   float64           `json:"avg_response"`
	TotalTime             int               `json:"total_time"`
	IdleTime              int               `json:"idle_time"`
	CpuUtilization        float64           `json:"cpu_utilization"`
	CpuThroughput         float64           `json:"cpu_throughput"`
	ContextSwitches       int               `json:"context_switches"`
}
