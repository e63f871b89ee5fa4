package requests

// Job describes one process handed to the simulator. Jobs are never mutated
// once a simulation starts.
type Job struct {
	ProcessId   int `json:"process_id"`
	ArrivalTime int `json:"arrival_time"`
	BurstTime   int `json:"burst_time"`
	Priority    int `json:"priority"`
}

// ScheduleRequests is the body accepted by the HTTP API. TimeQuantum and
// LevelsTimeQuantum fall back to the configured values when omitted.
type ScheduleRequests struct {
	TimeQuantum       *int  `json:"time_quantum,omitempty"`
	LevelsTimeQuantum []int `json:"levels_time_quantum,omitempty"`
	Jobs              []Job `json:"jobs"`
}
