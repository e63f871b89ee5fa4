package report

import (
	"encoding/json"
	"io"
	"strconv"

	"cpusim/internal/responses"
)

// JSONView is the wire form of a ScheduleResponse. Averages and ratios are
// fixed to a number of fractional digits so "3" prints as "3.00".
type JSONView struct {
	Algorithm         string                      `json:"algorithm"`
	Gantt             []responses.GanttEntry      `json:"gantt"`
	Processes         []responses.ProcessResponse `json:"processes"`
	AverageWaiting    json.Number                 `json:"avg_waiting"`
	AverageTurnaround json.Number                 `json:"avg_turnaround"`
	AverageResponse   json.Number                 `json:"avg_response"`
	TotalTime         int                         `json:"total_time"`
	IdleTime          int                         `json:"idle_time"`
	CpuUtilization    json.Number                 `json:"cpu_utilization"`
	CpuThroughput     json.Number                 `json:"cpu_throughput"`
	ContextSwitches   int                         `json:"context_switches"`
}

// NewJSONView formats response with precision fractional digits. A negative
// precision keeps the shortest exact representation.
func NewJSONView(response responses.ScheduleResponse, precision int) JSONView {
	gantt := response.Gantt
	if gantt == nil {
		gantt = []responses.GanttEntry{}
	}
	processes := response.Details
	if processes == nil {
		processes = []responses.ProcessResponse{}
	}

	return JSONView{
		Algorithm:         response.Algorithm,
		Gantt:             gantt,
		Processes:         processes,
		AverageWaiting:    fixed(response.AverageWaitingTime, precision),
		AverageTurnaround: fixed(response.AverageTurnAroundTime, precision),
		AverageResponse:   fixed(response.AverageResponseTime, precision),
		TotalTime:         response.TotalTime,
		IdleTime:          response.IdleTime,
		CpuUtilization:    fixed(response.CpuUtilization, precision),
		CpuThroughput:     fixed(response.CpuThroughput, precision),
		ContextSwitches:   response.ContextSwitches,
	}
}

// WriteJSON encodes v on a single line.
func WriteJSON(w io.Writer, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

func fixed(x float64, precision int) json.Number {
	return json.Number(strconv.FormatFloat(x, 'f', precision, 64))
}
