package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"cpusim/internal/responses"
)

// WriteTable prints a title, a Gantt bar and the per-process schedule table.
func WriteTable(w io.Writer, title string, response responses.ScheduleResponse, precision int) {
	outputTitle(w, title)
	outputGantt(w, response.Gantt)
	outputSchedule(w, response, precision)
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

const idleLabel = "idle"

func outputGantt(w io.Writer, gantt []responses.GanttEntry) {
	type cell struct {
		label string
		start int
	}

	cells := make([]cell, 0, len(gantt))
	clock := 0
	for _, entry := range gantt {
		if entry.Start > clock {
			cells = append(cells, cell{label: idleLabel, start: clock})
		}
		cells = append(cells, cell{label: fmt.Sprint(entry.ProcessId), start: entry.Start})
		clock = entry.End
	}

	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, c := range cells {
		padding := strings.Repeat(" ", max(8-len(c.label), 0)/2)
		_, _ = fmt.Fprint(w, padding, c.label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for _, c := range cells {
		_, _ = fmt.Fprint(w, c.start, "\t")
	}
	_, _ = fmt.Fprintf(w, "%d\n\n", clock)
}

func outputSchedule(w io.Writer, response responses.ScheduleResponse, precision int) {
	rows := make([][]string, len(response.Details))
	for i, p := range response.Details {
		rows[i] = []string{
			fmt.Sprint(p.ProcessId),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.BurstTime),
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.CompletionTime),
			fmt.Sprint(p.WaitingTime),
			fmt.Sprint(p.TurnAroundTime),
			fmt.Sprint(p.ResponseTime),
		}
	}

	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Priority", "Exit", "Wait", "Turnaround", "Response"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Throughput\n%.*f/t", precision, response.CpuThroughput),
		fmt.Sprintf("Average\n%.*f", precision, response.AverageWaitingTime),
		fmt.Sprintf("Average\n%.*f", precision, response.AverageTurnAroundTime),
		fmt.Sprintf("Average\n%.*f", precision, response.AverageResponseTime)})
	table.Render()
}
