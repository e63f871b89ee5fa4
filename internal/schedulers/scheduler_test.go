package schedulers

import (
	"bytes"
	"log"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpusim/internal/requests"
	"cpusim/internal/responses"
)

// newRequest builds a request from {pid, arrival, burst, priority} rows.
func newRequest(rows ...[4]int) *requests.ScheduleRequests {
	request := &requests.ScheduleRequests{}
	for _, row := range rows {
		request.Jobs = append(request.Jobs, requests.Job{
			ProcessId:   row[0],
			ArrivalTime: row[1],
			BurstTime:   row[2],
			Priority:    row[3],
		})
	}
	return request
}

// gantt builds entries from {pid, start, end} triples.
func gantt(triples ...[3]int) []responses.GanttEntry {
	entries := make([]responses.GanttEntry, 0, len(triples))
	for _, tr := range triples {
		entries = append(entries, responses.GanttEntry{ProcessId: tr[0], Start: tr[1], End: tr[2]})
	}
	return entries
}

func detail(pid, arrival, burst, priority, completion, waiting, turnaround, response int) responses.ProcessResponse {
	return responses.ProcessResponse{
		ProcessId:      pid,
		ArrivalTime:    arrival,
		BurstTime:      burst,
		Priority:       priority,
		CompletionTime: completion,
		WaitingTime:    waiting,
		TurnAroundTime: turnaround,
		ResponseTime:   response,
	}
}

func mustSchedule(t *testing.T, algorithm Algorithm, request *requests.ScheduleRequests, opts Options) responses.ScheduleResponse {
	t.Helper()
	response, err := Schedule(algorithm, request, opts)
	require.NoError(t, err)
	checkInvariants(t, algorithm, request, opts, response)
	return response
}

func assertGantt(t *testing.T, want []responses.GanttEntry, got responses.ScheduleResponse) {
	t.Helper()
	if diff := cmp.Diff(want, got.Gantt); diff != "" {
		t.Errorf("%s gantt mismatch (-want +got):\n%s", got.Algorithm, diff)
	}
}

func assertDetails(t *testing.T, want []responses.ProcessResponse, got responses.ScheduleResponse) {
	t.Helper()
	if diff := cmp.Diff(want, got.Details); diff != "" {
		t.Errorf("%s details mismatch (-want +got):\n%s", got.Algorithm, diff)
	}
}

func isPreemptive(algorithm Algorithm) bool {
	return algorithm == ShortestRemainingTimeFirst || algorithm == PriorityPreemptive
}

func isNonPreemptive(algorithm Algorithm) bool {
	return algorithm == FirstComeFirstServe || algorithm == ShortestJobFirst || algorithm == PriorityNonPreemptive
}

// checkInvariants asserts the properties every completed run must satisfy.
func checkInvariants(t *testing.T, algorithm Algorithm, request *requests.ScheduleRequests, opts Options, response responses.ScheduleResponse) {
	t.Helper()

	require.Len(t, response.Details, len(request.Jobs))

	served := make(map[int]int)
	entries := make(map[int]int)
	lastEnd := make(map[int]int)
	for i, entry := range response.Gantt {
		assert.Greater(t, entry.End, entry.Start, "%s entry %d has no duration", algorithm, i)
		if i > 0 {
			prev := response.Gantt[i-1]
			assert.GreaterOrEqual(t, entry.Start, prev.End, "%s entry %d overlaps its predecessor", algorithm, i)
			if isPreemptive(algorithm) && prev.ProcessId == entry.ProcessId {
				assert.NotEqual(t, prev.End, entry.Start, "%s entry %d was not coalesced", algorithm, i)
			}
		}
		if algorithm == RoundRobin {
			assert.LessOrEqual(t, entry.Duration(), opts.TimeQuantum)
		}
		served[entry.ProcessId] += entry.Duration()
		entries[entry.ProcessId]++
		lastEnd[entry.ProcessId] = entry.End
	}

	var waiting, turnaround, responded int
	for i, p := range response.Details {
		job := request.Jobs[i]
		assert.Equal(t, job.ProcessId, p.ProcessId, "details keep submission order")
		assert.Equal(t, job.BurstTime, served[p.ProcessId], "%s pid %d served time", algorithm, p.ProcessId)
		assert.Equal(t, lastEnd[p.ProcessId], p.CompletionTime, "%s pid %d completes at its last slice", algorithm, p.ProcessId)
		assert.Equal(t, p.CompletionTime-p.ArrivalTime, p.TurnAroundTime)
		assert.Equal(t, p.TurnAroundTime-p.BurstTime, p.WaitingTime)
		assert.GreaterOrEqual(t, p.ResponseTime, 0)
		assert.GreaterOrEqual(t, p.WaitingTime, p.ResponseTime)
		if isNonPreemptive(algorithm) {
			assert.Equal(t, 1, entries[p.ProcessId], "%s pid %d runs in one slice", algorithm, p.ProcessId)
			assert.Equal(t, p.WaitingTime, p.ResponseTime)
		}
		waiting += p.WaitingTime
		turnaround += p.TurnAroundTime
		responded += p.ResponseTime
	}

	n := float64(len(response.Details))
	assert.InDelta(t, float64(waiting)/n, response.AverageWaitingTime, 1e-9)
	assert.InDelta(t, float64(turnaround)/n, response.AverageTurnAroundTime, 1e-9)
	assert.InDelta(t, float64(responded)/n, response.AverageResponseTime, 1e-9)
}

func TestFirstComeFirstServe(t *testing.T) {
	request := newRequest(
		[4]int{1, 0, 5, 0},
		[4]int{2, 1, 3, 0},
		[4]int{3, 2, 8, 0},
	)

	response := mustSchedule(t, FirstComeFirstServe, request, DefaultOptions())

	assert.Equal(t, "FCFS", response.Algorithm)
	assertGantt(t, gantt([3]int{1, 0, 5}, [3]int{2, 5, 8}, [3]int{3, 8, 16}), response)
	assertDetails(t, []responses.ProcessResponse{
		detail(1, 0, 5, 0, 5, 0, 5, 0),
		detail(2, 1, 3, 0, 8, 4, 7, 4),
		detail(3, 2, 8, 0, 16, 6, 14, 6),
	}, response)
	assert.InDelta(t, 10.0/3, response.AverageWaitingTime, 1e-9)
	assert.InDelta(t, 26.0/3, response.AverageTurnAroundTime, 1e-9)
	assert.InDelta(t, 10.0/3, response.AverageResponseTime, 1e-9)
	assert.Equal(t, 16, response.TotalTime)
	assert.Equal(t, 0, response.IdleTime)
	assert.InDelta(t, 1.0, response.CpuUtilization, 1e-9)
	assert.InDelta(t, 3.0/16, response.CpuThroughput, 1e-9)
	assert.Equal(t, 2, response.ContextSwitches)
}

func TestFirstComeFirstServeKeepsSubmissionOrderOnTies(t *testing.T) {
	request := newRequest(
		[4]int{1, 3, 2, 0},
		[4]int{2, 0, 1, 0},
		[4]int{3, 3, 1, 0},
		[4]int{4, 0, 2, 0},
	)

	response := mustSchedule(t, FirstComeFirstServe, request, DefaultOptions())

	assertGantt(t, gantt([3]int{2, 0, 1}, [3]int{4, 1, 3}, [3]int{1, 3, 5}, [3]int{3, 5, 6}), response)
	assert.Equal(t, 1, response.Details[0].ProcessId)
}

func TestFirstComeFirstServeIdleGap(t *testing.T) {
	request := newRequest([4]int{1, 2, 3, 0}, [4]int{2, 10, 1, 0})

	response := mustSchedule(t, FirstComeFirstServe, request, DefaultOptions())

	assertGantt(t, gantt([3]int{1, 2, 5}, [3]int{2, 10, 11}), response)
	assert.Equal(t, 11, response.TotalTime)
	assert.Equal(t, 7, response.IdleTime)
	assert.InDelta(t, 4.0/11, response.CpuUtilization, 1e-9)
}

var sjfRequest = newRequest(
	[4]int{1, 0, 7, 0},
	[4]int{2, 2, 4, 0},
	[4]int{3, 4, 1, 0},
	[4]int{4, 5, 4, 0},
)

func TestShortestJobFirst(t *testing.T) {
	response := mustSchedule(t, ShortestJobFirst, sjfRequest, DefaultOptions())

	assertGantt(t, gantt([3]int{1, 0, 7}, [3]int{3, 7, 8}, [3]int{2, 8, 12}, [3]int{4, 12, 16}), response)
	assertDetails(t, []responses.ProcessResponse{
		detail(1, 0, 7, 0, 7, 0, 7, 0),
		detail(2, 2, 4, 0, 12, 6, 10, 6),
		detail(3, 4, 1, 0, 8, 3, 4, 3),
		detail(4, 5, 4, 0, 16, 7, 11, 7),
	}, response)
}

func TestShortestJobFirstTieGoesToFirstSubmitted(t *testing.T) {
	request := newRequest([4]int{1, 0, 3, 0}, [4]int{2, 1, 2, 0}, [4]int{3, 1, 2, 0})

	response := mustSchedule(t, ShortestJobFirst, request, DefaultOptions())

	assertGantt(t, gantt([3]int{1, 0, 3}, [3]int{2, 3, 5}, [3]int{3, 5, 7}), response)
}

func TestShortestRemainingTimeFirst(t *testing.T) {
	response := mustSchedule(t, ShortestRemainingTimeFirst, sjfRequest, DefaultOptions())

	assertGantt(t, gantt(
		[3]int{1, 0, 2},
		[3]int{2, 2, 4},
		[3]int{3, 4, 5},
		[3]int{2, 5, 7},
		[3]int{4, 7, 11},
		[3]int{1, 11, 16},
	), response)
	assertDetails(t, []responses.ProcessResponse{
		detail(1, 0, 7, 0, 16, 9, 16, 0),
		detail(2, 2, 4, 0, 7, 1, 5, 0),
		detail(3, 4, 1, 0, 5, 0, 1, 0),
		detail(4, 5, 4, 0, 11, 2, 6, 2),
	}, response)
	assert.Equal(t, 5, response.ContextSwitches)
}

func TestShortestRemainingTimeFirstIdleGapClosesEntry(t *testing.T) {
	request := newRequest([4]int{1, 0, 2, 0}, [4]int{2, 5, 1, 0})

	response := mustSchedule(t, ShortestRemainingTimeFirst, request, DefaultOptions())

	assertGantt(t, gantt([3]int{1, 0, 2}, [3]int{2, 5, 6}), response)
	assert.Equal(t, 3, response.IdleTime)
}

func TestShortestRemainingTimeFirstTieKeepsFirstSubmitted(t *testing.T) {
	request := newRequest([4]int{1, 0, 2, 0}, [4]int{2, 0, 2, 0})

	response := mustSchedule(t, ShortestRemainingTimeFirst, request, DefaultOptions())

	assertGantt(t, gantt([3]int{1, 0, 2}, [3]int{2, 2, 4}), response)
}

var priorityRequest = newRequest(
	[4]int{1, 0, 4, 2},
	[4]int{2, 1, 3, 1},
	[4]int{3, 2, 1, 3},
	[4]int{4, 3, 2, 1},
)

func TestPriorityNonPreemptive(t *testing.T) {
	response := mustSchedule(t, PriorityNonPreemptive, priorityRequest, DefaultOptions())

	assertGantt(t, gantt([3]int{1, 0, 4}, [3]int{2, 4, 7}, [3]int{4, 7, 9}, [3]int{3, 9, 10}), response)
	assertDetails(t, []responses.ProcessResponse{
		detail(1, 0, 4, 2, 4, 0, 4, 0),
		detail(2, 1, 3, 1, 7, 3, 6, 3),
		detail(3, 2, 1, 3, 10, 7, 8, 7),
		detail(4, 3, 2, 1, 9, 4, 6, 4),
	}, response)
}

func TestPriorityPreemptive(t *testing.T) {
	response := mustSchedule(t, PriorityPreemptive, priorityRequest, DefaultOptions())

	assertGantt(t, gantt(
		[3]int{1, 0, 1},
		[3]int{2, 1, 4},
		[3]int{4, 4, 6},
		[3]int{1, 6, 9},
		[3]int{3, 9, 10},
	), response)
	assertDetails(t, []responses.ProcessResponse{
		detail(1, 0, 4, 2, 9, 5, 9, 0),
		detail(2, 1, 3, 1, 4, 0, 3, 0),
		detail(3, 2, 1, 3, 10, 7, 8, 7),
		detail(4, 3, 2, 1, 6, 1, 3, 1),
	}, response)
}

func TestRoundRobinAdmitsArrivalsBeforeRequeue(t *testing.T) {
	request := newRequest([4]int{1, 0, 5, 0}, [4]int{2, 1, 3, 0}, [4]int{3, 2, 1, 0})

	response := mustSchedule(t, RoundRobin, request, DefaultOptions())

	assertGantt(t, gantt(
		[3]int{1, 0, 2},
		[3]int{2, 2, 4},
		[3]int{3, 4, 5},
		[3]int{1, 5, 7},
		[3]int{2, 7, 8},
		[3]int{1, 8, 9},
	), response)
	assertDetails(t, []responses.ProcessResponse{
		detail(1, 0, 5, 0, 9, 4, 9, 0),
		detail(2, 1, 3, 0, 8, 4, 7, 1),
		detail(3, 2, 1, 0, 5, 2, 3, 2),
	}, response)
}

func TestRoundRobinArrivalAtSliceEnd(t *testing.T) {
	request := newRequest([4]int{1, 0, 4, 0}, [4]int{2, 1, 2, 0}, [4]int{3, 3, 2, 0})
	opts := DefaultOptions()
	opts.TimeQuantum = 3

	response := mustSchedule(t, RoundRobin, request, opts)

	assertGantt(t, gantt([3]int{1, 0, 3}, [3]int{2, 3, 5}, [3]int{3, 5, 7}, [3]int{1, 7, 8}), response)
}

func TestRoundRobinIdleGap(t *testing.T) {
	request := newRequest([4]int{1, 0, 2, 0}, [4]int{2, 5, 3, 0})

	response := mustSchedule(t, RoundRobin, request, DefaultOptions())

	assertGantt(t, gantt([3]int{1, 0, 2}, [3]int{2, 5, 7}, [3]int{2, 7, 8}), response)
	assert.Equal(t, 1, response.ContextSwitches)
	assert.Equal(t, 3, response.IdleTime)
}

func TestRoundRobinNothingAtTimeZero(t *testing.T) {
	request := newRequest([4]int{1, 3, 1, 0})

	response := mustSchedule(t, RoundRobin, request, DefaultOptions())

	assertGantt(t, gantt([3]int{1, 3, 4}), response)
	assertDetails(t, []responses.ProcessResponse{detail(1, 3, 1, 0, 4, 0, 1, 0)}, response)
}

func TestMultilevelFeedbackQueue(t *testing.T) {
	request := newRequest([4]int{1, 0, 8, 0}, [4]int{2, 1, 2, 0}, [4]int{3, 2, 4, 0})

	response := mustSchedule(t, MultilevelFeedbackQueue, request, DefaultOptions())

	assertGantt(t, gantt(
		[3]int{1, 0, 2},
		[3]int{2, 2, 4},
		[3]int{3, 4, 6},
		[3]int{1, 6, 10},
		[3]int{3, 10, 12},
		[3]int{1, 12, 14},
	), response)
	assertDetails(t, []responses.ProcessResponse{
		detail(1, 0, 8, 0, 14, 6, 14, 0),
		detail(2, 1, 2, 0, 4, 1, 3, 1),
		detail(3, 2, 4, 0, 12, 6, 10, 2),
	}, response)
}

func TestMultilevelFeedbackQueueBottomLevelRunsToCompletion(t *testing.T) {
	request := newRequest([4]int{1, 0, 10, 0})
	opts := DefaultOptions()
	opts.LevelsTimeQuantum = []int{1}

	response := mustSchedule(t, MultilevelFeedbackQueue, request, opts)

	assertGantt(t, gantt([3]int{1, 0, 1}, [3]int{1, 1, 10}), response)
}

func TestScheduleRejectsBadConfiguration(t *testing.T) {
	request := newRequest([4]int{1, 0, 1, 0})

	tests := []struct {
		name      string
		algorithm Algorithm
		opts      func(o *Options)
		want      error
	}{
		{"unknown algorithm", Algorithm("LOTTERY"), nil, ErrUnknownAlgorithm},
		{"zero quantum", RoundRobin, func(o *Options) { o.TimeQuantum = 0 }, ErrInvalidTimeQuantum},
		{"negative quantum", RoundRobin, func(o *Options) { o.TimeQuantum = -3 }, ErrInvalidTimeQuantum},
		{"no feedback levels", MultilevelFeedbackQueue, func(o *Options) { o.LevelsTimeQuantum = nil }, ErrInvalidTimeQuantum},
		{"zero feedback level", MultilevelFeedbackQueue, func(o *Options) { o.LevelsTimeQuantum = []int{2, 0} }, ErrInvalidTimeQuantum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			_, err := Schedule(tt.algorithm, request, opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestScheduleWithoutTimeLimitStillRejectsOverflow(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxTime = 0

	_, err := Schedule(FirstComeFirstServe, newRequest([4]int{1, math.MaxInt - 1, 5, 0}), opts)
	assert.ErrorIs(t, err, requests.ErrTooMuchWork)

	response := mustSchedule(t, FirstComeFirstServe, newRequest([4]int{1, 2000000, 5, 0}), opts)
	assertGantt(t, gantt([3]int{1, 2000000, 2000005}), response)
}

func TestQuantumIgnoredOutsideRoundRobin(t *testing.T) {
	opts := DefaultOptions()
	opts.TimeQuantum = 0

	_, err := Schedule(FirstComeFirstServe, newRequest([4]int{1, 0, 1, 0}), opts)
	assert.NoError(t, err)
}

func TestScheduleRejectsBadRequests(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxProcesses = 2
	opts.MaxTime = 50

	tests := []struct {
		name    string
		request *requests.ScheduleRequests
		want    error
	}{
		{"nil request", nil, requests.ErrNoJobs},
		{"no jobs", newRequest(), requests.ErrNoJobs},
		{"over capacity", newRequest([4]int{1, 0, 1, 0}, [4]int{2, 0, 1, 0}, [4]int{3, 0, 1, 0}), requests.ErrTooManyJobs},
		{"zero burst", newRequest([4]int{1, 0, 0, 0}), requests.ErrInvalidBurstTime},
		{"negative arrival", newRequest([4]int{1, -1, 2, 0}), requests.ErrInvalidArrivalTime},
		{"duplicate pid", newRequest([4]int{1, 0, 2, 0}, [4]int{1, 1, 2, 0}), requests.ErrDuplicateProcessId},
		{"past time limit", newRequest([4]int{1, 45, 3, 0}, [4]int{2, 0, 3, 0}), requests.ErrTooMuchWork},
		{"huge burst", newRequest([4]int{1, 0, 1 << 40, 0}), requests.ErrTooMuchWork},
		{"clock overflow", newRequest([4]int{1, math.MaxInt - 1, 5, 0}), requests.ErrTooMuchWork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Schedule(FirstComeFirstServe, tt.request, opts)
			assert.ErrorIs(t, err, tt.want)

			_, err = ScheduleAll(tt.request, opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	algorithm, err := ParseAlgorithm(" sjf_p ")
	require.NoError(t, err)
	assert.Equal(t, ShortestRemainingTimeFirst, algorithm)

	for _, a := range Algorithms() {
		parsed, err := ParseAlgorithm(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
		assert.NotEqual(t, string(a), a.Title())
	}

	_, err = ParseAlgorithm("SJF")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestScheduleIsIdempotent(t *testing.T) {
	request := newRequest(
		[4]int{10, 0, 6, 3},
		[4]int{20, 1, 2, 1},
		[4]int{30, 1, 4, 1},
		[4]int{40, 9, 3, 0},
	)
	before := append([]requests.Job(nil), request.Jobs...)

	for _, algorithm := range Algorithms() {
		first := mustSchedule(t, algorithm, request, DefaultOptions())
		second := mustSchedule(t, algorithm, request, DefaultOptions())
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s differs between runs (-first +second):\n%s", algorithm, diff)
		}
	}
	if diff := cmp.Diff(before, request.Jobs); diff != "" {
		t.Errorf("request was mutated (-before +after):\n%s", diff)
	}
}

func TestScheduleAllMatchesIndividualRuns(t *testing.T) {
	results, err := ScheduleAll(sjfRequest, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, len(Algorithms()))

	for i, algorithm := range Algorithms() {
		want := mustSchedule(t, algorithm, sjfRequest, DefaultOptions())
		if diff := cmp.Diff(want, results[i]); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", algorithm, diff)
		}
	}
}

func TestScheduleAllValidatesEveryAlgorithm(t *testing.T) {
	opts := DefaultOptions()
	opts.TimeQuantum = 0

	_, err := ScheduleAll(sjfRequest, opts)
	assert.ErrorIs(t, err, ErrInvalidTimeQuantum)
}

func TestTraceLogsDispatches(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Trace = log.New(&buf, "", 0)

	mustSchedule(t, ShortestRemainingTimeFirst, newRequest([4]int{1, 0, 2, 0}, [4]int{2, 4, 1, 0}), opts)

	out := buf.String()
	assert.Contains(t, out, "pid: 1 dispatched at 0")
	assert.Contains(t, out, "cpu idle from 2 to 4")
	assert.Contains(t, out, "pid: 2 completed at 5")
}

func TestRandomWorkloadsHoldInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	opts := DefaultOptions()
	opts.LevelsTimeQuantum = []int{1, 3}

	for round := 0; round < 50; round++ {
		var rows [][4]int
		n := 1 + rng.Intn(8)
		for pid := 1; pid <= n; pid++ {
			rows = append(rows, [4]int{pid, rng.Intn(15), 1 + rng.Intn(9), rng.Intn(5)})
		}
		request := newRequest(rows...)
		opts.TimeQuantum = 1 + rng.Intn(4)

		for _, algorithm := range Algorithms() {
			mustSchedule(t, algorithm, request, opts)
		}
	}
}
