package schedulers

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"cpusim/internal/requests"
	"cpusim/internal/responses"
)

type Algorithm string

const (
	FirstComeFirstServe        Algorithm = "FCFS"
	ShortestJobFirst           Algorithm = "SJF_NP"
	ShortestRemainingTimeFirst Algorithm = "SJF_P"
	PriorityNonPreemptive      Algorithm = "PRIORITY_NP"
	PriorityPreemptive         Algorithm = "PRIORITY_P"
	RoundRobin                 Algorithm = "RR"
	MultilevelFeedbackQueue    Algorithm = "MLFQ"
)

var algorithms = []Algorithm{
	FirstComeFirstServe,
	ShortestJobFirst,
	ShortestRemainingTimeFirst,
	PriorityNonPreemptive,
	PriorityPreemptive,
	RoundRobin,
	MultilevelFeedbackQueue,
}

var titles = map[Algorithm]string{
	FirstComeFirstServe:        "First-come, first-serve",
	ShortestJobFirst:           "Shortest-job-first",
	ShortestRemainingTimeFirst: "Shortest-remaining-time-first",
	PriorityNonPreemptive:      "Priority",
	PriorityPreemptive:         "Preemptive priority",
	RoundRobin:                 "Round-robin",
	MultilevelFeedbackQueue:    "Multilevel feedback queue",
}

// Algorithms lists every supported algorithm in a stable order.
func Algorithms() []Algorithm {
	return append([]Algorithm(nil), algorithms...)
}

// ParseAlgorithm resolves an identifier such as "SJF_P", ignoring case.
func ParseAlgorithm(name string) (Algorithm, error) {
	algorithm := Algorithm(strings.ToUpper(strings.TrimSpace(name)))
	if !algorithm.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return algorithm, nil
}

func (a Algorithm) Valid() bool {
	_, ok := titles[a]
	return ok
}

func (a Algorithm) Title() string {
	if title, ok := titles[a]; ok {
		return title
	}
	return string(a)
}

const (
	DefaultTimeQuantum  = 2
	DefaultMaxProcesses = 100
	DefaultMaxTime      = 1000000
)

type Options struct {
	// TimeQuantum is the round-robin slice length.
	TimeQuantum int
	// LevelsTimeQuantum holds the slice length of each multilevel feedback
	// queue level. A final run-to-completion level is always added below them.
	LevelsTimeQuantum []int
	// MaxProcesses caps the number of jobs per request. Zero means no cap.
	MaxProcesses int
	// MaxTime caps the simulated clock. Zero means no cap beyond int overflow.
	MaxTime int
	// Trace receives per-dispatch log lines when set.
	Trace *log.Logger
}

func DefaultOptions() Options {
	return Options{
		TimeQuantum:       DefaultTimeQuantum,
		LevelsTimeQuantum: []int{2, 4},
		MaxProcesses:      DefaultMaxProcesses,
		MaxTime:           DefaultMaxTime,
	}
}

// Validate reports configuration errors for running algorithm with o.
func (o Options) Validate(algorithm Algorithm) error {
	if !algorithm.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	switch algorithm {
	case RoundRobin:
		if o.TimeQuantum <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidTimeQuantum, o.TimeQuantum)
		}
	case MultilevelFeedbackQueue:
		if len(o.LevelsTimeQuantum) == 0 {
			return fmt.Errorf("%w: no feedback queue levels configured", ErrInvalidTimeQuantum)
		}
		for i, quantum := range o.LevelsTimeQuantum {
			if quantum <= 0 {
				return fmt.Errorf("%w: level %d has %d", ErrInvalidTimeQuantum, i, quantum)
			}
		}
	}
	return nil
}

// Schedule validates the request and simulates it under algorithm. Every
// error is returned before the simulation starts.
func Schedule(algorithm Algorithm, request *requests.ScheduleRequests, opts Options) (responses.ScheduleResponse, error) {
	if err := opts.Validate(algorithm); err != nil {
		return responses.ScheduleResponse{}, err
	}
	if err := request.Validate(opts.MaxProcesses, opts.MaxTime); err != nil {
		return responses.ScheduleResponse{}, err
	}
	return run(algorithm, request.Jobs, opts), nil
}

// ScheduleAll simulates the request under every algorithm. The runs share
// nothing but the read-only jobs, so they execute concurrently.
func ScheduleAll(request *requests.ScheduleRequests, opts Options) ([]responses.ScheduleResponse, error) {
	for _, algorithm := range algorithms {
		if err := opts.Validate(algorithm); err != nil {
			return nil, err
		}
	}
	if err := request.Validate(opts.MaxProcesses, opts.MaxTime); err != nil {
		return nil, err
	}

	results := make([]responses.ScheduleResponse, len(algorithms))

	var wg sync.WaitGroup
	wg.Add(len(algorithms))
	for i, algorithm := range algorithms {
		go func(i int, algorithm Algorithm) {
			defer wg.Done()
			results[i] = run(algorithm, request.Jobs, opts)
		}(i, algorithm)
	}
	wg.Wait()

	return results, nil
}

func run(algorithm Algorithm, jobs []requests.Job, opts Options) responses.ScheduleResponse {
	s := newSimulation(jobs, opts.Trace)

	switch algorithm {
	case FirstComeFirstServe:
		scheduleFirstComeFirstServe(s)
	case ShortestJobFirst:
		scheduleShortestJobFirst(s)
	case ShortestRemainingTimeFirst:
		scheduleShortestRemainingTimeFirst(s)
	case PriorityNonPreemptive:
		schedulePriority(s)
	case PriorityPreemptive:
		schedulePreemptivePriority(s)
	case RoundRobin:
		scheduleRoundRobin(s, opts.TimeQuantum)
	case MultilevelFeedbackQueue:
		scheduleMultilevelFeedbackQueue(s, opts.LevelsTimeQuantum)
	}

	response := generateResponse(algorithm, s)
	log.Printf("%s finished: %d processes, %d gantt entries, total time %d", algorithm, len(jobs), len(response.Gantt), response.TotalTime)
	return response
}
