// Command schedsim simulates CPU scheduling algorithms over processes read
// from stdin.
//
//	schedsim [flags] <algorithm|ALL> <num_processes> [quantum]
//
// Each process is a "pid arrival burst priority" record (or a CSV row with
// -input csv). The result is printed as JSON or as tables.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"cpusim/config"
	"cpusim/internal/report"
	"cpusim/internal/requests"
	"cpusim/internal/responses"
	"cpusim/internal/schedulers"
)

var ErrInvalidArgs = errors.New("invalid args")

const usage = "usage: schedsim [flags] <algorithm|ALL> <num_processes> [quantum]"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalln(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flags := flag.NewFlagSet("schedsim", flag.ContinueOnError)
	format := flags.String("format", "json", "output format: json or table")
	input := flags.String("input", "text", "input format: text or csv")
	configPath := flags.String("config", "", "configuration file (default ./config.yaml if present)")
	trace := flags.Bool("trace", false, "log every dispatch to stderr")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}

	positional := flags.Args()
	if len(positional) < 2 || len(positional) > 3 {
		return fmt.Errorf("%w: %s", ErrInvalidArgs, usage)
	}
	if *format != "json" && *format != "table" {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidArgs, *format)
	}
	if *input != "text" && *input != "csv" {
		return fmt.Errorf("%w: unknown input format %q", ErrInvalidArgs, *input)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	opts := cfg.SchedulerOptions()
	if *trace && opts.Trace == nil {
		opts.Trace = log.New(os.Stderr, "trace: ", log.LstdFlags)
	}

	// Everything about the invocation is checked before stdin is touched.
	selected := schedulers.Algorithms()
	all := strings.EqualFold(positional[0], "ALL")
	if !all {
		algorithm, err := schedulers.ParseAlgorithm(positional[0])
		if err != nil {
			return err
		}
		selected = []schedulers.Algorithm{algorithm}
	}

	n, err := strconv.Atoi(positional[1])
	if err != nil {
		return fmt.Errorf("%w: process count %q is not an integer", ErrInvalidArgs, positional[1])
	}
	if n < 1 {
		return fmt.Errorf("%w: got %d", requests.ErrNoJobs, n)
	}
	if opts.MaxProcesses > 0 && n > opts.MaxProcesses {
		return fmt.Errorf("%w: got %d, limit is %d", requests.ErrTooManyJobs, n, opts.MaxProcesses)
	}

	if len(positional) == 3 {
		quantum, err := strconv.Atoi(positional[2])
		if err != nil {
			return fmt.Errorf("%w: %q", schedulers.ErrInvalidTimeQuantum, positional[2])
		}
		opts.TimeQuantum = quantum
	}
	for _, algorithm := range selected {
		if err := opts.Validate(algorithm); err != nil {
			return err
		}
	}

	jobs, err := loadJobs(*input, stdin, n)
	if err != nil {
		return err
	}
	request := &requests.ScheduleRequests{Jobs: jobs}

	var results []responses.ScheduleResponse
	if all {
		results, err = schedulers.ScheduleAll(request, opts)
	} else {
		var result responses.ScheduleResponse
		result, err = schedulers.Schedule(selected[0], request, opts)
		results = append(results, result)
	}
	if err != nil {
		return err
	}

	if *format == "table" {
		for i, result := range results {
			if i > 0 {
				_, _ = fmt.Fprintln(stdout)
			}
			report.WriteTable(stdout, schedulers.Algorithm(result.Algorithm).Title(), result, cfg.OutputPrecision)
		}
		return nil
	}

	if !all {
		return report.WriteJSON(stdout, report.NewJSONView(results[0], cfg.OutputPrecision))
	}
	views := make(map[string]report.JSONView, len(results))
	for _, result := range results {
		views[result.Algorithm] = report.NewJSONView(result, cfg.OutputPrecision)
	}
	return report.WriteJSON(stdout, views)
}

func loadJobs(input string, r io.Reader, n int) ([]requests.Job, error) {
	if input == "text" {
		return requests.LoadText(r, n)
	}

	jobs, err := requests.LoadCSV(r)
	if err != nil {
		return nil, err
	}
	if len(jobs) != n {
		return nil, fmt.Errorf("%w: expected %d processes, read %d", requests.ErrProcessCountMismatch, n, len(jobs))
	}
	return jobs, nil
}
