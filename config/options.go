package config

import (
	"log"
	"os"

	"cpusim/internal/schedulers"
)

// SchedulerOptions converts the configuration into simulation options.
func (c *SchedulerConfig) SchedulerOptions() schedulers.Options {
	opts := schedulers.Options{
		TimeQuantum:       c.RoundRobinTimeQuantum,
		LevelsTimeQuantum: append([]int(nil), c.MultilevelFeedbackQueueLevelsTimeQuantum...),
		MaxProcesses:      c.MaxProcesses,
		MaxTime:           c.MaxTime,
	}
	if c.Trace {
		opts.Trace = log.New(os.Stderr, "trace: ", log.LstdFlags)
	}
	return opts
}
