package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type SchedulerConfig struct {
	Port                                     int
	RoundRobinTimeQuantum                    int
	MultilevelFeedbackQueueLevelsTimeQuantum []int
	MaxProcesses                             int
	MaxTime                                  int
	OutputPrecision                          int
	Trace                                    bool
	RateLimit                                RateLimitConfig
}

var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes environment overrides, e.g.
// SCHEDSIM_SCHEDULER_ROUND_ROBIN_TIME_QUANTUM=4.
const EnvPrefix = "SCHEDSIM"

var once sync.Once
var config *SchedulerConfig

// GetSchedulerConfig loads config.yaml from the working directory once and
// exits the process if it is invalid.
func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		cfg, err := Load("")
		if err != nil {
			log.Fatalln(err)
		}
		config = cfg
	})

	return config
}

// Load reads the configuration file at path. With an empty path it looks for
// an optional config.yaml in the working directory. Environment variables
// override both the file and the defaults.
func Load(path string) (*SchedulerConfig, error) {
	v := viper.New()
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", 2)
	v.SetDefault("scheduler.multilevel_feedback_queue.levels_time_quantum", []int{2, 4})
	v.SetDefault("scheduler.max_processes", 100)
	v.SetDefault("scheduler.max_time", 1000000)
	v.SetDefault("output.precision", 2)
	v.SetDefault("log.trace", false)
	v.SetDefault("api.rate_limit.requests_per_second", 0)
	v.SetDefault("api.rate_limit.burst", 10)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &SchedulerConfig{}
	cfg.Port = v.GetInt("port")
	cfg.RoundRobinTimeQuantum = v.GetInt("scheduler.round_robin.time_quantum")
	cfg.MultilevelFeedbackQueueLevelsTimeQuantum = v.GetIntSlice("scheduler.multilevel_feedback_queue.levels_time_quantum")
	cfg.MaxProcesses = v.GetInt("scheduler.max_processes")
	cfg.MaxTime = v.GetInt("scheduler.max_time")
	cfg.OutputPrecision = v.GetInt("output.precision")
	cfg.Trace = v.GetBool("log.trace")
	cfg.RateLimit.RequestsPerSecond = v.GetFloat64("api.rate_limit.requests_per_second")
	cfg.RateLimit.Burst = v.GetInt("api.rate_limit.burst")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SchedulerConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}
	if c.RoundRobinTimeQuantum <= 0 {
		return fmt.Errorf("%w: round robin time quantum %d", ErrInvalidConfig, c.RoundRobinTimeQuantum)
	}
	if len(c.MultilevelFeedbackQueueLevelsTimeQuantum) == 0 {
		return fmt.Errorf("%w: no multilevel feedback queue levels", ErrInvalidConfig)
	}
	for _, quantum := range c.MultilevelFeedbackQueueLevelsTimeQuantum {
		if quantum <= 0 {
			return fmt.Errorf("%w: multilevel feedback queue time quantum %d", ErrInvalidConfig, quantum)
		}
	}
	if c.MaxProcesses < 0 {
		return fmt.Errorf("%w: max processes %d", ErrInvalidConfig, c.MaxProcesses)
	}
	if c.MaxTime < 0 {
		return fmt.Errorf("%w: max time %d", ErrInvalidConfig, c.MaxTime)
	}
	if c.OutputPrecision < 0 {
		return fmt.Errorf("%w: output precision %d", ErrInvalidConfig, c.OutputPrecision)
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: rate limit burst %d", ErrInvalidConfig, c.RateLimit.Burst)
	}
	return nil
}
