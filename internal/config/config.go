// Package config loads the scheduler's tunables from defaults, a
// scheduler.yaml file, environment variables, and (via cmd/scheduler) CLI
// flags, in that increasing order of precedence — the same viper-backed
// layering `noah-isme-sma-adp-api`'s pkg/config/config.go uses, adapted
// from a web service's DB/JWT/CORS knobs to this pipeline's input/output
// paths and solver tuning.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// Config is the full set of tunables the iteration driver and its
// collaborators need.
type Config struct {
	InputDir  string
	OutputDir string

	Threshold     float64
	MaxIterations int
	Algorithm     string // "greedy", "milp", or "both" (spec.md §6)

	Solver SolverConfig
	Oracle OracleConfig
	Log    LogConfig

	MetricsPort int
}

// SolverConfig tunes the MILP backend (spec.md §4.3 "Solver parameters").
type SolverConfig struct {
	TimeLimitSeconds float64
	MIPGap           float64
}

// OracleConfig points at the external action-proposal service.
type OracleConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// LogConfig controls zerolog's level and format.
type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads scheduler.yaml (if present) layered under defaults and
// environment variables (SCHEDULER_ prefixed, underscores for nesting).
// cmd/scheduler binds cobra flags on top of the returned *viper.Viper
// before calling Load, so flags win over everything else.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("scheduler")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("SCHEDULER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	algorithm := v.GetString("algorithm")
	switch algorithm {
	case "greedy", "milp", "both":
	default:
		return nil, fmt.Errorf("config: algorithm must be one of greedy, milp, both (got %q)", algorithm)
	}

	return &Config{
		InputDir:      v.GetString("input_dir"),
		OutputDir:     v.GetString("output_dir"),
		Threshold:     v.GetFloat64("threshold"),
		MaxIterations: v.GetInt("max_iterations"),
		Algorithm:     algorithm,
		Solver: SolverConfig{
			TimeLimitSeconds: v.GetFloat64("solver.time_limit_seconds"),
			MIPGap:           v.GetFloat64("solver.mip_gap"),
		},
		Oracle: OracleConfig{
			Endpoint: v.GetString("oracle.endpoint"),
			Timeout:  v.GetDuration("oracle.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		MetricsPort: v.GetInt("metrics_port"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", "data/input")
	v.SetDefault("output_dir", "output")
	v.SetDefault("threshold", domain.DefaultUnderutilizationThreshold)
	v.SetDefault("max_iterations", 10)
	v.SetDefault("algorithm", "milp")

	v.SetDefault("solver.time_limit_seconds", 900.0)
	v.SetDefault("solver.mip_gap", 0.10)

	v.SetDefault("oracle.endpoint", "")
	v.SetDefault("oracle.timeout", "30s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("metrics_port", 0)
}
