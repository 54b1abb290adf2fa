// Command scheduler runs the master-scheduling iteration loop end to end:
// read the input catalog, construct and refine a schedule, and write the
// per-iteration and final reports. The command surface is a single cobra
// command with flags bound onto the same viper instance internal/config
// reads from, so a flag always wins over an environment variable, which
// always wins over scheduler.yaml, which always wins over the compiled-in
// defaults — the layering k8s's NewSchedulerCommand (cmd/kube-scheduler)
// also uses: a *cobra.Command built once in a constructor, an Options-style
// config object filled from its flags, a run function that does the work
// and returns an error rather than calling os.Exit directly.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/udpschedule/scheduler-core/internal/config"
	"github.com/udpschedule/scheduler-core/internal/driver"
	"github.com/udpschedule/scheduler-core/internal/ioadapter"
	"github.com/udpschedule/scheduler-core/internal/metrics"
	"github.com/udpschedule/scheduler-core/internal/milp"
	"github.com/udpschedule/scheduler-core/internal/milpsolver/glpk"
	"github.com/udpschedule/scheduler-core/internal/oracle"
)

func main() {
	if err := newSchedulerCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSchedulerCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Build and iteratively refine a master schedule",
		Long: `scheduler reads a school's periods, teachers, sections, students, and
preferences from --input, constructs a schedule, and repeatedly checks it
for underutilized sections, consulting an external action-proposal
service and applying any structural change it approves, until the
schedule is clean, no further change is possible, or --max-iterations is
reached. Reports are written under --output after every iteration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(context.Background(), v)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "data/input", "directory containing the input CSV files")
	flags.String("output", "output", "directory to write iteration and final reports to")
	flags.Float64("threshold", 0, "utilization ratio below which a section is flagged underutilized (0 = use config default)")
	flags.Int("max-iterations", 0, "maximum refinement iterations (0 = use config default)")
	flags.String("algorithm", "", "scheduling algorithm: greedy, milp, or both (empty = use config default)")
	flags.Float64("solver-time-limit", 0, "MILP solver time limit in seconds (0 = use config default)")
	flags.Float64("solver-mip-gap", 0, "MILP solver relative MIP gap tolerance (0 = use config default)")
	flags.String("oracle-endpoint", "", "action-proposal service URL (empty = no proposals requested)")
	flags.Duration("oracle-timeout", 0, "action-proposal service request timeout (0 = use config default)")
	flags.Int("metrics-port", 0, "port to serve Prometheus metrics on (0 = disabled)")
	flags.String("log-level", "", "zerolog level: debug, info, warn, error (empty = use config default)")

	bindFlag(v, flags, "input_dir", "input")
	bindFlag(v, flags, "output_dir", "output")
	bindFlag(v, flags, "threshold", "threshold")
	bindFlag(v, flags, "max_iterations", "max-iterations")
	bindFlag(v, flags, "algorithm", "algorithm")
	bindFlag(v, flags, "solver.time_limit_seconds", "solver-time-limit")
	bindFlag(v, flags, "solver.mip_gap", "solver-mip-gap")
	bindFlag(v, flags, "oracle.endpoint", "oracle-endpoint")
	bindFlag(v, flags, "oracle.timeout", "oracle-timeout")
	bindFlag(v, flags, "metrics_port", "metrics-port")
	bindFlag(v, flags, "log.level", "log-level")

	return cmd
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, flagName string) {
	_ = v.BindPFlag(key, flags.Lookup(flagName))
}

func run(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("scheduler: loading config: %w", err)
	}

	log := newLogger(cfg.Log)

	catalog, err := ioadapter.ReadCatalog(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("scheduler: reading input catalog: %w", err)
	}
	log.Info().
		Int("sections", len(catalog.Sections)).
		Int("students", len(catalog.Students)).
		Int("teachers", len(catalog.Teachers)).
		Msg("scheduler: catalog loaded")

	var recorder *metrics.Recorder
	if cfg.MetricsPort > 0 {
		recorder = metrics.New()
		go serveMetrics(cfg.MetricsPort, recorder, log)
	}

	var proposer driver.Proposer
	if cfg.Oracle.Endpoint != "" {
		proposer = oracle.NewClient(cfg.Oracle.Endpoint, cfg.Oracle.Timeout, log)
	}

	var solverFactory driver.SolverFactory
	if cfg.Algorithm == "milp" || cfg.Algorithm == "both" {
		solverFactory = func() milp.Solver { return glpk.New() }
	}

	d := driver.New(*cfg, solverFactory, proposer, recorder, log)

	result, err := d.Run(ctx, catalog)
	if err != nil {
		return fmt.Errorf("scheduler: run failed: %w", err)
	}

	for _, it := range result.Iterations {
		if err := driver.PersistIteration(cfg.OutputDir, it); err != nil {
			return fmt.Errorf("scheduler: persisting iteration %d: %w", it.Iteration, err)
		}
	}
	if err := driver.PersistFinal(cfg.OutputDir, result); err != nil {
		return fmt.Errorf("scheduler: persisting final report: %w", err)
	}

	log.Info().
		Int("iterations", len(result.Iterations)).
		Int("sections_scheduled", result.FinalSchedule.ScheduledSectionCount()).
		Msg("scheduler: run complete")

	return nil
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func serveMetrics(port int, recorder *metrics.Recorder, log zerolog.Logger) {
	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Msg("scheduler: serving metrics")
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("scheduler: metrics server stopped")
	}
}
