// Package driver runs the fixed-point iteration spec.md §4.6 describes:
// catalog → greedy → warm-started MILP → Schedule → utilization →
// (oracle → apply_actions)* → repeat, until the underutilized set is
// empty, a round applies no structural change, or max_iterations is hit.
// Grounded on the teacher's cmd/api/main.go iterate-until-clean loop (the
// room-assignment/re-coloring retry loop), generalized from a fixed
// main-function script into a library-callable Driver.
package driver

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/udpschedule/scheduler-core/internal/actions"
	"github.com/udpschedule/scheduler-core/internal/analyzer"
	"github.com/udpschedule/scheduler-core/internal/config"
	"github.com/udpschedule/scheduler-core/internal/domain"
	"github.com/udpschedule/scheduler-core/internal/greedy"
	"github.com/udpschedule/scheduler-core/internal/metrics"
	"github.com/udpschedule/scheduler-core/internal/milp"
	"github.com/udpschedule/scheduler-core/internal/oracle"
)

// SolverFactory builds a fresh milp.Solver for one iteration's model. A
// backend that also implements io.Closer-like cleanup (e.g. releasing a
// GLPK problem) is closed after extraction via an internal type check, so
// the driver never imports the concrete backend package.
type SolverFactory func() milp.Solver

// Proposer is the subset of *oracle.Client the driver depends on, so tests
// can substitute a fake oracle without standing up an HTTP server.
type Proposer interface {
	Propose(ctx context.Context, reqs []oracle.Request) ([]oracle.Proposal, error)
}

// IterationResult snapshots one pass of the loop for reporting/persistence.
type IterationResult struct {
	Iteration     int
	Catalog       domain.Catalog
	Schedule      *domain.Schedule
	Stats         []analyzer.SectionUtilization
	Underutil     []analyzer.SectionUtilization
	Outcomes      []actions.Outcome
	UsedFallback  bool
	FallbackWhy   string
	GreedySeconds float64
	MILPSeconds   float64
	OracleSeconds float64
}

// Result is the full output of a Run.
type Result struct {
	Iterations    []IterationResult
	FinalSchedule *domain.Schedule
	FinalCatalog  domain.Catalog
	FinalStats    []analyzer.SectionUtilization
}

// Metrics aggregates a Result into the scalar fields spec.md §7 mandates for
// metrics.json.
type Metrics struct {
	Iterations         int
	GreedySeconds      float64
	MILPSeconds        float64
	OracleSeconds      float64
	InitialUtilization float64
	FinalUtilization   float64
	SectionsAdjusted   int
	Fallbacks          int
}

// Summarize computes r's metrics.json fields. Initial/final utilization are
// the mean ratio across the first and last iteration's analyzed sections.
func (r *Result) Summarize() Metrics {
	m := Metrics{Iterations: len(r.Iterations)}
	for _, it := range r.Iterations {
		m.GreedySeconds += it.GreedySeconds
		m.MILPSeconds += it.MILPSeconds
		m.OracleSeconds += it.OracleSeconds
		if it.UsedFallback {
			m.Fallbacks++
		}
		for _, o := range it.Outcomes {
			if o.Applied {
				m.SectionsAdjusted++
			}
		}
	}
	if len(r.Iterations) > 0 {
		m.InitialUtilization = meanRatio(r.Iterations[0].Stats)
		m.FinalUtilization = meanRatio(r.Iterations[len(r.Iterations)-1].Stats)
	}
	return m
}

func meanRatio(stats []analyzer.SectionUtilization) float64 {
	if len(stats) == 0 {
		return 0
	}
	var sum float64
	for _, s := range stats {
		sum += s.Ratio
	}
	return sum / float64(len(stats))
}

// Driver owns one run's collaborators.
type Driver struct {
	cfg           config.Config
	solverFactory SolverFactory
	oracleClient  Proposer
	recorder      *metrics.Recorder
	log           zerolog.Logger
}

// New builds a Driver. solverFactory and oracleClient may be nil: a nil
// solverFactory forces the "greedy" algorithm regardless of
// cfg.Algorithm; a nil oracleClient makes every iteration propose zero
// actions, terminating after the first underutilized set is observed.
func New(cfg config.Config, solverFactory SolverFactory, oracleClient Proposer, recorder *metrics.Recorder, log zerolog.Logger) *Driver {
	return &Driver{cfg: cfg, solverFactory: solverFactory, oracleClient: oracleClient, recorder: recorder, log: log}
}

// Run executes the loop starting from initial, returning every
// iteration's snapshot plus the final schedule/catalog/stats.
func (d *Driver) Run(ctx context.Context, initial domain.Catalog) (*Result, error) {
	catalog := initial
	var iterations []IterationResult

	maxIterations := d.cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 1
	}

	for i := 0; i < maxIterations; i++ {
		result, err := d.runOneIteration(ctx, i, catalog)
		if err != nil {
			return nil, err
		}
		iterations = append(iterations, *result)
		d.recorder.IterationCompleted()

		if len(result.Underutil) == 0 {
			break
		}

		oracleStart := time.Now()
		proposals := d.proposeActions(ctx, result.Underutil)
		result.OracleSeconds = time.Since(oracleStart).Seconds()

		applier := actions.NewApplier(catalog)
		outcomes, nextCatalog := applier.Apply(actionsFor(proposals), d.log)

		result.Outcomes = outcomes
		iterations[len(iterations)-1] = *result

		changed := false
		for _, o := range outcomes {
			if o.Applied {
				changed = true
				d.recorder.ActionApplied(string(o.Action.Type))
			} else {
				d.recorder.ActionRefused(string(o.Action.Type))
			}
		}
		if !changed {
			d.log.Info().Msg("driver: no structural change applied this round, stopping")
			break
		}
		catalog = nextCatalog
	}

	last := iterations[len(iterations)-1]
	for _, s := range last.Stats {
		d.recorder.FinalUtilization(s.Ratio)
	}

	return &Result{
		Iterations:    iterations,
		FinalSchedule: last.Schedule,
		FinalCatalog:  last.Catalog,
		FinalStats:    last.Stats,
	}, nil
}

func (d *Driver) runOneIteration(ctx context.Context, i int, catalog domain.Catalog) (*IterationResult, error) {
	start := time.Now()
	greedyResult, err := greedy.Construct(catalog, d.log)
	if err != nil {
		return nil, err
	}
	greedySeconds := time.Since(start).Seconds()
	d.recorder.StageDuration("greedy", greedySeconds)

	schedule := greedyResult.Schedule
	usedFallback := false
	fallbackWhy := ""
	milpSeconds := 0.0

	// Per spec.md §6, "milp" and "both" both attempt the MILP pass (warm
	// started from the greedy schedule), falling back to the greedy result
	// on build/solve error or a non-extractable status; "greedy" alone
	// skips the MILP pass entirely.
	if d.cfg.Algorithm != "greedy" && d.solverFactory != nil {
		milpStart := time.Now()
		extracted, fallback, why := d.solveWithMILP(ctx, catalog, schedule)
		milpSeconds = time.Since(milpStart).Seconds()
		d.recorder.StageDuration("milp", milpSeconds)
		if fallback {
			usedFallback = true
			fallbackWhy = why
			d.recorder.Fallback("milp", why)
			d.log.Warn().Str("reason", why).Msg("driver: MILP pass fell back to the greedy schedule")
		} else {
			schedule = extracted
		}
	}

	stats := analyzer.Analyze(schedule, d.cfg.Threshold)
	underutil := analyzer.Underutilized(stats)

	return &IterationResult{
		Iteration:     i,
		Catalog:       catalog,
		Schedule:      schedule,
		Stats:         stats,
		Underutil:     underutil,
		UsedFallback:  usedFallback,
		FallbackWhy:   fallbackWhy,
		GreedySeconds: greedySeconds,
		MILPSeconds:   milpSeconds,
	}, nil
}

// solveWithMILP builds and solves a MILP warm-started from schedule. It
// falls back (returns fallback=true) on a build error, a solve error, or a
// non-extractable status — never on a merely suboptimal one, since
// StatusSuboptimal/StatusTimeLimitWithIncumbent/StatusInterruptedWithIncumbent
// are all extractable per milp.Status.Extractable().
func (d *Driver) solveWithMILP(ctx context.Context, catalog domain.Catalog, greedySchedule *domain.Schedule) (*domain.Schedule, bool, string) {
	solver := d.solverFactory()
	if closer, ok := solver.(interface{ Close() }); ok {
		defer closer.Close()
	}

	model, err := milp.Build(solver, catalog, milp.DefaultWeights())
	if err != nil {
		return nil, true, "model build error: " + err.Error()
	}
	model.WarmStart(greedySchedule)

	status, err := model.Solve(ctx, milp.Params{
		TimeLimitSeconds: d.cfg.Solver.TimeLimitSeconds,
		MIPGap:           d.cfg.Solver.MIPGap,
	})
	if err != nil {
		return nil, true, "solve error: " + err.Error()
	}
	if !status.Extractable() {
		return nil, true, "non-extractable status"
	}

	return model.Extract(), false, ""
}

// proposeActions asks the oracle for proposals, treating any error
// (network, status, decode) as "propose nothing" per spec.md §4.6.
func (d *Driver) proposeActions(ctx context.Context, underutil []analyzer.SectionUtilization) []oracle.Proposal {
	if d.oracleClient == nil || len(underutil) == 0 {
		return nil
	}
	proposals, err := d.oracleClient.Propose(ctx, requestsFor(underutil))
	if err != nil {
		d.recorder.Fallback("oracle", err.Error())
		return nil
	}
	return proposals
}
