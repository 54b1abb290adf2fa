package milp

import (
	"context"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// Params are the solver tuning knobs from spec.md §4.3 "Solver parameters".
type Params struct {
	TimeLimitSeconds float64
	MIPGap           float64
}

// DefaultParams returns the standalone-run defaults named in SPEC_FULL.md.
// The iteration driver does not call it: it builds Params from
// config.Solver, whose defaults are the same values.
func DefaultParams() Params {
	return Params{TimeLimitSeconds: 900, MIPGap: 0.10}
}

// Solve applies params and invokes the backend. The returned Status must be
// checked with Extractable() before calling Extract.
func (m *Model) Solve(ctx context.Context, params Params) (Status, error) {
	m.solver.SetTimeLimit(params.TimeLimitSeconds)
	m.solver.SetMIPGap(params.MIPGap)
	return m.solver.Solve(ctx)
}

// Extract reads x[s,p]>0.5 and y[u,s]>0.5 back off the solver into a
// domain.Schedule (spec.md §4.3 "Solution extraction"). Callers must only
// invoke this after a Status for which Extractable() is true; on any other
// status the driver falls back to the greedy Schedule instead of calling
// Extract at all.
func (m *Model) Extract() *domain.Schedule {
	schedule := domain.NewSchedule(m.catalog.Sections)

	for key, x := range m.x {
		if m.solver.GetValue(x) > 0.5 {
			schedule.SetSectionPeriod(key.Section, key.Period)
		}
	}
	for key, y := range m.y {
		if m.solver.GetValue(y) > 0.5 {
			schedule.AddAssignment(domain.Assignment{StudentID: key.Student, SectionID: key.Section})
		}
	}

	return schedule
}
