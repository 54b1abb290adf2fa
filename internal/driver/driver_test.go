package driver

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udpschedule/scheduler-core/internal/config"
	"github.com/udpschedule/scheduler-core/internal/domain"
	"github.com/udpschedule/scheduler-core/internal/milp"
	"github.com/udpschedule/scheduler-core/internal/oracle"
)

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func mustPeriod(id, name, start, end string, day int) domain.Period {
	p, err := domain.NewPeriod(domain.PeriodID(id), name, start, end, day)
	if err != nil {
		panic(err)
	}
	return p
}

// oneSectionCatalog builds a single section with plenty of spare capacity,
// so every iteration's utilization analysis reports it underutilized.
func oneSectionCatalog(capacity int) domain.Catalog {
	period := mustPeriod("P1", "R1", "08:00", "08:50", 1)
	teacherID := domain.TeacherID("T1")
	teacher, err := domain.NewTeacher(teacherID, "Science", 6, nil)
	if err != nil {
		panic(err)
	}
	section, err := domain.NewSection("S1", "BIO101", &teacherID, capacity, "Science", "Room 1")
	if err != nil {
		panic(err)
	}
	student, err := domain.NewStudent("U1", 9, false)
	if err != nil {
		panic(err)
	}
	pref, err := domain.NewStudentPreference("U1", []domain.CourseID{"BIO101"}, nil)
	if err != nil {
		panic(err)
	}

	return domain.Catalog{
		Periods:     []domain.Period{period},
		Teachers:    []domain.Teacher{teacher},
		Students:    []domain.Student{student},
		Sections:    []domain.Section{section},
		Preferences: []domain.StudentPreference{pref},
	}
}

type fakeProposer struct {
	proposals []oracle.Proposal
	err       error
	calls     int
}

func (f *fakeProposer) Propose(_ context.Context, _ []oracle.Request) ([]oracle.Proposal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.proposals, nil
}

func baseConfig() config.Config {
	return config.Config{
		Threshold:     domain.DefaultUnderutilizationThreshold,
		MaxIterations: 5,
		Algorithm:     "greedy",
	}
}

func TestRun_TerminatesWhenNoUnderutilizedSections(t *testing.T) {
	catalog := oneSectionCatalog(1) // enrollment 1 / capacity 1, fully utilized
	d := New(baseConfig(), nil, nil, nil, discardLogger())

	result, err := d.Run(context.Background(), catalog)
	require.NoError(t, err)

	assert.Len(t, result.Iterations, 1)
	assert.Empty(t, result.Iterations[0].Underutil)
}

func TestRun_TerminatesWhenOracleProposesNothing(t *testing.T) {
	catalog := oneSectionCatalog(10) // enrollment 1 / capacity 10, underutilized
	proposer := &fakeProposer{}
	d := New(baseConfig(), nil, proposer, nil, discardLogger())

	result, err := d.Run(context.Background(), catalog)
	require.NoError(t, err)

	assert.Len(t, result.Iterations, 1)
	assert.Equal(t, 1, proposer.calls)
	assert.NotEmpty(t, result.Iterations[0].Underutil)
}

func TestRun_TerminatesWhenNoActionApplies(t *testing.T) {
	catalog := oneSectionCatalog(10)
	proposer := &fakeProposer{proposals: []oracle.Proposal{
		{SectionID: "S1", Action: "remove", Reason: "underused"},
	}}
	d := New(baseConfig(), nil, proposer, nil, discardLogger())

	result, err := d.Run(context.Background(), catalog)
	require.NoError(t, err)

	// "remove" is refused: S1 is the only section of its course.
	assert.Len(t, result.Iterations, 1)
	require.Len(t, result.Iterations[0].Outcomes, 1)
	assert.False(t, result.Iterations[0].Outcomes[0].Applied)
}

func TestRun_StopsAtMaxIterationsWhenActionsKeepApplying(t *testing.T) {
	catalog := oneSectionCatalog(10)
	cfg := baseConfig()
	cfg.MaxIterations = 3
	proposer := &fakeProposer{proposals: []oracle.Proposal{
		{SectionID: "S1", Action: "add", Reason: "underused"},
	}}
	d := New(cfg, nil, proposer, nil, discardLogger())

	result, err := d.Run(context.Background(), catalog)
	require.NoError(t, err)

	// Each round adds another BIO101 section taught by T1, but with one
	// period only one of them can be scheduled and the lone student leaves
	// it underutilized, so the loop keeps going until max_iterations.
	assert.Equal(t, cfg.MaxIterations, len(result.Iterations))
}

// errSolver always fails to build, so solveWithMILP must fall back to the
// greedy schedule rather than returning an error from Run.
type errSolver struct{}

func (errSolver) AddBinary(name string) milp.VarRef              { return 0 }
func (errSolver) AddInt(name string, lo, hi float64) milp.VarRef { return 0 }
func (errSolver) SetObjective(map[milp.VarRef]float64, milp.ObjectiveSense) {}
func (errSolver) SetStart(milp.VarRef, float64)                             {}
func (errSolver) SetTimeLimit(float64)                                      {}
func (errSolver) SetMIPGap(float64)                                         {}
func (errSolver) GetValue(milp.VarRef) float64                              { return 0 }
func (errSolver) AddLinearConstraint(string, map[milp.VarRef]float64, milp.ConstraintOp, float64) error {
	return errors.New("fake backend refuses every constraint")
}
func (errSolver) Solve(context.Context) (milp.Status, error) { return milp.StatusError, nil }

func TestRun_FallsBackToGreedyOnMILPBuildError(t *testing.T) {
	catalog := oneSectionCatalog(1) // fully utilized so the loop stops after one pass
	cfg := baseConfig()
	cfg.Algorithm = "milp"
	d := New(cfg, func() milp.Solver { return errSolver{} }, nil, nil, discardLogger())

	result, err := d.Run(context.Background(), catalog)
	require.NoError(t, err)

	require.Len(t, result.Iterations, 1)
	assert.True(t, result.Iterations[0].UsedFallback)
	assert.NotNil(t, result.Iterations[0].Schedule)
}
