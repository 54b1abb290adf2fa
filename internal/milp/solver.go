// Package milp declaratively encodes the scheduling problem as a
// mixed-integer linear program: hard constraints, soft penalties,
// linearized product variables, and warm-start injection (spec.md §4.3).
// The MIP backend itself is hidden behind the Solver capability interface
// (spec.md §9) so it can be swapped without touching the model builder.
package milp

import "context"

// VarRef is an opaque handle to a variable created on a Solver.
type VarRef int

// ConstraintOp is the relational operator of a linear constraint.
type ConstraintOp int

const (
	LE ConstraintOp = iota
	GE
	EQ
)

// ObjectiveSense selects maximize or minimize.
type ObjectiveSense int

const (
	Maximize ObjectiveSense = iota
	Minimize
)

// Status classifies a Solve() outcome per spec.md §4.3 "Solution
// extraction": any of the first four is extractable, the last two are not.
type Status int

const (
	StatusOptimal Status = iota
	StatusTimeLimitWithIncumbent
	StatusSuboptimal
	StatusInterruptedWithIncumbent
	StatusInfeasible
	StatusError
)

// Extractable reports whether a solution can be read back from the solver
// after this status.
func (s Status) Extractable() bool {
	switch s {
	case StatusOptimal, StatusTimeLimitWithIncumbent, StatusSuboptimal, StatusInterruptedWithIncumbent:
		return true
	default:
		return false
	}
}

// Solver is the capability interface any MIP backend must provide: binary
// and integer variable creation, linear constraints, an objective, warm
// starts, a time limit, a gap tolerance, and value extraction. The model
// builder in this package is written entirely against this interface; see
// internal/milpsolver/glpk for the concrete GLPK-backed implementation.
type Solver interface {
	AddBinary(name string) VarRef
	AddInt(name string, lowerBound, upperBound float64) VarRef

	// AddLinearConstraint adds sum(terms[v]*v) op rhs.
	AddLinearConstraint(name string, terms map[VarRef]float64, op ConstraintOp, rhs float64) error

	SetObjective(terms map[VarRef]float64, sense ObjectiveSense)

	// SetStart sets a warm-start value for v. Implementations that cannot
	// honor a given start must not error — warm starts are advisory only.
	SetStart(v VarRef, value float64)

	SetTimeLimit(seconds float64)
	SetMIPGap(gap float64)

	Solve(ctx context.Context) (Status, error)
	GetValue(v VarRef) float64
}
