// Package glpk implements the internal/milp.Solver capability interface
// against GLPK's MIP solver via github.com/lukpank/go-glpk/glpk — the one
// dependency in this module with no counterpart anywhere in the example
// pack (see DESIGN.md). Every GLPK-specific detail (1-based column/row
// indices, the separate Simplex-relaxation-then-Intopt solve sequence,
// GLPK's own status codes) is contained to this package; internal/milp
// only ever sees the backend-neutral milp.Solver interface.
package glpk

import (
	"context"
	"fmt"

	"github.com/lukpank/go-glpk/glpk"

	"github.com/udpschedule/scheduler-core/internal/milp"
)

// Solver adapts a glpk.Prob to milp.Solver. It is not safe for concurrent
// use — callers build and solve one problem at a time per driver iteration.
type Solver struct {
	prob *glpk.Prob

	colOf map[milp.VarRef]int
	names map[milp.VarRef]string
	next  milp.VarRef

	rowSeq int

	timeLimitSeconds float64
	mipGap           float64
}

// New creates an empty maximization problem. Call Add*/SetObjective before
// Solve.
func New() *Solver {
	prob := glpk.New()
	prob.SetObjDir(glpk.MAX)
	return &Solver{
		prob:  prob,
		colOf: make(map[milp.VarRef]int),
		names: make(map[milp.VarRef]string),
	}
}

// Close releases the underlying GLPK problem. Call once the caller is done
// reading values out of a solved Solver.
func (s *Solver) Close() {
	s.prob.Delete()
}

func (s *Solver) allocVar(name string, kind glpk.Kind, lb, ub float64, bnds glpk.Bnds) milp.VarRef {
	col := s.prob.AddCols(1)
	s.prob.SetColName(col, name)
	s.prob.SetColKind(col, kind)
	s.prob.SetColBnds(col, bnds, lb, ub)

	ref := s.next
	s.next++
	s.colOf[ref] = col
	s.names[ref] = name
	return ref
}

// AddBinary adds a 0/1 variable.
func (s *Solver) AddBinary(name string) milp.VarRef {
	return s.allocVar(name, glpk.BV, 0, 1, glpk.DB)
}

// AddInt adds a bounded integer variable.
func (s *Solver) AddInt(name string, lowerBound, upperBound float64) milp.VarRef {
	return s.allocVar(name, glpk.IV, lowerBound, upperBound, glpk.DB)
}

func opToBnds(op milp.ConstraintOp) glpk.Bnds {
	switch op {
	case milp.LE:
		return glpk.UP
	case milp.GE:
		return glpk.LO
	default:
		return glpk.FX
	}
}

// AddLinearConstraint adds a row sum(terms[v]*v) op rhs.
func (s *Solver) AddLinearConstraint(name string, terms map[milp.VarRef]float64, op milp.ConstraintOp, rhs float64) error {
	row := s.prob.AddRows(1)
	s.rowSeq++
	s.prob.SetRowName(row, name)
	s.prob.SetRowBnds(row, opToBnds(op), rhs, rhs)

	ind := make([]int32, 0, len(terms)+1)
	val := make([]float64, 0, len(terms)+1)
	ind = append(ind, 0)
	val = append(val, 0)
	for ref, coef := range terms {
		col, ok := s.colOf[ref]
		if !ok {
			return fmt.Errorf("glpk: constraint %q references unknown variable ref %d", name, ref)
		}
		ind = append(ind, int32(col))
		val = append(val, coef)
	}
	s.prob.SetMatRow(row, ind, val)
	return nil
}

// SetObjective overwrites every objective coefficient; any variable not in
// terms keeps coefficient zero.
func (s *Solver) SetObjective(terms map[milp.VarRef]float64, sense milp.ObjectiveSense) {
	if sense == milp.Maximize {
		s.prob.SetObjDir(glpk.MAX)
	} else {
		s.prob.SetObjDir(glpk.MIN)
	}
	for ref, coef := range terms {
		col, ok := s.colOf[ref]
		if !ok {
			continue
		}
		s.prob.SetObjCoef(col, coef)
	}
}

// SetStart is advisory only — GLPK's branch-and-bound does not take an MIP
// start, so this is a documented no-op rather than an error.
func (s *Solver) SetStart(v milp.VarRef, value float64) {}

func (s *Solver) SetTimeLimit(seconds float64) { s.timeLimitSeconds = seconds }
func (s *Solver) SetMIPGap(gap float64)        { s.mipGap = gap }

// Solve relaxes, then branches-and-bounds, honoring the context deadline by
// translating it into GLPK's own time-limit parameter before the call —
// GLPK's Intopt has no cancellation hook mid-solve.
func (s *Solver) Solve(ctx context.Context) (milp.Status, error) {
	limit := s.timeLimitSeconds
	if deadline, ok := ctx.Deadline(); ok {
		remaining := remainingSeconds(deadline)
		if remaining < limit || limit == 0 {
			limit = remaining
		}
	}

	smcp := glpk.NewSmcp()
	if err := s.prob.Simplex(smcp); err != nil {
		return milp.StatusError, fmt.Errorf("glpk: relaxation failed: %w", err)
	}

	iocp := glpk.NewIocp()
	iocp.SetPresolve(true)
	iocp.SetTmLim(int(limit * 1000))
	iocp.SetMipGap(s.mipGap)
	if err := s.prob.Intopt(iocp); err != nil {
		return milp.StatusError, fmt.Errorf("glpk: mip solve failed: %w", err)
	}

	return translateStatus(s.prob.MipStatus()), nil
}

// GetValue reads back a variable's value from the last MIP solve.
func (s *Solver) GetValue(v milp.VarRef) float64 {
	col, ok := s.colOf[v]
	if !ok {
		return 0
	}
	return s.prob.MipColVal(col)
}

func translateStatus(status glpk.MIPStatus) milp.Status {
	switch status {
	case glpk.OPT:
		return milp.StatusOptimal
	case glpk.FEAS:
		return milp.StatusTimeLimitWithIncumbent
	case glpk.NOFEAS, glpk.UNDEF:
		return milp.StatusInfeasible
	default:
		return milp.StatusError
	}
}
