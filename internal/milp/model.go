package milp

import (
	"github.com/udpschedule/scheduler-core/internal/domain"
)

// Weights are the objective coefficients from spec.md §4.3 "Objective
// (maximize)": 10·scheduled sections + 1·satisfied preferences −
// 1000·missed preferences − 1·capacity overflow.
type Weights struct {
	Schedule   float64
	Preference float64
	Miss       float64
	CapOver    float64
}

// DefaultWeights returns the weights named in the spec.
func DefaultWeights() Weights {
	return Weights{Schedule: 10, Preference: 1, Miss: 1000, CapOver: 1}
}

// Model is the MILP encoding of one scheduling pass, built against the
// Solver capability interface so the concrete backend is swappable (see
// internal/milpsolver/glpk). It mirrors the greedy package's input shape
// (domain.Catalog) so both constructors are interchangeable at the driver
// boundary.
type Model struct {
	solver       Solver
	catalog      domain.Catalog
	restrictions domain.ResolvedRestrictions

	sections map[domain.SectionID]domain.Section
	teachers map[domain.TeacherID]domain.Teacher
	prefs    map[domain.StudentID]domain.StudentPreference

	periodsBySection map[domain.SectionID][]domain.PeriodID

	x       map[sectionPeriodKey]VarRef
	y       map[studentSectionKey]VarRef
	z       map[studentSectionPeriodKey]VarRef
	miss    map[studentCourseKey]VarRef
	capOver map[domain.SectionID]VarRef
}

// Build constructs the full MILP for catalog: variables, hard constraints,
// soft-constraint linearizations, and the objective. It does not solve;
// call Solve afterward (optionally preceded by WarmStart).
func Build(solver Solver, catalog domain.Catalog, weights Weights) (*Model, error) {
	restrictions, err := catalog.Restrictions.Resolve(catalog.Periods)
	if err != nil {
		return nil, err
	}

	m := &Model{
		solver:           solver,
		catalog:          catalog,
		restrictions:     restrictions,
		sections:         make(map[domain.SectionID]domain.Section, len(catalog.Sections)),
		teachers:         make(map[domain.TeacherID]domain.Teacher, len(catalog.Teachers)),
		prefs:            make(map[domain.StudentID]domain.StudentPreference, len(catalog.Preferences)),
		periodsBySection: make(map[domain.SectionID][]domain.PeriodID, len(catalog.Sections)),
		x:                make(map[sectionPeriodKey]VarRef),
		y:                make(map[studentSectionKey]VarRef),
		z:                make(map[studentSectionPeriodKey]VarRef),
		miss:             make(map[studentCourseKey]VarRef),
		capOver:          make(map[domain.SectionID]VarRef),
	}
	for _, s := range catalog.Sections {
		m.sections[s.ID] = s
	}
	for _, t := range catalog.Teachers {
		m.teachers[t.ID] = t
	}
	for _, p := range catalog.Preferences {
		m.prefs[p.StudentID] = p
	}

	m.createVariables()
	if err := m.addHardConstraints(); err != nil {
		return nil, err
	}
	if err := m.addSoftConstraints(); err != nil {
		return nil, err
	}
	m.setObjective(weights)

	return m, nil
}
