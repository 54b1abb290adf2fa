package milp

import (
	"fmt"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// addHardConstraints encodes the invariants that must never be violated
// (spec.md §4.3 "Hard constraints"): a section occupies at most one period,
// a teacher teaches at most one section per period, a student sits in at
// most one section per period, the z[u,s,p] linearization of y[u,s]·x[s,p],
// enrollment implies the section was actually scheduled, the SPED section
// cap, and zero tolerance for missing a required course.
func (m *Model) addHardConstraints() error {
	if err := m.constrainSectionSinglePeriod(); err != nil {
		return err
	}
	if err := m.constrainTeacherNonOverlap(); err != nil {
		return err
	}
	if err := m.constrainStudentNonOverlap(); err != nil {
		return err
	}
	if err := m.constrainLinearization(); err != nil {
		return err
	}
	if err := m.constrainEnrollmentRequiresScheduling(); err != nil {
		return err
	}
	if err := m.constrainSpecialNeedsCap(); err != nil {
		return err
	}
	if err := m.constrainRequiredCoursesNeverMissed(); err != nil {
		return err
	}
	return nil
}

// constrainSectionSinglePeriod bounds every section to at most one period,
// except a restricted-course section (Medical Career/Heroes Teach), which
// spec.md §4.3 hard constraint 1 requires to be scheduled, not merely
// capped — an EQ constraint there drives the model to infeasible (the
// correct signal) rather than silently leaving it unplaced.
func (m *Model) constrainSectionSinglePeriod() error {
	for _, s := range m.catalog.Sections {
		terms := make(map[VarRef]float64)
		for _, p := range m.periodsBySection[s.ID] {
			terms[m.x[sectionPeriodKey{Section: s.ID, Period: p}]] = 1
		}
		restricted := m.restrictions.IsRestricted(s.CourseID)
		if len(terms) == 0 && !restricted {
			continue
		}
		op := LE
		if restricted {
			op = EQ
		}
		if err := m.solver.AddLinearConstraint("section_single_period_"+string(s.ID), terms, op, 1); err != nil {
			return fmt.Errorf("milp: section single-period constraint for %s: %w", s.ID, err)
		}
	}
	return nil
}

func (m *Model) constrainTeacherNonOverlap() error {
	for _, t := range m.catalog.Teachers {
		for _, p := range m.catalog.Periods {
			terms := make(map[VarRef]float64)
			for _, s := range m.catalog.Sections {
				if s.TeacherID == nil || *s.TeacherID != t.ID {
					continue
				}
				if key, ok := m.x[sectionPeriodKey{Section: s.ID, Period: p.ID}]; ok {
					terms[key] = 1
				}
			}
			if len(terms) <= 1 {
				continue
			}
			name := "teacher_nonoverlap_" + string(t.ID) + "_" + string(p.ID)
			if err := m.solver.AddLinearConstraint(name, terms, LE, 1); err != nil {
				return fmt.Errorf("milp: %s: %w", name, err)
			}
		}
	}
	return nil
}

func (m *Model) constrainStudentNonOverlap() error {
	for _, stu := range m.catalog.Students {
		for _, p := range m.catalog.Periods {
			terms := make(map[VarRef]float64)
			for key, ref := range m.z {
				if key.Student != stu.ID || key.Period != p.ID {
					continue
				}
				terms[ref] = 1
			}
			if len(terms) <= 1 {
				continue
			}
			name := "student_nonoverlap_" + string(stu.ID) + "_" + string(p.ID)
			if err := m.solver.AddLinearConstraint(name, terms, LE, 1); err != nil {
				return fmt.Errorf("milp: %s: %w", name, err)
			}
		}
	}
	return nil
}

// constrainLinearization ties each z[u,s,p] to the product y[u,s]·x[s,p]
// via the standard AND-linearization: z<=x, z<=y, z>=y+x-1.
func (m *Model) constrainLinearization() error {
	for key, z := range m.z {
		xKey := sectionPeriodKey{Section: key.Section, Period: key.Period}
		yKey := studentSectionKey{Student: key.Student, Section: key.Section}
		x, hasX := m.x[xKey]
		y, hasY := m.y[yKey]
		if !hasX || !hasY {
			return fmt.Errorf("milp: z variable %v references missing x/y", key)
		}
		base := fmt.Sprintf("z_%s_%s_%s", key.Student, key.Section, key.Period)
		if err := m.solver.AddLinearConstraint(base+"_le_x", map[VarRef]float64{z: 1, x: -1}, LE, 0); err != nil {
			return err
		}
		if err := m.solver.AddLinearConstraint(base+"_le_y", map[VarRef]float64{z: 1, y: -1}, LE, 0); err != nil {
			return err
		}
		if err := m.solver.AddLinearConstraint(base+"_ge_xy", map[VarRef]float64{z: 1, x: -1, y: -1}, GE, -1); err != nil {
			return err
		}
	}
	return nil
}

// constrainEnrollmentRequiresScheduling forbids y[u,s]=1 for a section that
// never lands on any period: y[u,s] <= sum_p x[s,p].
func (m *Model) constrainEnrollmentRequiresScheduling() error {
	bySection := make(map[domain.SectionID][]studentSectionKey)
	for key := range m.y {
		bySection[key.Section] = append(bySection[key.Section], key)
	}
	for sectionID, keys := range bySection {
		xTerms := make(map[VarRef]float64)
		for _, p := range m.periodsBySection[sectionID] {
			xTerms[m.x[sectionPeriodKey{Section: sectionID, Period: p}]] = -1
		}
		for _, key := range keys {
			terms := map[VarRef]float64{m.y[key]: 1}
			for v, c := range xTerms {
				terms[v] = c
			}
			name := "enrollment_requires_schedule_" + string(key.Student) + "_" + string(key.Section)
			if err := m.solver.AddLinearConstraint(name, terms, LE, 0); err != nil {
				return fmt.Errorf("milp: %s: %w", name, err)
			}
		}
	}
	return nil
}

func (m *Model) constrainSpecialNeedsCap() error {
	for _, s := range m.catalog.Sections {
		terms := make(map[VarRef]float64)
		for _, stu := range m.catalog.Students {
			if !stu.HasSpecialNeeds {
				continue
			}
			if key, ok := m.y[studentSectionKey{Student: stu.ID, Section: s.ID}]; ok {
				terms[key] = 1
			}
		}
		if len(terms) == 0 {
			continue
		}
		name := "special_needs_cap_" + string(s.ID)
		if err := m.solver.AddLinearConstraint(name, terms, LE, float64(domain.SpecialNeedsSectionCap)); err != nil {
			return fmt.Errorf("milp: %s: %w", name, err)
		}
	}
	return nil
}

func (m *Model) constrainRequiredCoursesNeverMissed() error {
	for _, stu := range m.catalog.Students {
		pref, ok := m.prefs[stu.ID]
		if !ok {
			continue
		}
		for _, course := range pref.PreferredCourses {
			if !pref.IsRequired(course) {
				continue
			}
			missKey, ok := m.miss[studentCourseKey{Student: stu.ID, Course: course}]
			if !ok {
				continue
			}
			name := "required_never_missed_" + string(stu.ID) + "_" + string(course)
			if err := m.solver.AddLinearConstraint(name, map[VarRef]float64{missKey: 1}, EQ, 0); err != nil {
				return fmt.Errorf("milp: %s: %w", name, err)
			}
		}
	}
	return nil
}

// addSoftConstraints wires the penalized-but-not-forbidden behaviors (spec.md
// §4.3 "Soft constraints"): capacity may be exceeded at the cost of
// cap_over[s], and a preferred (non-required) course may go unmet at the
// cost of miss[u,c].
func (m *Model) addSoftConstraints() error {
	if err := m.constrainCapacityWithOverflow(); err != nil {
		return err
	}
	if err := m.constrainCourseCoverage(); err != nil {
		return err
	}
	return nil
}

func (m *Model) constrainCapacityWithOverflow() error {
	for _, s := range m.catalog.Sections {
		terms := make(map[VarRef]float64)
		for _, stu := range m.catalog.Students {
			if key, ok := m.y[studentSectionKey{Student: stu.ID, Section: s.ID}]; ok {
				terms[key] = 1
			}
		}
		if len(terms) == 0 {
			continue
		}
		terms[m.capOver[s.ID]] = -1
		name := "capacity_with_overflow_" + string(s.ID)
		if err := m.solver.AddLinearConstraint(name, terms, LE, float64(s.Capacity)); err != nil {
			return fmt.Errorf("milp: %s: %w", name, err)
		}
	}
	return nil
}

func (m *Model) constrainCourseCoverage() error {
	for _, stu := range m.catalog.Students {
		pref, ok := m.prefs[stu.ID]
		if !ok {
			continue
		}
		for _, course := range pref.PreferredCourses {
			terms := make(map[VarRef]float64)
			for _, s := range m.catalog.Sections {
				if s.CourseID != course {
					continue
				}
				if key, ok := m.y[studentSectionKey{Student: stu.ID, Section: s.ID}]; ok {
					terms[key] = 1
				}
			}
			missKey, ok := m.miss[studentCourseKey{Student: stu.ID, Course: course}]
			if !ok {
				continue
			}
			terms[missKey] = 1
			name := "course_coverage_" + string(stu.ID) + "_" + string(course)
			if err := m.solver.AddLinearConstraint(name, terms, GE, 1); err != nil {
				return fmt.Errorf("milp: %s: %w", name, err)
			}
		}
	}
	return nil
}
