package milp

import "github.com/udpschedule/scheduler-core/internal/domain"

// admissiblePeriods returns the periods a section may legally occupy:
// restricted courses (spec.md §3 course-period policy) are pruned to their
// allowed set, and periods where the section's teacher is unavailable are
// dropped outright — both are hard constraints, so there is no reason to
// create a variable for a pairing that can never be 1.
func (m *Model) admissiblePeriodsFor(s domain.Section) []domain.PeriodID {
	var teacher domain.Teacher
	hasTeacher := false
	if s.TeacherID != nil {
		teacher, hasTeacher = m.teachers[*s.TeacherID]
	}

	out := make([]domain.PeriodID, 0, len(m.catalog.Periods))
	for _, p := range m.catalog.Periods {
		if m.restrictions.IsRestricted(s.CourseID) && !m.restrictions.Allows(s.CourseID, p.ID) {
			continue
		}
		if hasTeacher && teacher.IsUnavailable(p.ID) {
			continue
		}
		out = append(out, p.ID)
	}
	return out
}

// createVariables creates x[s,p] for every admissible (section, period)
// pair, y[u,s] for every (student, section) pair consistent with the
// student's preferences, z[u,s,p] for every (student, section, period)
// pair reachable through both, and one miss[u,c]/cap_over[s] per
// preference/section respectively (spec.md §4.3 "Variables").
func (m *Model) createVariables() {
	for _, s := range m.catalog.Sections {
		periods := m.admissiblePeriodsFor(s)
		m.periodsBySection[s.ID] = periods
		for _, p := range periods {
			key := sectionPeriodKey{Section: s.ID, Period: p}
			m.x[key] = m.solver.AddBinary("x_" + string(s.ID) + "_" + string(p))
		}
		m.capOver[s.ID] = m.solver.AddInt("capover_"+string(s.ID), 0, float64(len(m.catalog.Students)))
	}

	for _, stu := range m.catalog.Students {
		pref, ok := m.prefs[stu.ID]
		if !ok {
			continue
		}
		for _, course := range pref.PreferredCourses {
			m.miss[studentCourseKey{Student: stu.ID, Course: course}] = m.solver.AddBinary(
				"miss_" + string(stu.ID) + "_" + string(course))

			for _, s := range m.catalog.Sections {
				if s.CourseID != course {
					continue
				}
				ykey := studentSectionKey{Student: stu.ID, Section: s.ID}
				m.y[ykey] = m.solver.AddBinary("y_" + string(stu.ID) + "_" + string(s.ID))

				for _, p := range m.periodsBySection[s.ID] {
					zkey := studentSectionPeriodKey{Student: stu.ID, Section: s.ID, Period: p}
					m.z[zkey] = m.solver.AddBinary(
						"z_" + string(stu.ID) + "_" + string(s.ID) + "_" + string(p))
				}
			}
		}
	}
}
