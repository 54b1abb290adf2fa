package milp

import "github.com/udpschedule/scheduler-core/internal/domain"

// WarmStart seeds the model from a previously-constructed Schedule (spec.md
// §4.3 "Warm start from a greedy Schedule"). It is advisory only: a
// (section, period) or (student, section) pairing that has no corresponding
// variable in this model — because it was pruned as inadmissible — is
// silently skipped rather than treated as an error.
func (m *Model) WarmStart(schedule *domain.Schedule) {
	for _, s := range schedule.Sections() {
		if !s.IsScheduled() {
			continue
		}
		if x, ok := m.x[sectionPeriodKey{Section: s.ID, Period: *s.PeriodID}]; ok {
			m.solver.SetStart(x, 1)
		}
	}

	for _, a := range schedule.Assignments() {
		s, ok := m.sections[a.SectionID]
		if !ok {
			continue
		}
		if y, ok := m.y[studentSectionKey{Student: a.StudentID, Section: a.SectionID}]; ok {
			m.solver.SetStart(y, 1)
		}
		if s.IsScheduled() {
			if z, ok := m.z[studentSectionPeriodKey{Student: a.StudentID, Section: a.SectionID, Period: *s.PeriodID}]; ok {
				m.solver.SetStart(z, 1)
			}
		}
	}
}
