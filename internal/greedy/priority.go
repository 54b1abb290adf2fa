package greedy

import "github.com/udpschedule/scheduler-core/internal/domain"

// sectionPriority computes the spec.md §4.2 priority score: higher means
// scheduled earlier in the section→period phase.
func sectionPriority(s domain.Section, idx *catalogIndex) float64 {
	p := 1.0

	if idx.restrictions.IsRestricted(s.CourseID) {
		p *= 5.0
	}
	if s.CourseID == domain.CourseSportsMed {
		p *= 3.0
	}

	unavailable, taught := 0, 0
	if s.TeacherID != nil {
		if t, ok := idx.teachers[*s.TeacherID]; ok {
			unavailable = len(t.UnavailablePeriods)
		}
		taught = len(idx.sectionsByTeacher[*s.TeacherID])
	}
	p *= 1 + 0.1*float64(unavailable)
	p *= 1 + 0.2*float64(taught)

	sectionsOfCourse := len(idx.sectionsByCourse[s.CourseID])
	if sectionsOfCourse == 0 {
		sectionsOfCourse = 1
	}
	p *= 1 + 1/float64(sectionsOfCourse)

	p *= 1 + 0.001*float64(idx.demandByCourse[s.CourseID])

	return p
}
