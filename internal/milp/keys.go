package milp

import "github.com/udpschedule/scheduler-core/internal/domain"

type sectionPeriodKey struct {
	Section domain.SectionID
	Period  domain.PeriodID
}

type studentSectionKey struct {
	Student domain.StudentID
	Section domain.SectionID
}

type studentSectionPeriodKey struct {
	Student domain.StudentID
	Section domain.SectionID
	Period  domain.PeriodID
}

type studentCourseKey struct {
	Student domain.StudentID
	Course  domain.CourseID
}
