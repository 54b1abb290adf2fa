package greedy

import "github.com/udpschedule/scheduler-core/internal/domain"

// MissedPreference records a preferred course a student never received a
// section for, after both assignment passes complete.
type MissedPreference struct {
	StudentID domain.StudentID
	CourseID  domain.CourseID
}

// Result is the full output of Construct: the Schedule plus the residuals
// the greedy constructor never aborts on (spec.md §4.2 "Failure semantics").
type Result struct {
	Schedule            *domain.Schedule
	UnscheduledSections []domain.SectionID
	MissedPreferences   []MissedPreference
}
