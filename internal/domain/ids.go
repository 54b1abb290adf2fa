// Package domain holds the entity model for the master schedule: typed
// identifiers, the five entity kinds, and the Schedule aggregate that
// optimizers produce and downstream components consume read-only.
package domain

// Distinct identifier types so a StudentID can never be passed where a
// SectionID is expected, even though both are opaque strings underneath.
type (
	SectionID string
	StudentID string
	TeacherID string
	PeriodID  string
	CourseID  string
)
