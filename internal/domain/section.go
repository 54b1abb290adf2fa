package domain

import "fmt"

// Section is a concrete offering of a course: one teacher, one period (once
// scheduled), a capacity, and an optional room. PeriodID is nil until the
// greedy constructor or the MILP extractor schedules it.
type Section struct {
	ID         SectionID
	CourseID   CourseID
	TeacherID  *TeacherID
	PeriodID   *PeriodID
	Capacity   int
	Department string
	Room       string
}

// NewSection validates capacity and ID.
func NewSection(id SectionID, courseID CourseID, teacherID *TeacherID, capacity int, department, room string) (Section, error) {
	if id == "" {
		return Section{}, fmt.Errorf("domain: section id must not be empty")
	}
	if courseID == "" {
		return Section{}, fmt.Errorf("domain: section %s: course id must not be empty", id)
	}
	if capacity < 1 {
		return Section{}, fmt.Errorf("domain: section %s: capacity must be >= 1, got %d", id, capacity)
	}
	return Section{
		ID:         id,
		CourseID:   courseID,
		TeacherID:  teacherID,
		Capacity:   capacity,
		Department: department,
		Room:       room,
	}, nil
}

// IsScheduled reports whether the section has been assigned a period.
func (s Section) IsScheduled() bool {
	return s.PeriodID != nil
}

// WithPeriod returns a copy of s scheduled into p.
func (s Section) WithPeriod(p PeriodID) Section {
	cp := s
	period := p
	cp.PeriodID = &period
	return cp
}
