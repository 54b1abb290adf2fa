package domain

// Schedule is the aggregate produced by the greedy constructor and the MILP
// extractor: a snapshot of sections (with their assigned periods) plus the
// set of student↔section assignments. It is immutable once built and
// exposes indexed views so callers never recompute O(n) scans per query.
type Schedule struct {
	sections    map[SectionID]Section
	assignments map[Assignment]struct{}

	bySection map[SectionID]map[StudentID]struct{}
	byStudent map[StudentID]map[SectionID]struct{}
}

// NewSchedule builds an empty Schedule over the given sections.
func NewSchedule(sections []Section) *Schedule {
	s := &Schedule{
		sections:    make(map[SectionID]Section, len(sections)),
		assignments: make(map[Assignment]struct{}),
		bySection:   make(map[SectionID]map[StudentID]struct{}),
		byStudent:   make(map[StudentID]map[SectionID]struct{}),
	}
	for _, sec := range sections {
		s.sections[sec.ID] = sec
	}
	return s
}

// SetSectionPeriod records the period a section has been scheduled into.
// It is the only mutator greedy/MILP construction uses while building a
// Schedule; once handed to the rest of the pipeline, a Schedule is read-only.
func (s *Schedule) SetSectionPeriod(id SectionID, period PeriodID) {
	sec, ok := s.sections[id]
	if !ok {
		return
	}
	s.sections[id] = sec.WithPeriod(period)
}

// AddAssignment records a student↔section assignment and updates both
// indexed views in O(1).
func (s *Schedule) AddAssignment(a Assignment) {
	if _, exists := s.assignments[a]; exists {
		return
	}
	s.assignments[a] = struct{}{}
	if s.bySection[a.SectionID] == nil {
		s.bySection[a.SectionID] = make(map[StudentID]struct{})
	}
	s.bySection[a.SectionID][a.StudentID] = struct{}{}
	if s.byStudent[a.StudentID] == nil {
		s.byStudent[a.StudentID] = make(map[SectionID]struct{})
	}
	s.byStudent[a.StudentID][a.SectionID] = struct{}{}
}

// Section looks up a section by ID.
func (s *Schedule) Section(id SectionID) (Section, bool) {
	sec, ok := s.sections[id]
	return sec, ok
}

// Sections returns every section in the schedule, scheduled or not.
func (s *Schedule) Sections() []Section {
	out := make([]Section, 0, len(s.sections))
	for _, sec := range s.sections {
		out = append(out, sec)
	}
	return out
}

// ScheduledSectionCount counts sections that have been assigned a period.
func (s *Schedule) ScheduledSectionCount() int {
	n := 0
	for _, sec := range s.sections {
		if sec.IsScheduled() {
			n++
		}
	}
	return n
}

// Assignments returns every student↔section assignment.
func (s *Schedule) Assignments() []Assignment {
	out := make([]Assignment, 0, len(s.assignments))
	for a := range s.assignments {
		out = append(out, a)
	}
	return out
}

// Enrollment returns the number of students assigned to a section.
func (s *Schedule) Enrollment(id SectionID) int {
	return len(s.bySection[id])
}

// IsFull reports whether a section's enrollment has reached its capacity.
func (s *Schedule) IsFull(id SectionID) bool {
	sec, ok := s.sections[id]
	if !ok {
		return false
	}
	return s.Enrollment(id) >= sec.Capacity
}

// AssignmentsForStudent returns the sections a student has been placed into.
func (s *Schedule) AssignmentsForStudent(id StudentID) []SectionID {
	set := s.byStudent[id]
	out := make([]SectionID, 0, len(set))
	for sectionID := range set {
		out = append(out, sectionID)
	}
	return out
}

// AssignmentsForSection returns the students placed into a section.
func (s *Schedule) AssignmentsForSection(id SectionID) []StudentID {
	set := s.bySection[id]
	out := make([]StudentID, 0, len(set))
	for studentID := range set {
		out = append(out, studentID)
	}
	return out
}

// HasCourseAssignment reports whether a student already has a section of a given
// course, per invariant 5 (at most one section per course per student).
func (s *Schedule) HasCourseAssignment(studentID StudentID, courseID CourseID, sections map[SectionID]Section) bool {
	for sectionID := range s.byStudent[studentID] {
		if sec, ok := sections[sectionID]; ok && sec.CourseID == courseID {
			return true
		}
	}
	return false
}
