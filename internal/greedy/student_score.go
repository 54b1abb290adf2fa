package greedy

import (
	"math"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// studentAssignState tracks the schedule being built up during the
// student→section phase plus the incremental counters the student-section
// score needs (special-needs peers already placed per section).
type studentAssignState struct {
	schedule          *domain.Schedule
	sections          map[domain.SectionID]domain.Section
	sectionsByCourse  map[domain.CourseID][]domain.Section
	specialNeedsCount map[domain.SectionID]int
}

func newStudentAssignState(schedule *domain.Schedule) *studentAssignState {
	st := &studentAssignState{
		schedule:          schedule,
		sections:          make(map[domain.SectionID]domain.Section),
		sectionsByCourse:  make(map[domain.CourseID][]domain.Section),
		specialNeedsCount: make(map[domain.SectionID]int),
	}
	for _, sec := range schedule.Sections() {
		st.sections[sec.ID] = sec
		st.sectionsByCourse[sec.CourseID] = append(st.sectionsByCourse[sec.CourseID], sec)
	}
	return st
}

// studentSectionScore computes the spec.md §4.2 student-section score: 0
// means infeasible, positive means a candidate.
func (st *studentAssignState) studentSectionScore(
	student domain.Student,
	pref domain.StudentPreference,
	course domain.CourseID,
	sec domain.Section,
) float64 {
	if !sec.IsScheduled() {
		return 0
	}
	if !pref.Contains(course) {
		return 0
	}
	if st.schedule.HasCourseAssignment(student.ID, course, st.sections) {
		return 0
	}
	for _, existingID := range st.schedule.AssignmentsForStudent(student.ID) {
		existing, ok := st.sections[existingID]
		if ok && existing.IsScheduled() && *existing.PeriodID == *sec.PeriodID {
			return 0
		}
	}
	if st.schedule.IsFull(sec.ID) {
		return 0
	}

	score := 1.0

	fillRatio := float64(st.schedule.Enrollment(sec.ID)) / float64(sec.Capacity)
	score *= 1.1 - fillRatio

	if student.HasSpecialNeeds {
		if k := st.specialNeedsCount[sec.ID]; k >= 2 {
			score *= math.Pow(0.5, float64(k-1))
		}
	}

	if pref.IsRequired(course) {
		score *= 2.0
	}

	if st.nonFullScheduledSectionsRemaining(course) <= 2 {
		score *= 2.0
	}

	return score
}

func (st *studentAssignState) nonFullScheduledSectionsRemaining(course domain.CourseID) int {
	n := 0
	for _, sec := range st.sectionsByCourse[course] {
		if sec.IsScheduled() && !st.schedule.IsFull(sec.ID) {
			n++
		}
	}
	return n
}

// place commits a student↔section assignment and updates the special-needs
// peer counter used by subsequent scoring.
func (st *studentAssignState) place(student domain.Student, sec domain.Section) {
	st.schedule.AddAssignment(domain.Assignment{StudentID: student.ID, SectionID: sec.ID})
	if student.HasSpecialNeeds {
		st.specialNeedsCount[sec.ID]++
	}
}
