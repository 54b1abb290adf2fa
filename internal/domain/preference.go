package domain

import "fmt"

// StudentPreference is a student's ordered course wishlist plus the subset
// marked required. RequiredCourses must be a subset of PreferredCourses.
type StudentPreference struct {
	StudentID        StudentID
	PreferredCourses []CourseID
	RequiredCourses  map[CourseID]struct{}
}

// NewStudentPreference enforces required ⊆ preferred.
func NewStudentPreference(studentID StudentID, preferred []CourseID, required []CourseID) (StudentPreference, error) {
	if studentID == "" {
		return StudentPreference{}, fmt.Errorf("domain: preference student id must not be empty")
	}
	preferredSet := make(map[CourseID]struct{}, len(preferred))
	for _, c := range preferred {
		preferredSet[c] = struct{}{}
	}
	requiredSet := make(map[CourseID]struct{}, len(required))
	for _, c := range required {
		if _, ok := preferredSet[c]; !ok {
			return StudentPreference{}, fmt.Errorf("domain: student %s: required course %s is not in preferred_courses", studentID, c)
		}
		requiredSet[c] = struct{}{}
	}
	cp := make([]CourseID, len(preferred))
	copy(cp, preferred)
	return StudentPreference{StudentID: studentID, PreferredCourses: cp, RequiredCourses: requiredSet}, nil
}

// IsRequired reports whether c is a required course for this student.
func (p StudentPreference) IsRequired(c CourseID) bool {
	_, required := p.RequiredCourses[c]
	return required
}

// Contains reports whether c is anywhere in the preferred list.
func (p StudentPreference) Contains(c CourseID) bool {
	for _, pc := range p.PreferredCourses {
		if pc == c {
			return true
		}
	}
	return false
}
