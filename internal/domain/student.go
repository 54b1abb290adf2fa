package domain

import "fmt"

// Student is a scheduling subject; HasSpecialNeeds feeds the greedy
// hardness score and the MILP special-needs cap.
type Student struct {
	ID              StudentID
	GradeLevel      int
	HasSpecialNeeds bool
}

// NewStudent rejects a blank ID.
func NewStudent(id StudentID, gradeLevel int, hasSpecialNeeds bool) (Student, error) {
	if id == "" {
		return Student{}, fmt.Errorf("domain: student id must not be empty")
	}
	return Student{ID: id, GradeLevel: gradeLevel, HasSpecialNeeds: hasSpecialNeeds}, nil
}
