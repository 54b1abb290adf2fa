package greedy

import "github.com/udpschedule/scheduler-core/internal/domain"

// specialCourseOrder is the fixed order Pass A considers "special" courses
// in, per spec.md §4.2.
var specialCourseOrder = []domain.CourseID{
	domain.CourseMedicalCareer,
	domain.CourseHeroesTeach,
	domain.CourseSportsMed,
}

func isSpecialCourse(c domain.CourseID) bool {
	for _, sc := range specialCourseOrder {
		if sc == c {
			return true
		}
	}
	return false
}

// studentHardness computes the spec.md §4.2 hardness score: higher means
// assigned earlier in the student→section phase.
func studentHardness(student domain.Student, pref domain.StudentPreference) float64 {
	h := 1.0

	if student.HasSpecialNeeds {
		h *= 2.0
	}

	hasSpecialPreference := false
	for _, c := range pref.PreferredCourses {
		if c == domain.CourseMedicalCareer || c == domain.CourseHeroesTeach {
			hasSpecialPreference = true
			break
		}
	}
	if hasSpecialPreference {
		h *= 1.5
	}

	h *= 1 + 0.1*float64(len(pref.PreferredCourses))
	h *= 1 + 0.2*float64(len(pref.RequiredCourses))

	return h
}
