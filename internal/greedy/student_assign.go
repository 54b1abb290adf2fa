package greedy

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

type courseSectionCandidate struct {
	course  domain.CourseID
	section domain.Section
	score   float64
}

type rankedStudent struct {
	student  domain.Student
	pref     domain.StudentPreference
	hardness float64
}

// bestSectionForCourse picks the highest-scoring feasible section of
// course for student, tie-broken by section ID ascending for determinism.
func bestSectionForCourse(
	student domain.Student,
	pref domain.StudentPreference,
	course domain.CourseID,
	st *studentAssignState,
) (domain.Section, float64, bool) {
	candidates := make([]domain.Section, len(st.sectionsByCourse[course]))
	copy(candidates, st.sectionsByCourse[course])
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	var best domain.Section
	bestScore := 0.0
	found := false
	for _, sec := range candidates {
		sc := st.studentSectionScore(student, pref, course, sec)
		if sc > bestScore {
			bestScore, best, found = sc, sec, true
		}
	}
	return best, bestScore, found
}

// assignStudents runs the two-pass student→section phase from spec.md
// §4.2: Pass A places the fixed-order special courses per student, Pass B
// places the remaining preferred courses in score-descending order,
// re-checking feasibility before each placement since prior placements in
// the same pass can introduce a period clash.
func assignStudents(
	students []domain.Student,
	prefs map[domain.StudentID]domain.StudentPreference,
	st *studentAssignState,
	log zerolog.Logger,
) []MissedPreference {
	ranked := make([]rankedStudent, 0, len(students))
	for _, s := range students {
		pref := prefs[s.ID]
		ranked = append(ranked, rankedStudent{student: s, pref: pref, hardness: studentHardness(s, pref)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].hardness != ranked[j].hardness {
			return ranked[i].hardness > ranked[j].hardness
		}
		return ranked[i].student.ID < ranked[j].student.ID
	})

	for _, r := range ranked {
		for _, course := range specialCourseOrder {
			if !r.pref.Contains(course) {
				continue
			}
			sec, score, ok := bestSectionForCourse(r.student, r.pref, course, st)
			if ok && score > 0 {
				st.place(r.student, sec)
			}
		}
	}

	for _, r := range ranked {
		var candidates []courseSectionCandidate
		for _, course := range r.pref.PreferredCourses {
			if isSpecialCourse(course) {
				continue
			}
			if st.schedule.HasCourseAssignment(r.student.ID, course, st.sections) {
				continue
			}
			sec, score, ok := bestSectionForCourse(r.student, r.pref, course, st)
			if ok && score > 0 {
				candidates = append(candidates, courseSectionCandidate{course: course, section: sec, score: score})
			}
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			return candidates[i].section.ID < candidates[j].section.ID
		})
		for _, cand := range candidates {
			if st.studentSectionScore(r.student, r.pref, cand.course, cand.section) <= 0 {
				continue
			}
			st.place(r.student, cand.section)
		}
	}

	var missed []MissedPreference
	for _, r := range ranked {
		for _, course := range r.pref.PreferredCourses {
			if !st.schedule.HasCourseAssignment(r.student.ID, course, st.sections) {
				missed = append(missed, MissedPreference{StudentID: r.student.ID, CourseID: course})
				log.Debug().Str("student_id", string(r.student.ID)).Str("course_id", string(course)).
					Msg("greedy: student did not receive a section for preferred course")
			}
		}
	}

	return missed
}
