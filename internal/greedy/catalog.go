// Package greedy implements the priority-driven heuristic that builds a
// complete initial section→period and student→section assignment under all
// hard constraints (spec.md §4.2). It is used both standalone and as the
// warm start fed into the MILP model.
package greedy

import "github.com/udpschedule/scheduler-core/internal/domain"

// catalogIndex precomputes the lookups the section-priority and
// period-score formulas need, so scoring stays O(1) per candidate instead
// of re-scanning the full catalog.
type catalogIndex struct {
	teachers          map[domain.TeacherID]domain.Teacher
	sectionsByCourse  map[domain.CourseID][]domain.Section
	sectionsByTeacher map[domain.TeacherID][]domain.Section
	demandByCourse    map[domain.CourseID]int
	restrictions      domain.ResolvedRestrictions
}

func buildCatalogIndex(
	teachers []domain.Teacher,
	sections []domain.Section,
	prefs []domain.StudentPreference,
	restrictions domain.ResolvedRestrictions,
) *catalogIndex {
	idx := &catalogIndex{
		teachers:          make(map[domain.TeacherID]domain.Teacher, len(teachers)),
		sectionsByCourse:  make(map[domain.CourseID][]domain.Section),
		sectionsByTeacher: make(map[domain.TeacherID][]domain.Section),
		demandByCourse:    make(map[domain.CourseID]int),
		restrictions:      restrictions,
	}
	for _, t := range teachers {
		idx.teachers[t.ID] = t
	}
	for _, s := range sections {
		idx.sectionsByCourse[s.CourseID] = append(idx.sectionsByCourse[s.CourseID], s)
		if s.TeacherID != nil {
			idx.sectionsByTeacher[*s.TeacherID] = append(idx.sectionsByTeacher[*s.TeacherID], s)
		}
	}
	for _, p := range prefs {
		for _, c := range p.PreferredCourses {
			idx.demandByCourse[c]++
		}
	}
	return idx
}
