package actions

import (
	"fmt"
	"sort"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// applySplit halves an underutilized section in two, refusing unless
// capacity exceeds domain.MinSplitCapacity and both halves would hold at
// least domain.MinSplitHalf seats (spec.md §4.5 "SPLIT"). The new half's
// teacher is chosen by the same three-tier policy as ADD.
func (a *Applier) applySplit(act Action) Outcome {
	s, ok := a.sections[act.SectionID]
	if !ok {
		return Outcome{Action: act, Refusal: fmt.Sprintf("section %s does not exist", act.SectionID)}
	}
	if s.Capacity <= domain.MinSplitCapacity {
		return Outcome{Action: act, Refusal: fmt.Sprintf(
			"capacity %d does not exceed the minimum splittable capacity %d", s.Capacity, domain.MinSplitCapacity)}
	}

	half := s.Capacity / 2
	other := s.Capacity - half
	if half < domain.MinSplitHalf || other < domain.MinSplitHalf {
		return Outcome{Action: act, Refusal: fmt.Sprintf(
			"split halves %d/%d would fall below the minimum half-capacity %d", half, other, domain.MinSplitHalf)}
	}

	teacherID, err := a.pickTeacherForNewSection(s.CourseID, s.Department, s.TeacherID)
	if err != nil {
		return Outcome{Action: act, Refusal: err.Error()}
	}

	newSection, err := domain.NewSection(a.nextSectionID(), s.CourseID, teacherID, other, s.Department, s.Room)
	if err != nil {
		return Outcome{Action: act, Refusal: err.Error()}
	}

	original, err := domain.NewSection(s.ID, s.CourseID, s.TeacherID, half, s.Department, s.Room)
	if err != nil {
		return Outcome{Action: act, Refusal: err.Error()}
	}
	a.sections[s.ID] = original
	a.addSection(newSection)

	return Outcome{Action: act, Applied: true, Produced: []domain.Section{newSection}}
}

// applyAdd creates a new section with the same course/department as the
// template section named by act.SectionID (spec.md §4.5 "ADD(template_s)").
// Capacity defaults per department (domain.DefaultDepartmentCapacity /
// DefaultCapacityOther); the teacher is chosen by the same three-tier
// policy as SPLIT.
func (a *Applier) applyAdd(act Action) Outcome {
	template, ok := a.sections[act.SectionID]
	if !ok {
		return Outcome{Action: act, Refusal: fmt.Sprintf("add template section %s does not exist", act.SectionID)}
	}

	teacherID, err := a.pickTeacherForNewSection(template.CourseID, template.Department, template.TeacherID)
	if err != nil {
		return Outcome{Action: act, Refusal: err.Error()}
	}

	capacity := domain.DefaultCapacityOther
	if cap, ok := domain.DefaultDepartmentCapacity[template.Department]; ok {
		capacity = cap
	}

	section, err := domain.NewSection(a.nextSectionID(), template.CourseID, teacherID, capacity, template.Department, "")
	if err != nil {
		return Outcome{Action: act, Refusal: err.Error()}
	}
	a.addSection(section)

	return Outcome{Action: act, Applied: true, Produced: []domain.Section{section}}
}

// pickTeacherForNewSection implements spec.md §4.5's shared SPLIT/ADD
// teacher-selection policy: (i) another teacher of the same course with
// fewer than domain.MaxSectionsPerTeacherForNewSection sections, else (ii)
// a department peer under the same cap, else (iii) the original section's
// own teacher if still under the cap, else refuse.
func (a *Applier) pickTeacherForNewSection(courseID domain.CourseID, department string, original *domain.TeacherID) (*domain.TeacherID, error) {
	if teacherID, ok := a.leastLoadedUnder(a.teachersTeachingCourse(courseID), original); ok {
		return teacherID, nil
	}
	if teacherID, ok := a.leastLoadedUnder(a.teachersInDepartment(department), original); ok {
		return teacherID, nil
	}
	if original != nil && len(a.sectionsByTeacher[*original]) < domain.MaxSectionsPerTeacherForNewSection {
		return original, nil
	}
	return nil, fmt.Errorf("no teacher available under the %d-section cap", domain.MaxSectionsPerTeacherForNewSection)
}

// teachersTeachingCourse returns every teacher currently assigned at least
// one section of courseID.
func (a *Applier) teachersTeachingCourse(courseID domain.CourseID) []domain.TeacherID {
	seen := make(map[domain.TeacherID]struct{})
	var out []domain.TeacherID
	for _, s := range a.sectionsByCourse[courseID] {
		if s.TeacherID == nil {
			continue
		}
		if _, ok := seen[*s.TeacherID]; ok {
			continue
		}
		seen[*s.TeacherID] = struct{}{}
		out = append(out, *s.TeacherID)
	}
	return out
}

// teachersInDepartment returns every teacher belonging to department,
// regardless of what they currently teach.
func (a *Applier) teachersInDepartment(department string) []domain.TeacherID {
	var out []domain.TeacherID
	for _, t := range a.catalog.Teachers {
		if t.Department == department {
			out = append(out, t.ID)
		}
	}
	return out
}

// leastLoadedUnder picks the candidate (excluding original, if present)
// with the fewest current sections, provided that count is under
// domain.MaxSectionsPerTeacherForNewSection, breaking ties by teacher ID.
func (a *Applier) leastLoadedUnder(candidates []domain.TeacherID, original *domain.TeacherID) (*domain.TeacherID, bool) {
	type scored struct {
		teacherID domain.TeacherID
		count     int
	}
	var eligible []scored
	for _, id := range candidates {
		if original != nil && id == *original {
			continue
		}
		count := len(a.sectionsByTeacher[id])
		if count >= domain.MaxSectionsPerTeacherForNewSection {
			continue
		}
		eligible = append(eligible, scored{teacherID: id, count: count})
	}
	if len(eligible) == 0 {
		return nil, false
	}
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].count != eligible[j].count {
			return eligible[i].count < eligible[j].count
		}
		return eligible[i].teacherID < eligible[j].teacherID
	})
	chosen := eligible[0].teacherID
	return &chosen, true
}

// applyRemove deletes a section, refusing if it is the only section of its
// course or the only section its teacher teaches (spec.md §4.5 "REMOVE").
func (a *Applier) applyRemove(act Action) Outcome {
	s, ok := a.sections[act.SectionID]
	if !ok {
		return Outcome{Action: act, Refusal: fmt.Sprintf("section %s does not exist", act.SectionID)}
	}
	if len(a.sectionsByCourse[s.CourseID]) <= 1 {
		return Outcome{Action: act, Refusal: fmt.Sprintf("section %s is the only section of course %s", s.ID, s.CourseID)}
	}
	if s.TeacherID != nil && len(a.sectionsByTeacher[*s.TeacherID]) <= 1 {
		return Outcome{Action: act, Refusal: fmt.Sprintf("section %s is the only section taught by %s", s.ID, *s.TeacherID)}
	}

	a.removeSection(s.ID)
	return Outcome{Action: act, Applied: true}
}

// applyMerge folds a section into another of the same course, refusing if
// either does not exist, they teach different courses, or the combined
// capacity would exceed domain.MergeCapacityCap (spec.md §4.5 "MERGE").
func (a *Applier) applyMerge(act Action) Outcome {
	s, ok := a.sections[act.SectionID]
	if !ok {
		return Outcome{Action: act, Refusal: fmt.Sprintf("section %s does not exist", act.SectionID)}
	}
	target, ok := a.sections[act.MergeWith]
	if !ok {
		return Outcome{Action: act, Refusal: fmt.Sprintf("merge target %s does not exist", act.MergeWith)}
	}
	if s.CourseID != target.CourseID {
		return Outcome{Action: act, Refusal: fmt.Sprintf(
			"section %s (course %s) and %s (course %s) are different courses", s.ID, s.CourseID, target.ID, target.CourseID)}
	}
	combined := s.Capacity + target.Capacity
	if combined > domain.MergeCapacityCap {
		return Outcome{Action: act, Refusal: fmt.Sprintf(
			"combined capacity %d exceeds the merge cap %d", combined, domain.MergeCapacityCap)}
	}

	merged, err := domain.NewSection(target.ID, target.CourseID, target.TeacherID, combined, target.Department, target.Room)
	if err != nil {
		return Outcome{Action: act, Refusal: err.Error()}
	}
	a.removeSection(s.ID)
	a.sections[target.ID] = merged
	// Rebuild the by-teacher/by-course index entries for target with the
	// updated capacity in place.
	a.reindexSection(merged)

	return Outcome{Action: act, Applied: true, Produced: []domain.Section{merged}}
}

func (a *Applier) reindexSection(s domain.Section) {
	a.sectionsByCourse[s.CourseID] = replaceSection(a.sectionsByCourse[s.CourseID], s)
	if s.TeacherID != nil {
		a.sectionsByTeacher[*s.TeacherID] = replaceSection(a.sectionsByTeacher[*s.TeacherID], s)
	}
}

func replaceSection(list []domain.Section, s domain.Section) []domain.Section {
	for i, cur := range list {
		if cur.ID == s.ID {
			list[i] = s
			return list
		}
	}
	return append(list, s)
}
