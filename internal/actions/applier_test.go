package actions

import (
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func teacherID(id string) *domain.TeacherID {
	t := domain.TeacherID(id)
	return &t
}

func TestApplySplit_RefusesBelowMinimumCapacity(t *testing.T) {
	section, err := domain.NewSection("S001", "BIO101", teacherID("T1"), 20, "Science", "")
	require.NoError(t, err)
	catalog := domain.Catalog{Sections: []domain.Section{section}}

	applier := NewApplier(catalog)
	outcomes, _ := applier.Apply([]Action{{Type: Split, SectionID: "S001"}}, discardLogger())

	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Applied)
	assert.Contains(t, outcomes[0].Refusal, "minimum splittable capacity")
}

func TestApplySplit_ProducesTwoHalvesAboveMinimum(t *testing.T) {
	section, err := domain.NewSection("S001", "BIO101", teacherID("T1"), 40, "Science", "")
	require.NoError(t, err)
	catalog := domain.Catalog{Sections: []domain.Section{section}}

	applier := NewApplier(catalog)
	outcomes, next := applier.Apply([]Action{{Type: Split, SectionID: "S001"}}, discardLogger())

	require.True(t, outcomes[0].Applied)
	require.Len(t, next.Sections, 2)

	total := 0
	for _, s := range next.Sections {
		total += s.Capacity
		assert.GreaterOrEqual(t, s.Capacity, domain.MinSplitHalf)
	}
	assert.Equal(t, 40, total)
}

func TestApplyRemove_RefusesOnlySectionOfCourse(t *testing.T) {
	section, err := domain.NewSection("S001", "BIO101", teacherID("T1"), 20, "Science", "")
	require.NoError(t, err)
	catalog := domain.Catalog{Sections: []domain.Section{section}}

	applier := NewApplier(catalog)
	outcomes, next := applier.Apply([]Action{{Type: Remove, SectionID: "S001"}}, discardLogger())

	assert.False(t, outcomes[0].Applied)
	assert.Contains(t, outcomes[0].Refusal, "only section of course")
	assert.Len(t, next.Sections, 1)
}

func TestApplyRemove_SucceedsWhenSiblingSectionExists(t *testing.T) {
	s1, err := domain.NewSection("S001", "BIO101", teacherID("T1"), 20, "Science", "")
	require.NoError(t, err)
	// Same teacher for both, so S001 is neither the course's nor the
	// teacher's only section.
	s2, err := domain.NewSection("S002", "BIO101", teacherID("T1"), 20, "Science", "")
	require.NoError(t, err)
	catalog := domain.Catalog{Sections: []domain.Section{s1, s2}}

	applier := NewApplier(catalog)
	outcomes, next := applier.Apply([]Action{{Type: Remove, SectionID: "S001"}}, discardLogger())

	assert.True(t, outcomes[0].Applied)
	assert.Len(t, next.Sections, 1)
	assert.Equal(t, domain.SectionID("S002"), next.Sections[0].ID)
}

func TestApplyMerge_RefusesOverCapacityCap(t *testing.T) {
	s1, err := domain.NewSection("S001", "BIO101", teacherID("T1"), 20, "Science", "")
	require.NoError(t, err)
	s2, err := domain.NewSection("S002", "BIO101", teacherID("T2"), 20, "Science", "")
	require.NoError(t, err)
	catalog := domain.Catalog{Sections: []domain.Section{s1, s2}}

	applier := NewApplier(catalog)
	outcomes, _ := applier.Apply([]Action{{Type: Merge, SectionID: "S001", MergeWith: "S002"}}, discardLogger())

	assert.False(t, outcomes[0].Applied)
	assert.Contains(t, outcomes[0].Refusal, "merge cap")
}

func TestApplyMerge_CombinesCapacityWithinCap(t *testing.T) {
	s1, err := domain.NewSection("S001", "BIO101", teacherID("T1"), 10, "Science", "")
	require.NoError(t, err)
	s2, err := domain.NewSection("S002", "BIO101", teacherID("T2"), 15, "Science", "")
	require.NoError(t, err)
	catalog := domain.Catalog{Sections: []domain.Section{s1, s2}}

	applier := NewApplier(catalog)
	outcomes, next := applier.Apply([]Action{{Type: Merge, SectionID: "S001", MergeWith: "S002"}}, discardLogger())

	require.True(t, outcomes[0].Applied)
	require.Len(t, next.Sections, 1)
	assert.Equal(t, 25, next.Sections[0].Capacity)
}

func TestApplyAdd_RespectsTeacherSectionCap(t *testing.T) {
	t1 := domain.TeacherID("T1")
	teacher, err := domain.NewTeacher(t1, "Science", 10, nil)
	require.NoError(t, err)

	var sections []domain.Section
	for i := 0; i < domain.MaxSectionsPerTeacherForNewSection; i++ {
		s, err := domain.NewSection(domain.SectionID(fmt.Sprintf("S%03d", i)), "BIO101", &t1, 20, "Science", "")
		require.NoError(t, err)
		sections = append(sections, s)
	}
	catalog := domain.Catalog{Sections: sections, Teachers: []domain.Teacher{teacher}}

	applier := NewApplier(catalog)
	outcomes, _ := applier.Apply([]Action{{Type: Add, SectionID: sections[0].ID}}, discardLogger())

	assert.False(t, outcomes[0].Applied)
	assert.Contains(t, outcomes[0].Refusal, "no teacher available")
}

func TestApplyAdd_InheritsCourseAndDepartmentFromTemplate(t *testing.T) {
	t1 := domain.TeacherID("T1")
	t2 := domain.TeacherID("T2")
	teacher1, err := domain.NewTeacher(t1, "Science", 10, nil)
	require.NoError(t, err)
	teacher2, err := domain.NewTeacher(t2, "Science", 10, nil)
	require.NoError(t, err)
	template, err := domain.NewSection("S001", "BIO101", &t1, 20, "Science", "")
	require.NoError(t, err)
	sibling, err := domain.NewSection("S002", "BIO101", &t2, 20, "Science", "")
	require.NoError(t, err)
	catalog := domain.Catalog{Sections: []domain.Section{template, sibling}, Teachers: []domain.Teacher{teacher1, teacher2}}

	applier := NewApplier(catalog)
	outcomes, next := applier.Apply([]Action{{Type: Add, SectionID: "S001"}}, discardLogger())

	require.True(t, outcomes[0].Applied)
	require.Len(t, next.Sections, 3)
	added := outcomes[0].Produced[0]
	assert.Equal(t, domain.CourseID("BIO101"), added.CourseID)
	assert.Equal(t, "Science", added.Department)
	assert.Equal(t, domain.DefaultDepartmentCapacity["Science"], added.Capacity)
}

func TestApplyAdd_RefusesWhenTemplateSectionMissing(t *testing.T) {
	catalog := domain.Catalog{}
	applier := NewApplier(catalog)
	outcomes, _ := applier.Apply([]Action{{Type: Add, SectionID: "S999"}}, discardLogger())

	assert.False(t, outcomes[0].Applied)
	assert.Contains(t, outcomes[0].Refusal, "does not exist")
}

func TestApplySplit_PrefersAnotherTeacherOfTheSameCourseOverOriginal(t *testing.T) {
	t1 := domain.TeacherID("T1")
	t2 := domain.TeacherID("T2")
	teacher1, err := domain.NewTeacher(t1, "Science", 10, nil)
	require.NoError(t, err)
	teacher2, err := domain.NewTeacher(t2, "Science", 10, nil)
	require.NoError(t, err)
	section, err := domain.NewSection("S001", "BIO101", &t1, 40, "Science", "")
	require.NoError(t, err)
	sibling, err := domain.NewSection("S002", "BIO101", &t2, 20, "Science", "")
	require.NoError(t, err)
	catalog := domain.Catalog{Sections: []domain.Section{section, sibling}, Teachers: []domain.Teacher{teacher1, teacher2}}

	applier := NewApplier(catalog)
	outcomes, _ := applier.Apply([]Action{{Type: Split, SectionID: "S001"}}, discardLogger())

	require.True(t, outcomes[0].Applied)
	newSection := outcomes[0].Produced[0]
	require.NotNil(t, newSection.TeacherID)
	assert.Equal(t, t2, *newSection.TeacherID)
}

func TestApplySplit_RefusesWhenNoTeacherIsUnderTheCap(t *testing.T) {
	t1 := domain.TeacherID("T1")
	teacher, err := domain.NewTeacher(t1, "Science", 10, nil)
	require.NoError(t, err)

	var sections []domain.Section
	for i := 0; i < domain.MaxSectionsPerTeacherForNewSection; i++ {
		s, err := domain.NewSection(domain.SectionID(fmt.Sprintf("S%03d", i)), "BIO101", &t1, 40, "Science", "")
		require.NoError(t, err)
		sections = append(sections, s)
	}
	catalog := domain.Catalog{Sections: sections, Teachers: []domain.Teacher{teacher}}

	applier := NewApplier(catalog)
	outcomes, _ := applier.Apply([]Action{{Type: Split, SectionID: sections[0].ID}}, discardLogger())

	assert.False(t, outcomes[0].Applied)
	assert.Contains(t, outcomes[0].Refusal, "no teacher available")
}
