package ioadapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udpschedule/scheduler-core/internal/analyzer"
	"github.com/udpschedule/scheduler-core/internal/domain"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadCatalog_ParsesAllInputFiles(t *testing.T) {
	dir := t.TempDir()

	writeFixture(t, dir, "Period.csv", "period_id,name,start,end,day_of_week\nP1,R1,08:00,08:50,1\nP2,R2,09:00,09:50,1\n")
	writeFixture(t, dir, "Teacher_Info.csv", "teacher_id,department,max_sections\nT1,Science,6\n")
	writeFixture(t, dir, "Teacher_unavailability.csv", "teacher_id,period_id\nT1,P2\n")
	writeFixture(t, dir, "Sections_Information.csv", "section_id,course_id,teacher_id,capacity,department,room\nS1,BIO101,T1,20,Science,Room 1\n")
	writeFixture(t, dir, "Student_Info.csv", "student_id,grade_level,has_special_needs\nU1,9,false\n")
	writeFixture(t, dir, "Student_Preference_Info.csv", "student_id,course_id,required\nU1,BIO101,true\n")

	catalog, err := ReadCatalog(dir)
	require.NoError(t, err)

	require.Len(t, catalog.Periods, 2)
	require.Len(t, catalog.Teachers, 1)
	assert.True(t, catalog.Teachers[0].IsUnavailable("P2"))
	require.Len(t, catalog.Sections, 1)
	require.Len(t, catalog.Students, 1)
	require.Len(t, catalog.Preferences, 1)
	assert.True(t, catalog.Preferences[0].IsRequired("BIO101"))
}

func TestReadCatalog_MissingRequiredFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadCatalog(dir)
	assert.Error(t, err)
}

func TestWriteMasterSchedule_WritesOnlyScheduledSections(t *testing.T) {
	dir := t.TempDir()

	scheduled, err := domain.NewSection("S1", "BIO101", nil, 20, "Science", "Room 1")
	require.NoError(t, err)
	scheduled = scheduled.WithPeriod("P1")

	unscheduled, err := domain.NewSection("S2", "BIO101", nil, 20, "Science", "Room 2")
	require.NoError(t, err)

	schedule := domain.NewSchedule([]domain.Section{scheduled, unscheduled})

	path := filepath.Join(dir, "Master_Schedule.csv")
	require.NoError(t, WriteMasterSchedule(path, schedule))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Section ID,Course ID,Teacher ID,Period,Capacity,Room")
	assert.Contains(t, string(content), "S1,BIO101,,P1,20,Room 1")
	assert.NotContains(t, string(content), "S2,")
}

func TestWriteStudentAssignments_OnlyStudentAndSectionColumns(t *testing.T) {
	dir := t.TempDir()
	section, err := domain.NewSection("S1", "BIO101", nil, 20, "Science", "Room 1")
	require.NoError(t, err)
	section = section.WithPeriod("P1")
	schedule := domain.NewSchedule([]domain.Section{section})
	schedule.AddAssignment(domain.Assignment{StudentID: "U1", SectionID: "S1"})

	path := filepath.Join(dir, "Student_Assignments.csv")
	require.NoError(t, WriteStudentAssignments(path, schedule))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Student ID,Section ID\nU1,S1\n", string(content))
}

func TestWriteTeacherSchedule_ColumnOrder(t *testing.T) {
	dir := t.TempDir()
	teacherID := domain.TeacherID("T1")
	section, err := domain.NewSection("S1", "BIO101", &teacherID, 20, "Science", "Room 1")
	require.NoError(t, err)
	section = section.WithPeriod("P1")
	schedule := domain.NewSchedule([]domain.Section{section})

	path := filepath.Join(dir, "Teacher_Schedule.csv")
	require.NoError(t, WriteTeacherSchedule(path, schedule))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Teacher ID,Section ID,Course ID,Period\nT1,S1,BIO101,P1\n", string(content))
}

func TestWriteUtilizationReport_WritesClassificationPerSection(t *testing.T) {
	dir := t.TempDir()
	section, err := domain.NewSection("S1", "BIO101", nil, 10, "Science", "")
	require.NoError(t, err)

	stats := []analyzer.SectionUtilization{
		{Section: section, Enrollment: 1, Capacity: 10, Ratio: 0.1, Level: analyzer.LevelLow, Underutil: true},
	}

	path := filepath.Join(dir, "Utilization_Report.csv")
	require.NoError(t, WriteUtilizationReport(path, stats))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Section ID,Course ID,Capacity,Enrollment,Utilization,Status")
	assert.Contains(t, string(content), "S1,BIO101,10,1,0.1000,low")
}
