package ioadapter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/udpschedule/scheduler-core/internal/analyzer"
	"github.com/udpschedule/scheduler-core/internal/domain"
)

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ioadapter: creating directory for %s: %w", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioadapter: creating %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("ioadapter: writing header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("ioadapter: writing row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("ioadapter: flushing %s: %w", path, err)
	}
	return nil
}

// WriteMasterSchedule writes one row per scheduled section, matching
// spec.md §6's documented Master_Schedule.csv column set exactly so
// downstream registrar/dashboard consumers can parse it without change.
func WriteMasterSchedule(path string, schedule *domain.Schedule) error {
	sections := schedule.Sections()
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID < sections[j].ID })

	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		if !s.IsScheduled() {
			continue
		}
		teacher := ""
		if s.TeacherID != nil {
			teacher = string(*s.TeacherID)
		}
		rows = append(rows, []string{
			string(s.ID),
			string(s.CourseID),
			teacher,
			string(*s.PeriodID),
			strconv.Itoa(s.Capacity),
			s.Room,
		})
	}

	header := []string{"Section ID", "Course ID", "Teacher ID", "Period", "Capacity", "Room"}
	return writeCSV(path, header, rows)
}

// WriteStudentAssignments writes one row per student↔section assignment,
// matching spec.md §6's Student_Assignments.csv column set exactly.
func WriteStudentAssignments(path string, schedule *domain.Schedule) error {
	assignments := schedule.Assignments()
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].StudentID != assignments[j].StudentID {
			return assignments[i].StudentID < assignments[j].StudentID
		}
		return assignments[i].SectionID < assignments[j].SectionID
	})

	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, []string{string(a.StudentID), string(a.SectionID)})
	}

	header := []string{"Student ID", "Section ID"}
	return writeCSV(path, header, rows)
}

// WriteTeacherSchedule writes one row per (teacher, scheduled section),
// matching spec.md §6's Teacher_Schedule.csv column set exactly.
func WriteTeacherSchedule(path string, schedule *domain.Schedule) error {
	sections := schedule.Sections()
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID < sections[j].ID })

	var rows [][]string
	for _, s := range sections {
		if !s.IsScheduled() || s.TeacherID == nil {
			continue
		}
		rows = append(rows, []string{string(*s.TeacherID), string(s.ID), string(s.CourseID), string(*s.PeriodID)})
	}

	header := []string{"Teacher ID", "Section ID", "Course ID", "Period"}
	return writeCSV(path, header, rows)
}

// WriteUtilizationReport writes one row per analyzed section, matching
// spec.md §6's Utilization_Report.csv column set exactly.
func WriteUtilizationReport(path string, stats []analyzer.SectionUtilization) error {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			string(s.Section.ID),
			string(s.Section.CourseID),
			strconv.Itoa(s.Capacity),
			strconv.Itoa(s.Enrollment),
			strconv.FormatFloat(s.Ratio, 'f', 4, 64),
			s.Level.String(),
		})
	}

	header := []string{"Section ID", "Course ID", "Capacity", "Enrollment", "Utilization", "Status"}
	return writeCSV(path, header, rows)
}
