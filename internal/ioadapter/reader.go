// Package ioadapter reads the CSV input set and writes the CSV report set
// the spec's file-based pipeline runs on, grounded on the teacher's own
// encoding/csv-based internal/loader package — this system never needed a
// JSON course catalog, so only the CSV half of the teacher's loader is
// carried forward.
package ioadapter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// readCSV opens path and reads every record, treating the first row as a
// header to be skipped by the caller's loop starting at index 1.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioadapter: opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ioadapter: reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ioadapter: %s has no rows", path)
	}
	return records, nil
}

// ReadCatalog loads the full input set from dir: Period.csv,
// Teacher_Info.csv, Teacher_unavailability.csv, Sections_Information.csv,
// Student_Info.csv, Student_Preference_Info.csv.
func ReadCatalog(dir string) (domain.Catalog, error) {
	periods, err := readPeriods(filepath.Join(dir, "Period.csv"))
	if err != nil {
		return domain.Catalog{}, err
	}

	unavailability, err := readUnavailability(filepath.Join(dir, "Teacher_unavailability.csv"))
	if err != nil {
		return domain.Catalog{}, err
	}

	teachers, err := readTeachers(filepath.Join(dir, "Teacher_Info.csv"), unavailability)
	if err != nil {
		return domain.Catalog{}, err
	}

	sections, err := readSections(filepath.Join(dir, "Sections_Information.csv"))
	if err != nil {
		return domain.Catalog{}, err
	}

	students, err := readStudents(filepath.Join(dir, "Student_Info.csv"))
	if err != nil {
		return domain.Catalog{}, err
	}

	preferences, err := readPreferences(filepath.Join(dir, "Student_Preference_Info.csv"))
	if err != nil {
		return domain.Catalog{}, err
	}

	return domain.Catalog{
		Periods:      periods,
		Teachers:     teachers,
		Students:     students,
		Sections:     sections,
		Preferences:  preferences,
		Restrictions: domain.DefaultCoursePeriodRestrictions(),
	}, nil
}

func readPeriods(path string) ([]domain.Period, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Period, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < 5 {
			return nil, fmt.Errorf("ioadapter: %s row %d: expected 5 columns, got %d", path, i+2, len(row))
		}
		day, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: day_of_week: %w", path, i+2, err)
		}
		p, err := domain.NewPeriod(domain.PeriodID(row[0]), row[1], row[2], row[3], day)
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: %w", path, i+2, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func readUnavailability(path string) (map[domain.TeacherID][]domain.PeriodID, error) {
	result := make(map[domain.TeacherID][]domain.PeriodID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return result, nil
	}
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	for i, row := range records[1:] {
		if len(row) < 2 {
			return nil, fmt.Errorf("ioadapter: %s row %d: expected 2 columns, got %d", path, i+2, len(row))
		}
		teacherID := domain.TeacherID(row[0])
		result[teacherID] = append(result[teacherID], domain.PeriodID(row[1]))
	}
	return result, nil
}

func readTeachers(path string, unavailability map[domain.TeacherID][]domain.PeriodID) ([]domain.Teacher, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Teacher, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("ioadapter: %s row %d: expected 3 columns, got %d", path, i+2, len(row))
		}
		maxSections, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: max_sections: %w", path, i+2, err)
		}
		id := domain.TeacherID(row[0])
		t, err := domain.NewTeacher(id, row[1], maxSections, unavailability[id])
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: %w", path, i+2, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func readSections(path string) ([]domain.Section, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Section, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < 6 {
			return nil, fmt.Errorf("ioadapter: %s row %d: expected 6 columns, got %d", path, i+2, len(row))
		}
		capacity, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: capacity: %w", path, i+2, err)
		}
		var teacherID *domain.TeacherID
		if row[2] != "" {
			t := domain.TeacherID(row[2])
			teacherID = &t
		}
		s, err := domain.NewSection(domain.SectionID(row[0]), domain.CourseID(row[1]), teacherID, capacity, row[4], row[5])
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: %w", path, i+2, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func readStudents(path string) ([]domain.Student, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Student, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("ioadapter: %s row %d: expected 3 columns, got %d", path, i+2, len(row))
		}
		grade, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: grade_level: %w", path, i+2, err)
		}
		specialNeeds, err := strconv.ParseBool(row[2])
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: has_special_needs: %w", path, i+2, err)
		}
		s, err := domain.NewStudent(domain.StudentID(row[0]), grade, specialNeeds)
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: %w", path, i+2, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// readPreferences expects one row per (student, course) in wishlist order:
// student_id,course_id,required. Rows are grouped by student, preserving
// the file's row order as preference rank.
func readPreferences(path string) ([]domain.StudentPreference, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	order := make([]domain.StudentID, 0)
	preferred := make(map[domain.StudentID][]domain.CourseID)
	required := make(map[domain.StudentID][]domain.CourseID)
	seen := make(map[domain.StudentID]bool)

	for i, row := range records[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("ioadapter: %s row %d: expected 3 columns, got %d", path, i+2, len(row))
		}
		studentID := domain.StudentID(row[0])
		courseID := domain.CourseID(row[1])
		isRequired, err := strconv.ParseBool(row[2])
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s row %d: required: %w", path, i+2, err)
		}
		if !seen[studentID] {
			seen[studentID] = true
			order = append(order, studentID)
		}
		preferred[studentID] = append(preferred[studentID], courseID)
		if isRequired {
			required[studentID] = append(required[studentID], courseID)
		}
	}

	out := make([]domain.StudentPreference, 0, len(order))
	for _, studentID := range order {
		p, err := domain.NewStudentPreference(studentID, preferred[studentID], required[studentID])
		if err != nil {
			return nil, fmt.Errorf("ioadapter: %s: %w", path, err)
		}
		out = append(out, p)
	}
	return out, nil
}
