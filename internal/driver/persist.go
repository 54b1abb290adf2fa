package driver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/udpschedule/scheduler-core/internal/domain"
	"github.com/udpschedule/scheduler-core/internal/ioadapter"
)

// PersistIteration writes the four CSV reports for one iteration under
// outputDir/iterations/iteration_<n>/, mirroring the teacher's
// cmd/api/main.go per-step "export detailed report" pattern but run once
// per loop pass instead of once at the very end. Filenames and columns
// match spec.md §6's documented external interface exactly, since
// registrars and dashboards parse these files directly.
func PersistIteration(outputDir string, result IterationResult) error {
	dir := filepath.Join(outputDir, "iterations", fmt.Sprintf("iteration_%d", result.Iteration))

	if err := ioadapter.WriteMasterSchedule(filepath.Join(dir, "Master_Schedule.csv"), result.Schedule); err != nil {
		return err
	}
	if err := ioadapter.WriteStudentAssignments(filepath.Join(dir, "Student_Assignments.csv"), result.Schedule); err != nil {
		return err
	}
	if err := ioadapter.WriteTeacherSchedule(filepath.Join(dir, "Teacher_Schedule.csv"), result.Schedule); err != nil {
		return err
	}
	if err := ioadapter.WriteUtilizationReport(filepath.Join(dir, "Utilization_Report.csv"), result.Stats); err != nil {
		return err
	}
	return nil
}

// summary is the final/summary.json shape, grounded on the teacher's
// exportScheduleJSON (os.Create + json.Encoder with indentation), adapted
// from a single schedule dump to a run-level summary with per-iteration
// bookkeeping.
type summary struct {
	Iterations      int               `json:"iterations"`
	FinalUtilized   int               `json:"final_sections_scheduled"`
	FinalUnderutil  int               `json:"final_sections_underutilized"`
	PerIteration    []iterationRecord `json:"per_iteration"`
	FinalCourseMiss int               `json:"final_missed_preferences"`
}

type iterationRecord struct {
	Iteration      int  `json:"iteration"`
	SectionsTotal  int  `json:"sections_total"`
	Underutilized  int  `json:"sections_underutilized"`
	ActionsApplied int  `json:"actions_applied"`
	UsedFallback   bool `json:"used_fallback"`
}

// metricsReport is the final/metrics.json shape, matching spec.md §7's
// mandated field set exactly: the run's user-visible degraded-path record,
// distinct from the Prometheus Recorder and from summary.json.
type metricsReport struct {
	Iterations         int     `json:"iterations"`
	GreedyTime         float64 `json:"greedy_time"`
	MILPTime           float64 `json:"milp_time"`
	OracleTime         float64 `json:"oracle_time"`
	InitialUtilization float64 `json:"initial_utilization"`
	FinalUtilization   float64 `json:"final_utilization"`
	SectionsAdjusted   int     `json:"sections_adjusted"`
	Fallbacks          int     `json:"fallbacks"`
}

// PersistFinal writes outputDir/final/{summary.json,metrics.json} plus the
// final iteration's CSV reports under outputDir/final/.
func PersistFinal(outputDir string, result *Result) error {
	dir := filepath.Join(outputDir, "final")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("driver: creating %s: %w", dir, err)
	}

	last := result.Iterations[len(result.Iterations)-1]

	if err := ioadapter.WriteMasterSchedule(filepath.Join(dir, "Master_Schedule.csv"), result.FinalSchedule); err != nil {
		return err
	}
	if err := ioadapter.WriteStudentAssignments(filepath.Join(dir, "Student_Assignments.csv"), result.FinalSchedule); err != nil {
		return err
	}
	if err := ioadapter.WriteTeacherSchedule(filepath.Join(dir, "Teacher_Schedule.csv"), result.FinalSchedule); err != nil {
		return err
	}
	if err := ioadapter.WriteUtilizationReport(filepath.Join(dir, "Utilization_Report.csv"), result.FinalStats); err != nil {
		return err
	}

	sum := summary{
		Iterations:     len(result.Iterations),
		FinalUtilized:  result.FinalSchedule.ScheduledSectionCount(),
		FinalUnderutil: len(last.Underutil),
	}
	finalSections := make(map[domain.SectionID]domain.Section)
	for _, s := range result.FinalSchedule.Sections() {
		finalSections[s.ID] = s
	}
	for _, p := range result.FinalCatalog.Preferences {
		for _, c := range p.PreferredCourses {
			if !result.FinalSchedule.HasCourseAssignment(p.StudentID, c, finalSections) {
				sum.FinalCourseMiss++
			}
		}
	}
	for _, it := range result.Iterations {
		applied := 0
		for _, o := range it.Outcomes {
			if o.Applied {
				applied++
			}
		}
		sum.PerIteration = append(sum.PerIteration, iterationRecord{
			Iteration:      it.Iteration,
			SectionsTotal:  len(it.Catalog.Sections),
			Underutilized:  len(it.Underutil),
			ActionsApplied: applied,
			UsedFallback:   it.UsedFallback,
		})
	}

	if err := writeJSON(filepath.Join(dir, "summary.json"), sum); err != nil {
		return err
	}

	m := result.Summarize()
	metrics := metricsReport{
		Iterations:         m.Iterations,
		GreedyTime:         m.GreedySeconds,
		MILPTime:           m.MILPSeconds,
		OracleTime:         m.OracleSeconds,
		InitialUtilization: m.InitialUtilization,
		FinalUtilization:   m.FinalUtilization,
		SectionsAdjusted:   m.SectionsAdjusted,
		Fallbacks:          m.Fallbacks,
	}
	return writeJSON(filepath.Join(dir, "metrics.json"), metrics)
}

func writeJSON(path string, v interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("driver: creating %s: %w", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("driver: encoding %s: %w", path, err)
	}
	return nil
}
