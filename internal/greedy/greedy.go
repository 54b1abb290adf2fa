package greedy

import (
	"github.com/rs/zerolog"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// Construct runs the two phases of spec.md §4.2 — section→period, then
// student→section — and returns a feasible Schedule satisfying invariants
// (1)-(5) and (7), with (6) enforced hard, plus the residuals of any
// sections or preferences that could not be satisfied.
func Construct(catalog domain.Catalog, log zerolog.Logger) (*Result, error) {
	restrictions, err := catalog.Restrictions.Resolve(catalog.Periods)
	if err != nil {
		return nil, err
	}

	idx := buildCatalogIndex(catalog.Teachers, catalog.Sections, catalog.Preferences, restrictions)

	schedule, unscheduled := scheduleSections(catalog.Sections, catalog.Periods, idx, log)
	log.Info().
		Int("sections_total", len(catalog.Sections)).
		Int("sections_scheduled", schedule.ScheduledSectionCount()).
		Int("sections_unscheduled", len(unscheduled)).
		Msg("greedy: section→period phase complete")

	prefsByStudent := make(map[domain.StudentID]domain.StudentPreference, len(catalog.Preferences))
	for _, p := range catalog.Preferences {
		prefsByStudent[p.StudentID] = p
	}

	st := newStudentAssignState(schedule)
	missed := assignStudents(catalog.Students, prefsByStudent, st, log)

	log.Info().
		Int("students_total", len(catalog.Students)).
		Int("assignments_made", len(schedule.Assignments())).
		Int("missed_preferences", len(missed)).
		Msg("greedy: student→section phase complete")

	return &Result{
		Schedule:            schedule,
		UnscheduledSections: unscheduled,
		MissedPreferences:   missed,
	}, nil
}
