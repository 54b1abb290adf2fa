package greedy

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// scheduleSections runs the three ordered sweeps from spec.md §4.2 —
// (A) restricted-course sections, (B) Sports Med sections, (C) everything
// else — over priority-sorted candidates. Within a sweep, each candidate
// takes the strictly highest positive-scoring period (ties broken by
// period name ascending); a candidate with no positive score is left
// unscheduled and reported, never aborting the run.
func scheduleSections(
	sections []domain.Section,
	periods []domain.Period,
	idx *catalogIndex,
	log zerolog.Logger,
) (*domain.Schedule, []domain.SectionID) {
	sorted := make([]domain.Section, len(sections))
	copy(sorted, sections)
	sort.Slice(sorted, func(i, j int) bool {
		pi, pj := sectionPriority(sorted[i], idx), sectionPriority(sorted[j], idx)
		if pi != pj {
			return pi > pj
		}
		return sorted[i].ID < sorted[j].ID
	})

	sortedPeriods := make([]domain.Period, len(periods))
	copy(sortedPeriods, periods)
	sort.Slice(sortedPeriods, func(i, j int) bool {
		return sortedPeriods[i].Name < sortedPeriods[j].Name
	})

	schedule := domain.NewSchedule(sections)
	state := newPeriodState()
	scheduled := make(map[domain.SectionID]bool, len(sections))

	place := func(candidates []domain.Section) {
		for _, sec := range candidates {
			var bestPeriod domain.PeriodID
			bestScore := 0.0
			for _, p := range sortedPeriods {
				sc := state.score(sec, p, idx)
				if sc > bestScore {
					bestScore, bestPeriod = sc, p.ID
				}
			}
			if bestScore > 0 {
				schedule.SetSectionPeriod(sec.ID, bestPeriod)
				state.record(sec, bestPeriod, idx)
				scheduled[sec.ID] = true
			}
		}
	}

	var restrictedSweep, sportsMedSweep, remainderSweep []domain.Section
	for _, sec := range sorted {
		switch {
		case idx.restrictions.IsRestricted(sec.CourseID):
			restrictedSweep = append(restrictedSweep, sec)
		case sec.CourseID == domain.CourseSportsMed:
			sportsMedSweep = append(sportsMedSweep, sec)
		default:
			remainderSweep = append(remainderSweep, sec)
		}
	}

	place(restrictedSweep)
	place(sportsMedSweep)
	place(remainderSweep)

	var unscheduled []domain.SectionID
	for _, sec := range sorted {
		if !scheduled[sec.ID] {
			unscheduled = append(unscheduled, sec.ID)
			log.Warn().Str("section_id", string(sec.ID)).Str("course_id", string(sec.CourseID)).
				Msg("greedy: no period scored positive, section left unscheduled")
		}
	}

	return schedule, unscheduled
}
