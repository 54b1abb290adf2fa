package greedy

import "github.com/udpschedule/scheduler-core/internal/domain"

// periodState tracks everything the period-score shaping factors (spec.md
// §4.2) depend on as sections get scheduled one at a time: which periods a
// teacher already occupies, which restricted-allowed periods a course has
// already used, where Sports Med sections already sit, and per-(course,
// period) and per-period section counts.
type periodState struct {
	teacherPeriod          map[domain.TeacherID]map[domain.PeriodID]struct{}
	restrictedPeriodByCourse map[domain.CourseID]map[domain.PeriodID]struct{}
	sportsMedPeriods       map[domain.PeriodID]struct{}
	courseSectionsInPeriod map[domain.CourseID]map[domain.PeriodID]int
	totalInPeriod          map[domain.PeriodID]int
}

func newPeriodState() *periodState {
	return &periodState{
		teacherPeriod:            make(map[domain.TeacherID]map[domain.PeriodID]struct{}),
		restrictedPeriodByCourse: make(map[domain.CourseID]map[domain.PeriodID]struct{}),
		sportsMedPeriods:         make(map[domain.PeriodID]struct{}),
		courseSectionsInPeriod:   make(map[domain.CourseID]map[domain.PeriodID]int),
		totalInPeriod:            make(map[domain.PeriodID]int),
	}
}

// score computes the period-score for (section, period); 0 means forbidden.
func (ps *periodState) score(sec domain.Section, period domain.Period, idx *catalogIndex) float64 {
	restricted := idx.restrictions.IsRestricted(sec.CourseID)
	if restricted && !idx.restrictions.Allows(sec.CourseID, period.ID) {
		return 0
	}

	if sec.TeacherID != nil {
		if t, ok := idx.teachers[*sec.TeacherID]; ok && t.IsUnavailable(period.ID) {
			return 0
		}
		if busy, ok := ps.teacherPeriod[*sec.TeacherID]; ok {
			if _, taken := busy[period.ID]; taken {
				return 0
			}
		}
	}

	score := 1.0

	if restricted {
		used := ps.restrictedPeriodByCourse[sec.CourseID]
		if _, already := used[period.ID]; !already {
			score *= 2.0
		}
	}

	if _, occupied := ps.sportsMedPeriods[period.ID]; occupied {
		score *= 0.5
	}

	k := ps.courseSectionsInPeriod[sec.CourseID][period.ID]
	score /= 1 + 0.5*float64(k)

	m := ps.totalInPeriod[period.ID]
	score /= 1 + 0.1*float64(m)

	return score
}

// record commits sec's placement into period so subsequent score() calls
// see it.
func (ps *periodState) record(sec domain.Section, period domain.PeriodID, idx *catalogIndex) {
	if sec.TeacherID != nil {
		m := ps.teacherPeriod[*sec.TeacherID]
		if m == nil {
			m = make(map[domain.PeriodID]struct{})
			ps.teacherPeriod[*sec.TeacherID] = m
		}
		m[period] = struct{}{}
	}

	if idx.restrictions.IsRestricted(sec.CourseID) {
		m := ps.restrictedPeriodByCourse[sec.CourseID]
		if m == nil {
			m = make(map[domain.PeriodID]struct{})
			ps.restrictedPeriodByCourse[sec.CourseID] = m
		}
		m[period] = struct{}{}
	}

	if sec.CourseID == domain.CourseSportsMed {
		ps.sportsMedPeriods[period] = struct{}{}
	}

	cm := ps.courseSectionsInPeriod[sec.CourseID]
	if cm == nil {
		cm = make(map[domain.PeriodID]int)
		ps.courseSectionsInPeriod[sec.CourseID] = cm
	}
	cm[period]++
	ps.totalInPeriod[period]++
}
