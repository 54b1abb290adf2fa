package actions

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// Applier validates and applies a batch of proposed actions against a
// catalog, producing the next iteration's catalog. It never mutates the
// Catalog it was built with — Apply returns a new one.
type Applier struct {
	catalog domain.Catalog

	sections          map[domain.SectionID]domain.Section
	sectionsByTeacher map[domain.TeacherID][]domain.Section
	sectionsByCourse  map[domain.CourseID][]domain.Section
	nextSectionSeq    int
}

// NewApplier indexes catalog for fast refusal-rule checks.
func NewApplier(catalog domain.Catalog) *Applier {
	a := &Applier{
		catalog:           catalog,
		sections:          make(map[domain.SectionID]domain.Section, len(catalog.Sections)),
		sectionsByTeacher: make(map[domain.TeacherID][]domain.Section),
		sectionsByCourse:  make(map[domain.CourseID][]domain.Section),
	}
	for _, s := range catalog.Sections {
		a.sections[s.ID] = s
		a.sectionsByCourse[s.CourseID] = append(a.sectionsByCourse[s.CourseID], s)
		if s.TeacherID != nil {
			a.sectionsByTeacher[*s.TeacherID] = append(a.sectionsByTeacher[*s.TeacherID], s)
		}
		if n := sectionSeq(s.ID); n >= a.nextSectionSeq {
			a.nextSectionSeq = n + 1
		}
	}
	return a
}

func sectionSeq(id domain.SectionID) int {
	var n int
	if _, err := fmt.Sscanf(string(id), "S%03d", &n); err != nil {
		return 0
	}
	return n
}

func (a *Applier) nextSectionID() domain.SectionID {
	id := domain.SectionID(fmt.Sprintf("S%03d", a.nextSectionSeq))
	a.nextSectionSeq++
	return id
}

// Apply validates and applies actions in order, returning an Outcome per
// action (in the same order) and the resulting catalog. A refused action
// leaves the catalog it was checked against untouched and does not abort
// the remaining actions in the batch.
func (a *Applier) Apply(proposed []Action, log zerolog.Logger) ([]Outcome, domain.Catalog) {
	outcomes := make([]Outcome, 0, len(proposed))

	for _, act := range proposed {
		var out Outcome
		switch act.Type {
		case Split:
			out = a.applySplit(act)
		case Add:
			out = a.applyAdd(act)
		case Remove:
			out = a.applyRemove(act)
		case Merge:
			out = a.applyMerge(act)
		default:
			out = Outcome{Action: act, Refusal: fmt.Sprintf("unknown action type %q", act.Type)}
		}

		if out.Applied {
			log.Info().Str("action", string(act.Type)).Str("section_id", string(act.SectionID)).
				Str("reason", act.Reason).Msg("actions: applied")
		} else {
			log.Warn().Str("action", string(act.Type)).Str("section_id", string(act.SectionID)).
				Str("refusal", out.Refusal).Msg("actions: refused")
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, a.snapshot()
}

func (a *Applier) snapshot() domain.Catalog {
	sections := make([]domain.Section, 0, len(a.sections))
	for _, s := range a.sections {
		sections = append(sections, s)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID < sections[j].ID })

	return domain.Catalog{
		Periods:      a.catalog.Periods,
		Teachers:     a.catalog.Teachers,
		Students:     a.catalog.Students,
		Sections:     sections,
		Preferences:  a.catalog.Preferences,
		Restrictions: a.catalog.Restrictions,
	}
}

func (a *Applier) addSection(s domain.Section) {
	a.sections[s.ID] = s
	a.sectionsByCourse[s.CourseID] = append(a.sectionsByCourse[s.CourseID], s)
	if s.TeacherID != nil {
		a.sectionsByTeacher[*s.TeacherID] = append(a.sectionsByTeacher[*s.TeacherID], s)
	}
}

func (a *Applier) removeSection(id domain.SectionID) {
	s, ok := a.sections[id]
	if !ok {
		return
	}
	delete(a.sections, id)
	a.sectionsByCourse[s.CourseID] = removeSection(a.sectionsByCourse[s.CourseID], id)
	if s.TeacherID != nil {
		a.sectionsByTeacher[*s.TeacherID] = removeSection(a.sectionsByTeacher[*s.TeacherID], id)
	}
}

func removeSection(list []domain.Section, id domain.SectionID) []domain.Section {
	out := list[:0]
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
