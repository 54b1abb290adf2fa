package driver

import (
	"github.com/udpschedule/scheduler-core/internal/actions"
	"github.com/udpschedule/scheduler-core/internal/analyzer"
	"github.com/udpschedule/scheduler-core/internal/domain"
	"github.com/udpschedule/scheduler-core/internal/oracle"
)

// requestsFor builds one oracle.Request per underutilized section.
func requestsFor(underutil []analyzer.SectionUtilization) []oracle.Request {
	reqs := make([]oracle.Request, 0, len(underutil))
	for _, u := range underutil {
		reqs = append(reqs, oracle.Request{
			SectionID:  string(u.Section.ID),
			CourseID:   string(u.Section.CourseID),
			Department: u.Section.Department,
			Enrollment: u.Enrollment,
			Capacity:   u.Capacity,
			Ratio:      u.Ratio,
		})
	}
	return reqs
}

// actionsFor translates oracle proposals into actions.Action, skipping any
// proposal with an action type the applier doesn't recognize rather than
// failing the whole batch — one malformed proposal shouldn't block the
// rest (spec.md §4.6 fallback policy).
func actionsFor(proposals []oracle.Proposal) []actions.Action {
	out := make([]actions.Action, 0, len(proposals))
	for _, p := range proposals {
		act := actions.Action{
			SectionID: domain.SectionID(p.SectionID),
			MergeWith: domain.SectionID(p.MergeWith),
			Reason:    p.Reason,
		}
		switch p.Action {
		case string(actions.Split):
			act.Type = actions.Split
		case string(actions.Add):
			act.Type = actions.Add
		case string(actions.Remove):
			act.Type = actions.Remove
		case string(actions.Merge):
			act.Type = actions.Merge
		default:
			continue
		}
		out = append(out, act)
	}
	return out
}
