// Package actions validates and applies the structural catalog mutations
// the oracle proposes between iterations: SPLIT, ADD, REMOVE, MERGE
// (spec.md §4.5). Every mutation is checked against a refusal rule before
// it touches the catalog — an applier that silently did something unsafe
// would corrupt the next iteration's input.
package actions

import "github.com/udpschedule/scheduler-core/internal/domain"

// Type names the four structural mutations a proposal may request.
type Type string

const (
	Split  Type = "split"
	Add    Type = "add"
	Remove Type = "remove"
	Merge  Type = "merge"
)

// Action is one proposed catalog mutation, as surfaced by the oracle (or
// fabricated directly by a caller that bypasses the oracle for testing).
// SectionID is the section the mutation targets: the section to split or
// remove, the template to add a sibling of, or the source to fold into
// MergeWith (spec.md §4.5) — it is always an existing section, matching
// the oracle's `{section_id, action, merge_with?, reason}` response shape.
type Action struct {
	Type      Type
	SectionID domain.SectionID

	// MergeWith is required for Merge and ignored otherwise.
	MergeWith domain.SectionID

	Reason string
}

// Outcome records what happened to one proposed Action.
type Outcome struct {
	Action   Action
	Applied  bool
	Refusal  string
	Produced []domain.Section // new sections created by Split/Add, if any
}
