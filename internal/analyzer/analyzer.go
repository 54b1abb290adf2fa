// Package analyzer computes per-section enrollment utilization against a
// built Schedule and classifies sections as low/good/high, the input the
// iteration driver uses to decide which sections need an oracle-proposed
// structural action (spec.md §4.4 "Utilization analysis").
package analyzer

import (
	"sort"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

// Level is a section's utilization classification.
type Level int

const (
	LevelLow Level = iota
	LevelGood
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelHigh:
		return "high"
	default:
		return "good"
	}
}

// SectionUtilization is one section's enrollment snapshot.
type SectionUtilization struct {
	Section    domain.Section
	Enrollment int
	Capacity   int
	Ratio      float64
	Level      Level
	Underutil  bool
}

// classify buckets a ratio per spec.md's named thresholds
// (domain.UtilizationLow / domain.UtilizationHigh).
func classify(ratio float64) Level {
	switch {
	case ratio < domain.UtilizationLow:
		return LevelLow
	case ratio > domain.UtilizationHigh:
		return LevelHigh
	default:
		return LevelGood
	}
}

// Analyze computes a SectionUtilization for every scheduled section in the
// catalog, flagging sections strictly below threshold as underutilized. Only
// scheduled sections carry a meaningful ratio — a section the constructor
// never placed has no enrollment to speak of and is excluded, mirroring the
// teacher's `groupCoursesBySemester` pattern of only analyzing entities the
// solution actually produced something for.
func Analyze(schedule *domain.Schedule, threshold float64) []SectionUtilization {
	var out []SectionUtilization
	for _, s := range schedule.Sections() {
		if !s.IsScheduled() {
			continue
		}
		enrollment := schedule.Enrollment(s.ID)
		ratio := 0.0
		if s.Capacity > 0 {
			ratio = float64(enrollment) / float64(s.Capacity)
		}
		out = append(out, SectionUtilization{
			Section:    s,
			Enrollment: enrollment,
			Capacity:   s.Capacity,
			Ratio:      ratio,
			Level:      classify(ratio),
			Underutil:  ratio < threshold,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section.ID < out[j].Section.ID })
	return out
}

// Underutilized filters Analyze's output down to the sections flagged for
// the driver's action-proposal step, sorted for deterministic oracle
// request ordering.
func Underutilized(stats []SectionUtilization) []SectionUtilization {
	var out []SectionUtilization
	for _, s := range stats {
		if s.Underutil {
			out = append(out, s)
		}
	}
	return out
}
