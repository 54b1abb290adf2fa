package domain

// Course names carrying special scoring behavior in the greedy constructor
// (spec.md §4.2) beyond the plain course-period restriction table.
const (
	CourseMedicalCareer CourseID = "Medical Career"
	CourseHeroesTeach   CourseID = "Heroes Teach"
	CourseSportsMed     CourseID = "Sports Med"
)

// SpecialNeedsSectionCap is the MILP hard cap (spec.md §4.3, constraint 8)
// on special-needs students per section.
const SpecialNeedsSectionCap = 12

// UtilizationLow and UtilizationHigh bound the "good" utilization band used
// by the analyzer (spec.md §4.4): low < 0.30, good in [0.30, 0.90], high > 0.90.
const (
	UtilizationLow  = 0.30
	UtilizationHigh = 0.90
)

// DefaultUnderutilizationThreshold (τ) is the default utilization floor used
// by the iteration driver to select the underutilized set (spec.md §4.4/§4.6).
const DefaultUnderutilizationThreshold = 0.75

// MergeCapacityCap is the policy ceiling applied to a MERGE action's summed
// capacity (spec.md §4.5).
const MergeCapacityCap = 35

// MaxSectionsPerTeacherForNewSection bounds how many sections a teacher may
// already have before SPLIT/ADD refuses to assign them a new section
// (spec.md §4.5).
const MaxSectionsPerTeacherForNewSection = 6

// MinSplitCapacity and MinSplitHalf gate SPLIT eligibility: the source
// section must exceed MinSplitCapacity and both resulting halves must be at
// least MinSplitHalf (spec.md §4.5).
const (
	MinSplitCapacity = 30
	MinSplitHalf     = 15
)

// DefaultDepartmentCapacity is the fallback ADD capacity per department
// (spec.md §4.5); departments not listed use DefaultCapacityOther.
var DefaultDepartmentCapacity = map[string]int{
	"Special": 15,
	"PE":      35,
	"Science": 30,
}

// DefaultCapacityOther is used for ADD when the department has no entry in
// DefaultDepartmentCapacity.
const DefaultCapacityOther = 25
