package domain

import "fmt"

// CoursePeriodRestrictions maps a restricted course to the set of period
// *names* (not IDs — period names carry the policy meaning, per spec) its
// sections may be scheduled into. An absent course key means unrestricted:
// any period is allowed. This mirrors the teacher's RoomConstraints
// whitelist-with-defaults shape, keyed by course instead of by room.
type CoursePeriodRestrictions map[CourseID]map[string]struct{}

// DefaultCoursePeriodRestrictions returns the shipped policy defaults from
// spec.md §3: Medical Career and Heroes Teach are each pinned to a pair of
// period names.
func DefaultCoursePeriodRestrictions() CoursePeriodRestrictions {
	return CoursePeriodRestrictions{
		"Medical Career": {"R1": {}, "G1": {}},
		"Heroes Teach":   {"R2": {}, "G2": {}},
	}
}

// IsRestricted reports whether a course has a named period restriction.
func (r CoursePeriodRestrictions) IsRestricted(c CourseID) bool {
	_, ok := r[c]
	return ok
}

// AllowedNames returns the allowed period names for a restricted course, or
// nil if the course is unrestricted.
func (r CoursePeriodRestrictions) AllowedNames(c CourseID) map[string]struct{} {
	return r[c]
}

// ResolvedRestrictions is CoursePeriodRestrictions with period names resolved
// to PeriodIDs against a concrete Period set, computed once per model/greedy
// run. Unknown period names fail fast at construction rather than silently
// matching nothing.
type ResolvedRestrictions map[CourseID]map[PeriodID]struct{}

// Resolve turns period-name restrictions into period-ID restrictions,
// failing if a configured name does not correspond to any loaded period.
func (r CoursePeriodRestrictions) Resolve(periods []Period) (ResolvedRestrictions, error) {
	byName := make(map[string][]PeriodID)
	for _, p := range periods {
		byName[p.Name] = append(byName[p.Name], p.ID)
	}

	resolved := make(ResolvedRestrictions, len(r))
	for course, names := range r {
		allowed := make(map[PeriodID]struct{})
		for name := range names {
			ids, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("domain: course_period_restrictions: course %s references unknown period name %q", course, name)
			}
			for _, id := range ids {
				allowed[id] = struct{}{}
			}
		}
		resolved[course] = allowed
	}
	return resolved, nil
}

// IsRestricted reports whether a course has a resolved period restriction.
func (r ResolvedRestrictions) IsRestricted(c CourseID) bool {
	_, ok := r[c]
	return ok
}

// Allows reports whether period p is permitted for restricted course c.
// Unrestricted courses allow every period.
func (r ResolvedRestrictions) Allows(c CourseID, p PeriodID) bool {
	allowed, restricted := r[c]
	if !restricted {
		return true
	}
	_, ok := allowed[p]
	return ok
}

// AllowedPeriods returns the resolved allowed period IDs for a restricted
// course, or nil if unrestricted.
func (r ResolvedRestrictions) AllowedPeriods(c CourseID) map[PeriodID]struct{} {
	return r[c]
}
