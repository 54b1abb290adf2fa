package glpk

import "time"

// remainingSeconds returns the non-negative number of seconds until
// deadline, clamped to zero once it has already passed.
func remainingSeconds(deadline time.Time) float64 {
	d := time.Until(deadline).Seconds()
	if d < 0 {
		return 0
	}
	return d
}
