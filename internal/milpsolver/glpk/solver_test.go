package glpk

import (
	"testing"
	"time"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/stretchr/testify/assert"

	"github.com/udpschedule/scheduler-core/internal/milp"
)

func TestTranslateStatus(t *testing.T) {
	cases := []struct {
		name string
		in   glpk.MIPStatus
		want milp.Status
	}{
		{"optimal", glpk.OPT, milp.StatusOptimal},
		{"feasible_incumbent", glpk.FEAS, milp.StatusTimeLimitWithIncumbent},
		{"no_feasible_solution", glpk.NOFEAS, milp.StatusInfeasible},
		{"undefined", glpk.UNDEF, milp.StatusInfeasible},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, translateStatus(c.in))
		})
	}
}

func TestRemainingSeconds_ClampsToZeroPastDeadline(t *testing.T) {
	assert.Equal(t, 0.0, remainingSeconds(time.Now().Add(-time.Minute)))
}

func TestRemainingSeconds_ReportsPositiveBudgetBeforeDeadline(t *testing.T) {
	got := remainingSeconds(time.Now().Add(10 * time.Second))
	assert.Greater(t, got, 0.0)
	assert.LessOrEqual(t, got, 10.0)
}
