package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_HandlerServesMetrics(t *testing.T) {
	r := New()
	r.IterationCompleted()
	r.Fallback("milp", "infeasible")
	r.StageDuration("greedy", 0.5)
	r.FinalUtilization(0.8)
	r.ActionApplied("split")
	r.ActionRefused("remove")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scheduler_iterations_total 1")
}

func TestNilRecorder_MethodsAreNoOps(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.IterationCompleted()
		r.Fallback("stage", "reason")
		r.StageDuration("stage", 1)
		r.FinalUtilization(0.5)
		r.ActionApplied("split")
		r.ActionRefused("merge")
		r.Handler()
	})
}
