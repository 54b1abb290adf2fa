// Package metrics instruments the iteration driver with Prometheus
// collectors, grounded on noah-isme-sma-adp-api's
// internal/service/metrics_service.go: a private registry built once,
// collectors registered up front, an http.Handler exposed for an optional
// scrape endpoint — adapted here from HTTP/cache/DB metrics to the
// driver's own stages (iterations, fallbacks, per-stage duration, final
// utilization).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder instruments one driver run. A nil *Recorder is safe to call
// methods on — every method is a no-op — so the driver doesn't need to
// branch on whether metrics were enabled.
type Recorder struct {
	registry *prometheus.Registry
	handler  http.Handler

	iterationsTotal  prometheus.Counter
	fallbacksTotal   *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
	finalUtilization prometheus.Histogram
	actionsApplied   *prometheus.CounterVec
	actionsRefused   *prometheus.CounterVec
}

// New registers the collectors and builds the scrape handler.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	iterationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_iterations_total",
		Help: "Total number of driver iterations run.",
	})

	fallbacksTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_fallbacks_total",
		Help: "Total number of times a stage fell back to a degraded path.",
	}, []string{"stage", "reason"})

	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduler_stage_duration_seconds",
		Help:    "Duration of each driver stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	finalUtilization := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_final_utilization_ratio",
		Help:    "Per-section enrollment/capacity ratio at the final iteration.",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	actionsApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_actions_applied_total",
		Help: "Total structural actions applied, by type.",
	}, []string{"action"})

	actionsRefused := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_actions_refused_total",
		Help: "Total structural actions refused, by type.",
	}, []string{"action"})

	registry.MustRegister(
		iterationsTotal, fallbacksTotal, stageDuration, finalUtilization, actionsApplied, actionsRefused,
	)

	return &Recorder{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		iterationsTotal:  iterationsTotal,
		fallbacksTotal:   fallbacksTotal,
		stageDuration:    stageDuration,
		finalUtilization: finalUtilization,
		actionsApplied:   actionsApplied,
		actionsRefused:   actionsRefused,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

func (r *Recorder) IterationCompleted() {
	if r == nil {
		return
	}
	r.iterationsTotal.Inc()
}

func (r *Recorder) Fallback(stage, reason string) {
	if r == nil {
		return
	}
	r.fallbacksTotal.WithLabelValues(stage, reason).Inc()
}

func (r *Recorder) StageDuration(stage string, seconds float64) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}

func (r *Recorder) FinalUtilization(ratio float64) {
	if r == nil {
		return
	}
	r.finalUtilization.Observe(ratio)
}

func (r *Recorder) ActionApplied(action string) {
	if r == nil {
		return
	}
	r.actionsApplied.WithLabelValues(action).Inc()
}

func (r *Recorder) ActionRefused(action string) {
	if r == nil {
		return
	}
	r.actionsRefused.WithLabelValues(action).Inc()
}
