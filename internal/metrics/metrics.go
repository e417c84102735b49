// Package metrics records retry activity as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imamik/opsretry/internal/util/retry"
)

const namespace = "opsretry"

// Recorder owns a registry and the retry collectors registered on it.
type Recorder struct {
	registry *prometheus.Registry

	Retries     *prometheus.CounterVec
	LastAttempt *prometheus.GaugeVec
	Outcomes    *prometheus.CounterVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retries_total",
				Help:      "Rejected attempts that led to a retry, by operation and reason (error or result).",
			},
			[]string{"operation", "reason"},
		),
		LastAttempt: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "retry_attempt",
				Help:      "Index of the most recent rejected attempt per operation.",
			},
			[]string{"operation"},
		),
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Completed operations by final status.",
			},
			[]string{"operation", "status"},
		),
	}
	r.registry.MustRegister(r.Retries, r.LastAttempt, r.Outcomes)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns a retry.Handler that counts every retry. It never waits;
// chain it in front of a waiting handler.
func (r *Recorder) Handler() retry.Handler {
	return retry.HandlerFunc(func(_ context.Context, call retry.Call) error {
		r.Retries.WithLabelValues(call.Operation, call.Reason()).Inc()
		r.LastAttempt.WithLabelValues(call.Operation).Set(float64(call.Attempt))
		return nil
	})
}

// Observe counts the final outcome of an operation.
func (r *Recorder) Observe(operation string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	r.Outcomes.WithLabelValues(operation, status).Inc()
}

// HTTPHandler serves the registry in the Prometheus exposition format.
func (r *Recorder) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
