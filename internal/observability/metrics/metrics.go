// Package metrics exposes application-level prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the counters recorded by the calculation engine and the
// lifecycle services. Record methods are nil-safe so tests can pass a
// nil *Metrics.
type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	rejections   *prometheus.CounterVec
}

// New builds the registry with go/process collectors plus the app counters.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "defterhane_calculations_total",
		Help: "Calculator invocations by kind.",
	}, []string{"kind"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "defterhane_status_transitions_total",
		Help: "Applied document status transitions.",
	}, []string{"entity", "from", "to"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "defterhane_transition_rejections_total",
		Help: "Rejected document status transitions.",
	}, []string{"entity"})
	registry.MustRegister(calculations, transitions, rejections)

	return &Metrics{
		registry:     registry,
		calculations: calculations,
		transitions:  transitions,
		rejections:   rejections,
	}
}

// Registry returns the prometheus registry backing the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordCalculation counts one calculator invocation.
func (m *Metrics) RecordCalculation(kind string) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(kind).Inc()
}

// RecordTransition counts one applied status transition.
func (m *Metrics) RecordTransition(entity, from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(entity, from, to).Inc()
}

// RecordRejection counts one rejected status transition.
func (m *Metrics) RecordRejection(entity string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(entity).Inc()
}
