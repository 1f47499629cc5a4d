// Package metrics exposes prometheus collectors for stream bindings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace is the prefix of every metric of this package.
	Namespace = "rxsig"

	// LabelKind distinguishes bindings fed by observables from flowables.
	LabelKind = "kind"
)

// Metrics groups the binding collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	// ActiveBindings is the number of bindings subscribed to their stream.
	ActiveBindings *prometheus.GaugeVec

	// Emissions counts the values received by bindings.
	Emissions *prometheus.CounterVec

	// Failures counts the streams that ended with an error.
	Failures *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ActiveBindings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_bindings",
			Help:      "Number of bindings currently subscribed to a stream",
		}, []string{LabelKind}),

		Emissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "emissions_total",
			Help:      "Number of values received by bindings",
		}, []string{LabelKind}),

		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "failures_total",
			Help:      "Number of bound streams terminated by an error",
		}, []string{LabelKind}),
	}

	if reg != nil {
		reg.MustRegister(m.ActiveBindings, m.Emissions, m.Failures)
	}

	return m
}

// BindingOpened records a binding subscribing to its stream.
func (m *Metrics) BindingOpened(kind string) {
	if m == nil {
		return
	}
	m.ActiveBindings.WithLabelValues(kind).Inc()
}

// BindingClosed records a bound stream terminating.
func (m *Metrics) BindingClosed(kind string) {
	if m == nil {
		return
	}
	m.ActiveBindings.WithLabelValues(kind).Dec()
}

// Emitted records one value received by a binding.
func (m *Metrics) Emitted(kind string) {
	if m == nil {
		return
	}
	m.Emissions.WithLabelValues(kind).Inc()
}

// Failed records a bound stream failing.
func (m *Metrics) Failed(kind string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(kind).Inc()
}
