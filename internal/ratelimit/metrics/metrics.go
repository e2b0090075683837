package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejected        *prometheus.CounterVec
	FallbackServed  prometheus.Counter
	PrimaryFailures prometheus.Counter
	CircuitOpen     prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hkid_ratelimit_rejected_total",
			Help: "Total requests rejected by rate limiting, by endpoint class",
		}, []string{"class"}),
		FallbackServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "hkid_ratelimit_fallback_checks_total",
			Help: "Total rate limit checks served by the in-memory fallback",
		}),
		PrimaryFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "hkid_ratelimit_primary_failures_total",
			Help: "Total rate limit store errors from the primary store",
		}),
		CircuitOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hkid_ratelimit_circuit_open",
			Help: "1 while the rate limit store circuit breaker is open",
		}),
	}
}

func (m *Metrics) IncrementRejected(class string) {
	if m != nil {
		m.Rejected.WithLabelValues(class).Inc()
	}
}

func (m *Metrics) IncrementFallback() {
	if m != nil {
		m.FallbackServed.Inc()
	}
}

func (m *Metrics) IncrementPrimaryFailures() {
	if m != nil {
		m.PrimaryFailures.Inc()
	}
}

func (m *Metrics) SetCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitOpen.Set(1)
		return
	}
	m.CircuitOpen.Set(0)
}
