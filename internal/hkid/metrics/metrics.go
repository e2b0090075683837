package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Validation outcomes.
const (
	OutcomeValid    = "valid"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
)

// Generation modes.
const (
	ModeGiven       = "given"
	ModeRandomKnown = "random_known"
	ModeRandomAny   = "random_any"
)

// Metrics provides observability for the hkid module.
type Metrics struct {
	// Validation outcomes by result
	ValidationOutcome *prometheus.CounterVec

	// Generated numbers by prefix mode
	Generated *prometheus.CounterVec

	// Latency of service operations
	OperationLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hkid_validations_total",
			Help: "Total HKID validations by outcome",
		}, []string{"outcome"}), // outcome: "valid", "invalid", "rejected"

		Generated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hkid_generated_total",
			Help: "Total HKIDs generated by prefix mode",
		}, []string{"mode"}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hkid_operation_duration_seconds",
			Help:    "Duration of hkid service operations",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.25},
		}, []string{"operation"}),
	}
}

// IncrementValidation records a validation outcome.
func (m *Metrics) IncrementValidation(outcome string) {
	if m != nil {
		m.ValidationOutcome.WithLabelValues(outcome).Inc()
	}
}

// AddGenerated records n generated numbers.
func (m *Metrics) AddGenerated(mode string, n int) {
	if m != nil {
		m.Generated.WithLabelValues(mode).Add(float64(n))
	}
}

// ObserveOperation records how long an operation took.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
