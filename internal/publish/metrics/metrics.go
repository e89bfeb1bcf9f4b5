package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the publish gate.
type Metrics struct {
	// Transition attempts by action and outcome
	Transitions *prometheus.CounterVec

	// Go-live attempts rejected by the readiness gate
	GateRejections prometheus.Counter
}

// New creates a Metrics instance with all publish metrics registered.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vayva_publish_transitions_total",
			Help: "Total publish-state transition attempts by action and outcome",
		}, []string{"action", "outcome"}),

		GateRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vayva_publish_gate_rejections_total",
			Help: "Total go-live attempts rejected because readiness was blocked",
		}),
	}
}

// IncrementTransition records one transition attempt outcome.
func (m *Metrics) IncrementTransition(action, outcome string) {
	if m != nil {
		m.Transitions.WithLabelValues(action, outcome).Inc()
	}
}

// IncrementGateRejection records one readiness-gated rejection.
func (m *Metrics) IncrementGateRejection() {
	if m != nil {
		m.GateRejections.Inc()
	}
}
