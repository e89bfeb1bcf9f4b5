package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the remediation module.
type Metrics struct {
	// Fix attempts by fix code and outcome
	FixAttempts *prometheus.CounterVec

	// Remediation runs by result (completed, cooldown, not_found)
	Runs *prometheus.CounterVec
}

// New creates a Metrics instance with all remediation metrics registered.
func New() *Metrics {
	return &Metrics{
		FixAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vayva_remediation_fix_attempts_total",
			Help: "Total automated fix attempts by fix code and outcome",
		}, []string{"fix_code", "outcome"}),

		Runs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vayva_remediation_runs_total",
			Help: "Total remediation runs by result",
		}, []string{"result"}),
	}
}

// IncrementFix records one fix attempt outcome.
func (m *Metrics) IncrementFix(fixCode, outcome string) {
	if m != nil {
		m.FixAttempts.WithLabelValues(fixCode, outcome).Inc()
	}
}

// IncrementRun records one remediation run.
func (m *Metrics) IncrementRun(result string) {
	if m != nil {
		m.Runs.WithLabelValues(result).Inc()
	}
}
