package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeForbidden = "forbidden"
	OutcomeError     = "error"
)

// RosterMetrics records roster operations.
type RosterMetrics interface {
	RecordOperation(operation, outcome string)
	RecordDuration(operation string, d time.Duration)
}

type prometheusRosterMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRosterMetrics registers the roster collectors on reg.
func NewRosterMetrics(reg prometheus.Registerer) (RosterMetrics, error) {
	m := &prometheusRosterMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_operations_total",
			Help: "Roster operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_operation_duration_seconds",
			Help:    "Duration of roster operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{m.operations, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusRosterMetrics) RecordOperation(operation, outcome string) {
	m.operations.WithLabelValues(operation, outcome).Inc()
}

func (m *prometheusRosterMetrics) RecordDuration(operation string, d time.Duration) {
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

type noop struct{}

// NewNoop returns metrics that discard everything.
func NewNoop() RosterMetrics { return noop{} }

func (noop) RecordOperation(string, string) {}
func (noop) RecordDuration(string, time.Duration) {}
