package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for lookups. A nil *Metrics
// records nothing.
type Metrics struct {
	Lookups        *prometheus.CounterVec
	SourceAttempts *prometheus.CounterVec
	SourceDuration *prometheus.HistogramVec
	AuditDropped   prometheus.Counter
	AuditFailed    prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "domaininfo_lookups_total",
			Help: "Resolved domain lookups by final status",
		}, []string{"status"}),
		SourceAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "domaininfo_source_attempts_total",
			Help: "Source attempts by source and result (ok or an error category)",
		}, []string{"source", "result"}),
		SourceDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "domaininfo_source_duration_seconds",
			Help:    "Time spent in each source attempt",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 10},
		}, []string{"source"}),
		AuditDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "domaininfo_audit_dropped_total",
			Help: "Lookups not recorded because the audit queue was full",
		}),
		AuditFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "domaininfo_audit_failed_total",
			Help: "Lookups the audit repository failed to store",
		}),
	}
}

func (m *Metrics) ObserveLookup(status string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveSource(source, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SourceAttempts.WithLabelValues(source, result).Inc()
	m.SourceDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (m *Metrics) IncrementAuditDropped() {
	if m == nil {
		return
	}
	m.AuditDropped.Inc()
}

func (m *Metrics) IncrementAuditFailed() {
	if m == nil {
		return
	}
	m.AuditFailed.Inc()
}
