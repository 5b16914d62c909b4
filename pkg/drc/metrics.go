package drc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "boardcheck"
	subsystem = "drc"
)

// Metrics instruments the checks. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	BooleanOps       *prometheus.CounterVec
	BBoxRejects      prometheus.Counter
	CourtyardBuilds  *prometheus.CounterVec
	Violations       *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
	Runs             prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. Tests pass
// prometheus.NewRegistry() to keep runs isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BooleanOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "boolean_ops_total",
				Help:      "Total number of polygon boolean operations by operation",
			},
			[]string{"op"},
		),
		BBoxRejects: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bbox_rejects_total",
				Help:      "Total number of pairs rejected by the bounding box test",
			},
		),
		CourtyardBuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "courtyard_builds_total",
				Help:      "Total number of courtyard builds by result",
			},
			[]string{"result"},
		),
		Violations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "violations_total",
				Help:      "Total number of reported violations by code and severity",
			},
			[]string{"code", "severity"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_duration_seconds",
				Help:      "Duration of provider runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"provider"},
		),
		Runs: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Total number of engine runs",
			},
		),
	}
}

// BooleanOp records one boolean operation.
func (m *Metrics) BooleanOp(op string) {
	if m == nil {
		return
	}
	m.BooleanOps.WithLabelValues(op).Inc()
}

// BBoxReject records a pair skipped by the bounding box test.
func (m *Metrics) BBoxReject() {
	if m == nil {
		return
	}
	m.BBoxRejects.Inc()
}

func (m *Metrics) courtyardBuilt(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "malformed"
	}
	m.CourtyardBuilds.WithLabelValues(result).Inc()
}

func (m *Metrics) violationReported(v Violation) {
	if m == nil {
		return
	}
	m.Violations.WithLabelValues(v.Code.String(), v.Severity.String()).Inc()
}

func (m *Metrics) providerFinished(name string, d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderDuration.WithLabelValues(name).Observe(d.Seconds())
}

func (m *Metrics) runStarted() {
	if m == nil {
		return
	}
	m.Runs.Inc()
}
