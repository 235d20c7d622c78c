// Package observability provides Prometheus metrics for refreshes and reads.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tally"

// Metrics holds all Prometheus collectors of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	RefreshTotal       *prometheus.CounterVec
	RefreshDuration    *prometheus.HistogramVec
	RefreshRejected    *prometheus.CounterVec
	SnapshotRows       *prometheus.GaugeVec
	SnapshotSourceRows *prometheus.GaugeVec
	SnapshotTimestamp  *prometheus.GaugeVec
	QueriesTotal       *prometheus.CounterVec
}

// NewMetrics registers every collector on reg. Passing a fresh registry keeps
// tests isolated from the global default.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,

		RefreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "runs_total",
			Help:      "Total number of rollup refreshes by outcome",
		}, []string{"rollup", "status"}),
		RefreshDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "duration_seconds",
			Help:      "Rollup refresh duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}, []string{"rollup"}),
		RefreshRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "rejected_total",
			Help:      "Refresh requests rejected because one was already running",
		}, []string{"rollup"}),
		SnapshotRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "rows",
			Help:      "Row count of the current snapshot",
		}, []string{"rollup"}),
		SnapshotSourceRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "source_rows",
			Help:      "Raw rows scanned to build the current snapshot",
		}, []string{"rollup"}),
		SnapshotTimestamp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "computed_at_seconds",
			Help:      "Unix time the current snapshot was computed",
		}, []string{"rollup"}),
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "requests_total",
			Help:      "Rollup read requests by operation",
		}, []string{"rollup", "operation"}),
	}
}

// ObserveRefresh records the outcome of one refresh.
func (m *Metrics) ObserveRefresh(rollup, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RefreshTotal.WithLabelValues(rollup, status).Inc()
	m.RefreshDuration.WithLabelValues(rollup).Observe(elapsed.Seconds())
}

// ObserveRejected counts a refresh turned away by the reject policy.
func (m *Metrics) ObserveRejected(rollup string) {
	if m == nil {
		return
	}
	m.RefreshRejected.WithLabelValues(rollup).Inc()
}

// ObserveSnapshot publishes the shape of a newly current snapshot.
func (m *Metrics) ObserveSnapshot(rollup string, rows int, sourceRows int64, computedAt time.Time) {
	if m == nil {
		return
	}
	m.SnapshotRows.WithLabelValues(rollup).Set(float64(rows))
	m.SnapshotSourceRows.WithLabelValues(rollup).Set(float64(sourceRows))
	m.SnapshotTimestamp.WithLabelValues(rollup).Set(float64(computedAt.Unix()))
}

// ObserveQuery counts one read of rollup.
func (m *Metrics) ObserveQuery(rollup, operation string) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(rollup, operation).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
