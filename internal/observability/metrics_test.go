package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRefresh(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveRefresh("daily_sales", "succeeded", 250*time.Millisecond)
	m.ObserveRefresh("daily_sales", "succeeded", time.Second)
	m.ObserveRefresh("daily_sales", "failed", time.Second)
	m.ObserveRejected("daily_sales")

	require.Equal(t, 2.0, testutil.ToFloat64(m.RefreshTotal.WithLabelValues("daily_sales", "succeeded")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RefreshTotal.WithLabelValues("daily_sales", "failed")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RefreshRejected.WithLabelValues("daily_sales")))
	require.Equal(t, 1, testutil.CollectAndCount(m.RefreshDuration))
}

func TestMetrics_ObserveSnapshot(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	at := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	m.ObserveSnapshot("top_products", 42, 1000, at)

	require.Equal(t, 42.0, testutil.ToFloat64(m.SnapshotRows.WithLabelValues("top_products")))
	require.Equal(t, 1000.0, testutil.ToFloat64(m.SnapshotSourceRows.WithLabelValues("top_products")))
	require.Equal(t, float64(at.Unix()), testutil.ToFloat64(m.SnapshotTimestamp.WithLabelValues("top_products")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveRefresh("x", "succeeded", time.Second)
		m.ObserveRejected("x")
		m.ObserveSnapshot("x", 1, 1, time.Now())
		m.ObserveQuery("x", "list")
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveQuery("user_engagement", "list")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `tally_query_requests_total{operation="list",rollup="user_engagement"} 1`)
}
