package projection

import (
	"testing"
	"time"

	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/aevon-lab/tally/internal/core/snapshot"
	"github.com/aevon-lab/tally/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, metrics *observability.Metrics, defs ...rollup.Definition) (*Service, *snapshot.Store) {
	t.Helper()
	if len(defs) == 0 {
		defs = rollup.Builtins()
	}
	reg, err := rollup.NewRegistry(defs...)
	require.NoError(t, err)

	store := snapshot.NewStore()
	svc := NewService(reg, store, metrics)
	svc.nowFn = func() time.Time { return fixedNow }
	return svc, store
}

func dailyRows(n int) []rollup.Row {
	rows := make([]rollup.Row, 0, n)
	day := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rows = append(rows, rollup.DailySalesRow{
			SaleDate:     day.AddDate(0, 0, -i).Format(time.DateOnly),
			TotalOrders:  2,
			TotalRevenue: decimal.NewFromInt(10),
		})
	}
	return rows
}

func withSettings(defs []rollup.Definition, name string, settings rollup.Settings) []rollup.Definition {
	for i := range defs {
		if defs[i].Name == name {
			defs[i].Settings = settings
		}
	}
	return defs
}

func TestService_ListUninitialized(t *testing.T) {
	svc, _ := newTestService(t, nil)

	resp, err := svc.List(ListRequest{Rollup: rollup.DailySales})
	require.NoError(t, err)
	require.False(t, resp.Initialized)
	require.Nil(t, resp.ComputedAt)
	require.Nil(t, resp.StalenessSeconds)
	require.Zero(t, resp.Total)
	require.NotNil(t, resp.Rows)
	require.Empty(t, resp.Rows)
	require.Equal(t, rollup.DefaultListLimit, resp.Limit)
}

func TestService_ListPagination(t *testing.T) {
	svc, store := newTestService(t, nil)

	computedAt := fixedNow.Add(-90 * time.Second)
	snap := rollup.NewSnapshot(rollup.DailySales, computedAt, dailyRows(5), 10)
	snap.RunID = "run-1"
	require.True(t, store.SwapIn(snap))

	tests := []struct {
		name     string
		limit    int
		offset   int
		wantKeys []string
	}{
		{name: "first page", limit: 2, offset: 0, wantKeys: []string{"2024-02-29", "2024-02-28"}},
		{name: "second page", limit: 2, offset: 2, wantKeys: []string{"2024-02-27", "2024-02-26"}},
		{name: "short last page", limit: 2, offset: 4, wantKeys: []string{"2024-02-25"}},
		{name: "offset past end", limit: 2, offset: 9, wantKeys: nil},
		{name: "default limit", limit: 0, offset: 3, wantKeys: []string{"2024-02-26", "2024-02-25"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.List(ListRequest{Rollup: rollup.DailySales, Limit: tc.limit, Offset: tc.offset})
			require.NoError(t, err)
			require.True(t, resp.Initialized)
			require.Equal(t, 5, resp.Total)
			require.Equal(t, "run-1", resp.RunID)
			require.Equal(t, computedAt, *resp.ComputedAt)
			require.Equal(t, int64(90), *resp.StalenessSeconds)

			var keys []string
			for _, row := range resp.Rows {
				keys = append(keys, row.GroupKey())
			}
			require.Equal(t, tc.wantKeys, keys)
		})
	}
}

func TestService_ListValidation(t *testing.T) {
	defs := withSettings(rollup.Builtins(), rollup.TopProducts, rollup.Settings{DefaultLimit: 10, MaxLimit: 100})
	svc, _ := newTestService(t, nil, defs...)

	tests := []struct {
		name    string
		req     ListRequest
		wantErr error
	}{
		{name: "unknown rollup", req: ListRequest{Rollup: "weekly_sales"}, wantErr: rollup.ErrUnknownRollup},
		{name: "negative limit", req: ListRequest{Rollup: rollup.TopProducts, Limit: -1}, wantErr: ErrInvalidQuery},
		{name: "limit above max", req: ListRequest{Rollup: rollup.TopProducts, Limit: 101}, wantErr: ErrInvalidQuery},
		{name: "negative offset", req: ListRequest{Rollup: rollup.TopProducts, Offset: -5}, wantErr: ErrInvalidQuery},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(tc.req)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	resp, err := svc.List(ListRequest{Rollup: rollup.TopProducts})
	require.NoError(t, err)
	require.Equal(t, 10, resp.Limit)

	resp, err = svc.List(ListRequest{Rollup: rollup.TopProducts, Limit: 100})
	require.NoError(t, err)
	require.Equal(t, 100, resp.Limit)
}

func TestService_ReadersKeepTheirSnapshotAcrossSwaps(t *testing.T) {
	svc, store := newTestService(t, nil)

	require.True(t, store.SwapIn(rollup.NewSnapshot(rollup.DailySales, fixedNow.Add(-time.Hour), dailyRows(3), 3)))
	before, err := svc.List(ListRequest{Rollup: rollup.DailySales})
	require.NoError(t, err)

	require.True(t, store.SwapIn(rollup.NewSnapshot(rollup.DailySales, fixedNow, dailyRows(1), 1)))
	after, err := svc.List(ListRequest{Rollup: rollup.DailySales})
	require.NoError(t, err)

	require.Len(t, before.Rows, 3)
	require.Equal(t, 3, before.Total)
	require.Len(t, after.Rows, 1)
	require.Equal(t, int64(0), *after.StalenessSeconds)
}

func TestService_Summary(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	svc, store := newTestService(t, metrics)

	summary, err := svc.Summary(rollup.TopProducts)
	require.NoError(t, err)
	require.False(t, summary.Initialized)
	require.Nil(t, summary.ComputedAt)
	require.Nil(t, summary.StalenessSeconds)
	require.Equal(t, "product_id", summary.KeyColumn)

	snap := rollup.NewSnapshot(rollup.TopProducts, fixedNow.Add(-2*time.Minute), nil, 42)
	snap.Fingerprint = "fp"
	require.True(t, store.SwapIn(snap))

	summary, err = svc.Summary(rollup.TopProducts)
	require.NoError(t, err)
	require.True(t, summary.Initialized)
	require.Zero(t, summary.RowCount)
	require.Equal(t, int64(42), summary.SourceRowCount)
	require.Equal(t, "fp", summary.Fingerprint)
	require.Equal(t, int64(120), *summary.StalenessSeconds)

	_, err = svc.Summary("weekly_sales")
	require.ErrorIs(t, err, rollup.ErrUnknownRollup)

	require.Equal(t, 2.0, testutil.ToFloat64(metrics.QueriesTotal.WithLabelValues(rollup.TopProducts, "summary")))
}

func TestService_StalenessClampedForFutureSnapshots(t *testing.T) {
	svc, store := newTestService(t, nil)
	require.True(t, store.SwapIn(rollup.NewSnapshot(rollup.DailySales, fixedNow.Add(time.Minute), nil, 0)))

	summary, err := svc.Summary(rollup.DailySales)
	require.NoError(t, err)
	require.Equal(t, int64(0), *summary.StalenessSeconds)
}

func TestService_SummariesInRegistryOrder(t *testing.T) {
	svc, store := newTestService(t, nil)
	require.True(t, store.SwapIn(rollup.NewSnapshot(rollup.UserEngagement, fixedNow, nil, 0)))

	summaries := svc.Summaries()
	require.Len(t, summaries, 4)

	names := make([]string, 0, len(summaries))
	for _, s := range summaries {
		names = append(names, s.Rollup)
	}
	require.Equal(t, []string{rollup.DailySales, rollup.TopProducts, rollup.CategoryRevenue, rollup.UserEngagement}, names)
	require.False(t, summaries[0].Initialized)
	require.True(t, summaries[3].Initialized)
}

func TestService_Dashboard(t *testing.T) {
	svc, store := newTestService(t, nil)

	require.True(t, store.SwapIn(rollup.NewSnapshot(rollup.DailySales, fixedNow, dailyRows(40), 80)))
	require.True(t, store.SwapIn(rollup.NewSnapshot(rollup.CategoryRevenue, fixedNow, []rollup.Row{
		rollup.CategoryRevenueRow{Category: "Books", TotalRevenue: decimal.NewFromInt(5)},
	}, 2)))

	dash := svc.Dashboard()
	require.Equal(t, fixedNow, dash.GeneratedAt)

	require.NotNil(t, dash.DailySales)
	require.True(t, dash.DailySales.Initialized)
	require.Len(t, dash.DailySales.Rows, 30)
	require.Equal(t, 40, dash.DailySales.Total)

	// Totals cover the 30 listed days only.
	require.True(t, decimal.NewFromInt(300).Equal(dash.TotalRevenue), dash.TotalRevenue.String())
	require.Equal(t, int64(60), dash.TotalOrders)

	require.NotNil(t, dash.TopProducts)
	require.False(t, dash.TopProducts.Initialized)
	require.Empty(t, dash.TopProducts.Rows)

	require.Len(t, dash.CategoryRevenue.Rows, 1)
	require.Equal(t, map[string]int{
		rollup.DailySales:      40,
		rollup.TopProducts:     0,
		rollup.CategoryRevenue: 1,
		rollup.UserEngagement:  0,
	}, dash.RowCounts)
}

func TestService_DashboardOmitsDisabledRollups(t *testing.T) {
	var defs []rollup.Definition
	for _, def := range rollup.Builtins() {
		if def.Name != rollup.UserEngagement {
			defs = append(defs, def)
		}
	}
	svc, _ := newTestService(t, nil, defs...)

	dash := svc.Dashboard()
	require.Nil(t, dash.UserEngagement)
	require.NotContains(t, dash.RowCounts, rollup.UserEngagement)
	require.True(t, dash.TotalRevenue.IsZero())
}
