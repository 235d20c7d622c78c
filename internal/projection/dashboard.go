package projection

import (
	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/shopspring/decimal"
)

// Rows shown per dashboard section; 0 lists every row.
const (
	dashboardDailySalesLimit     = 30
	dashboardTopProductsLimit    = 10
	dashboardCategoryLimit       = 0
	dashboardUserEngagementLimit = 10
)

// Dashboard reads the leading rows of every enabled storefront rollup. Each
// section comes from that rollup's current snapshot; sections may have been
// computed at different times.
func (s *Service) Dashboard() *DashboardResponse {
	resp := &DashboardResponse{
		GeneratedAt:  s.nowFn(),
		TotalRevenue: decimal.Zero,
		RowCounts:    make(map[string]int),
	}

	resp.DailySales = s.section(rollup.DailySales, dashboardDailySalesLimit, resp.RowCounts)
	resp.TopProducts = s.section(rollup.TopProducts, dashboardTopProductsLimit, resp.RowCounts)
	resp.CategoryRevenue = s.section(rollup.CategoryRevenue, dashboardCategoryLimit, resp.RowCounts)
	resp.UserEngagement = s.section(rollup.UserEngagement, dashboardUserEngagementLimit, resp.RowCounts)

	if resp.DailySales != nil {
		for _, row := range resp.DailySales.Rows {
			day, ok := row.(rollup.DailySalesRow)
			if !ok {
				continue
			}
			resp.TotalRevenue = resp.TotalRevenue.Add(day.TotalRevenue)
			resp.TotalOrders += day.TotalOrders
		}
	}
	return resp
}

func (s *Service) section(name string, limit int, counts map[string]int) *DashboardSection {
	if _, err := s.registry.Get(name); err != nil {
		return nil
	}
	s.metrics.ObserveQuery(name, "dashboard")

	section := &DashboardSection{Rows: []rollup.Row{}}
	snap, ok := s.store.Current(name)
	if !ok {
		counts[name] = 0
		return section
	}

	computedAt := snap.ComputedAt
	section.Initialized = true
	section.ComputedAt = &computedAt
	section.Total = snap.RowCount()
	section.Rows = snap.Page(0, limit)
	counts[name] = snap.RowCount()
	return section
}
