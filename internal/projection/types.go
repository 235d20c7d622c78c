package projection

import (
	"time"

	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/shopspring/decimal"
)

// ListRequest selects a window of a rollup's current rows.
type ListRequest struct {
	Rollup string `uri:"name" binding:"required"`
	Limit  int    `form:"limit"` // 0 means the rollup's default limit
	Offset int    `form:"offset"`
}

// ListResponse is one page of a rollup's current snapshot. Before the first
// successful refresh it is empty with Initialized false and null metadata.
type ListResponse struct {
	Rollup           string       `json:"rollup"`
	Initialized      bool         `json:"initialized"`
	RunID            string       `json:"run_id,omitempty"`
	ComputedAt       *time.Time   `json:"computed_at"`
	StalenessSeconds *int64       `json:"staleness_seconds"`
	Total            int          `json:"total"`
	Limit            int          `json:"limit"`
	Offset           int          `json:"offset"`
	Rows             []rollup.Row `json:"rows"`
}

// SummaryResponse describes a rollup's current snapshot without its rows.
type SummaryResponse struct {
	Rollup           string     `json:"rollup"`
	KeyColumn        string     `json:"key_column"`
	SortColumn       string     `json:"sort_column"`
	Descending       bool       `json:"descending"`
	Initialized      bool       `json:"initialized"`
	RunID            string     `json:"run_id,omitempty"`
	Fingerprint      string     `json:"fingerprint,omitempty"`
	ComputedAt       *time.Time `json:"computed_at"`
	StalenessSeconds *int64     `json:"staleness_seconds"`
	RowCount         int        `json:"row_count"`
	SourceRowCount   int64      `json:"source_row_count"`
}

// DashboardSection is the leading slice of one rollup shown on the dashboard.
type DashboardSection struct {
	Initialized bool         `json:"initialized"`
	ComputedAt  *time.Time   `json:"computed_at"`
	Total       int          `json:"total"`
	Rows        []rollup.Row `json:"rows"`
}

// DashboardResponse combines the four storefront rollups in one read.
// Sections of disabled rollups are omitted.
type DashboardResponse struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	DailySales      *DashboardSection `json:"daily_sales,omitempty"`
	TopProducts     *DashboardSection `json:"top_products,omitempty"`
	CategoryRevenue *DashboardSection `json:"category_revenue,omitempty"`
	UserEngagement  *DashboardSection `json:"user_engagement,omitempty"`

	// TotalRevenue and TotalOrders sum the daily_sales rows listed above.
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalOrders  int64           `json:"total_orders"`

	RowCounts map[string]int `json:"row_counts"`
}
