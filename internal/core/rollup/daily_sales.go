package rollup

import (
	"context"

	v1 "github.com/aevon-lab/tally/internal/api/v1"
	"github.com/aevon-lab/tally/internal/core/storage"
	"github.com/shopspring/decimal"
)

const saleDateLayout = "2006-01-02"

// DailySalesRow summarizes all orders placed on one calendar day.
type DailySalesRow struct {
	SaleDate          string              `json:"sale_date"`
	TotalOrders       int64               `json:"total_orders"`
	UniqueCustomers   int64               `json:"unique_customers"`
	TotalRevenue      decimal.Decimal     `json:"total_revenue"`
	AverageOrderValue decimal.NullDecimal `json:"average_order_value"`
	CompletedOrders   int64               `json:"completed_orders"`
	CancelledOrders   int64               `json:"cancelled_orders"`
	RefundedOrders    int64               `json:"refunded_orders"`
}

func (r DailySalesRow) GroupKey() string { return r.SaleDate }

func dailySalesDefinition() Definition {
	return Definition{
		Name:       DailySales,
		Version:    "1",
		KeyColumn:  "sale_date",
		SortColumn: "sale_date",
		Descending: true,
		Compute:    computeDailySales,
		Less: func(a, b Row) bool {
			// ISO dates order lexicographically.
			return a.(DailySalesRow).SaleDate > b.(DailySalesRow).SaleDate
		},
		DecodeRows: decodeRows[DailySalesRow],
	}
}

type dailySalesGroup struct {
	orders    idSet
	customers idSet
	amounts   decimalStats
	byStatus  map[v1.OrderStatus]int64
}

func computeDailySales(ctx context.Context, src storage.RawDataAccessor, env Env) ([]Row, error) {
	loc := env.location()
	groups := make(map[string]*dailySalesGroup)

	err := src.ScanOrders(ctx, func(o v1.Order) error {
		if o.OrderDate.IsZero() {
			return definitionErrorf(DailySales, "order %d has no order_date", o.ID)
		}
		if !o.Status.Valid() {
			return definitionErrorf(DailySales, "order %d has unexpected status %q", o.ID, o.Status)
		}

		day := o.OrderDate.In(loc).Format(saleDateLayout)
		g, ok := groups[day]
		if !ok {
			g = &dailySalesGroup{
				orders:    idSet{},
				customers: idSet{},
				byStatus:  make(map[v1.OrderStatus]int64),
			}
			groups[day] = g
		}

		g.orders.add(o.ID)
		g.customers.add(o.UserID)
		g.amounts.observe(o.TotalAmount)
		g.byStatus[o.Status]++
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(groups))
	for day, g := range groups {
		rows = append(rows, DailySalesRow{
			SaleDate:          day,
			TotalOrders:       g.orders.count(),
			UniqueCustomers:   g.customers.count(),
			TotalRevenue:      g.amounts.total(),
			AverageOrderValue: g.amounts.mean(),
			CompletedOrders:   g.byStatus[v1.OrderStatusCompleted],
			CancelledOrders:   g.byStatus[v1.OrderStatusCancelled],
			RefundedOrders:    g.byStatus[v1.OrderStatusRefunded],
		})
	}
	return rows, nil
}
