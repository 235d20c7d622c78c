package rollup

import (
	"context"
	"strconv"

	v1 "github.com/aevon-lab/tally/internal/api/v1"
	"github.com/aevon-lab/tally/internal/core/storage"
	"github.com/shopspring/decimal"
)

// TopProductRow is the sales performance of a single product. Products that
// were never ordered are present with zero totals.
type TopProductRow struct {
	ProductID           int64               `json:"product_id"`
	ProductName         string              `json:"product_name"`
	Category            string              `json:"category"`
	Price               decimal.Decimal     `json:"price"`
	TimesOrdered        int64               `json:"times_ordered"`
	TotalQuantitySold   int64               `json:"total_quantity_sold"`
	TotalRevenue        decimal.Decimal     `json:"total_revenue"`
	AvgQuantityPerOrder decimal.NullDecimal `json:"avg_quantity_per_order"`
	AvgRevenuePerUnit   decimal.NullDecimal `json:"avg_revenue_per_unit"`
}

func (r TopProductRow) GroupKey() string { return strconv.FormatInt(r.ProductID, 10) }

func topProductsDefinition() Definition {
	return Definition{
		Name:       TopProducts,
		Version:    "1",
		KeyColumn:  "product_id",
		SortColumn: "total_revenue",
		Descending: true,
		Compute:    computeTopProducts,
		Less: func(a, b Row) bool {
			x, y := a.(TopProductRow), b.(TopProductRow)
			if c := x.TotalRevenue.Cmp(y.TotalRevenue); c != 0 {
				return c > 0
			}
			return x.ProductID < y.ProductID
		},
		DecodeRows: decodeRows[TopProductRow],
	}
}

type productGroup struct {
	product  v1.Product
	orders   idSet
	quantity int64
	lines    int64
	revenue  decimal.Decimal
}

func computeTopProducts(ctx context.Context, src storage.RawDataAccessor, _ Env) ([]Row, error) {
	groups := make(map[int64]*productGroup)
	order := make([]int64, 0)

	err := src.ScanProducts(ctx, func(p v1.Product) error {
		if _, dup := groups[p.ID]; dup {
			return definitionErrorf(TopProducts, "product %d appears more than once", p.ID)
		}
		groups[p.ID] = &productGroup{product: p, orders: idSet{}}
		order = append(order, p.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = src.ScanOrderItems(ctx, func(item v1.OrderItem) error {
		g, ok := groups[item.ProductID]
		if !ok {
			return nil // left join from products: items of unknown products do not contribute
		}
		g.orders.add(item.OrderID)
		g.quantity += item.Quantity
		g.lines++
		g.revenue = g.revenue.Add(item.Subtotal)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(order))
	for _, id := range order {
		g := groups[id]
		rows = append(rows, TopProductRow{
			ProductID:           g.product.ID,
			ProductName:         g.product.Name,
			Category:            g.product.Category,
			Price:               g.product.Price,
			TimesOrdered:        g.orders.count(),
			TotalQuantitySold:   g.quantity,
			TotalRevenue:        g.revenue,
			AvgQuantityPerOrder: ratio(decimal.NewFromInt(g.quantity), decimal.NewFromInt(g.lines)),
			AvgRevenuePerUnit:   ratio(g.revenue, decimal.NewFromInt(g.quantity)),
		})
	}
	return rows, nil
}
