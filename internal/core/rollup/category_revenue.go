package rollup

import (
	"context"

	v1 "github.com/aevon-lab/tally/internal/api/v1"
	"github.com/aevon-lab/tally/internal/core/storage"
	"github.com/shopspring/decimal"
)

// CategoryRevenueRow is the revenue and price profile of a product category.
type CategoryRevenueRow struct {
	Category           string              `json:"category"`
	ProductCount       int64               `json:"product_count"`
	TotalOrders        int64               `json:"total_orders"`
	TotalUnitsSold     int64               `json:"total_units_sold"`
	TotalRevenue       decimal.Decimal     `json:"total_revenue"`
	AvgRevenuePerOrder decimal.NullDecimal `json:"avg_revenue_per_order"`
	MinProductPrice    decimal.NullDecimal `json:"min_product_price"`
	MaxProductPrice    decimal.NullDecimal `json:"max_product_price"`
	AvgProductPrice    decimal.NullDecimal `json:"avg_product_price"`
}

func (r CategoryRevenueRow) GroupKey() string { return r.Category }

func categoryRevenueDefinition() Definition {
	return Definition{
		Name:       CategoryRevenue,
		Version:    "1",
		KeyColumn:  "category",
		SortColumn: "total_revenue",
		Descending: true,
		Compute:    computeCategoryRevenue,
		Less: func(a, b Row) bool {
			x, y := a.(CategoryRevenueRow), b.(CategoryRevenueRow)
			if c := x.TotalRevenue.Cmp(y.TotalRevenue); c != 0 {
				return c > 0
			}
			return x.Category < y.Category
		},
		DecodeRows: decodeRows[CategoryRevenueRow],
	}
}

type categoryGroup struct {
	products idSet
	prices   decimalStats // one observation per distinct product
	orders   idSet
	units    int64
	lines    decimalStats // one observation per order line subtotal
}

func computeCategoryRevenue(ctx context.Context, src storage.RawDataAccessor, _ Env) ([]Row, error) {
	groups := make(map[string]*categoryGroup)
	categoryOf := make(map[int64]string)

	err := src.ScanProducts(ctx, func(p v1.Product) error {
		if _, dup := categoryOf[p.ID]; dup {
			return definitionErrorf(CategoryRevenue, "product %d appears more than once", p.ID)
		}
		categoryOf[p.ID] = p.Category

		g, ok := groups[p.Category]
		if !ok {
			g = &categoryGroup{products: idSet{}, orders: idSet{}}
			groups[p.Category] = g
		}
		g.products.add(p.ID)
		g.prices.observe(p.Price)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = src.ScanOrderItems(ctx, func(item v1.OrderItem) error {
		category, ok := categoryOf[item.ProductID]
		if !ok {
			return nil
		}
		g := groups[category]
		g.orders.add(item.OrderID)
		g.units += item.Quantity
		g.lines.observe(item.Subtotal)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(groups))
	for category, g := range groups {
		rows = append(rows, CategoryRevenueRow{
			Category:           category,
			ProductCount:       g.products.count(),
			TotalOrders:        g.orders.count(),
			TotalUnitsSold:     g.units,
			TotalRevenue:       g.lines.total(),
			AvgRevenuePerOrder: g.lines.mean(),
			MinProductPrice:    g.prices.minimum(),
			MaxProductPrice:    g.prices.maximum(),
			AvgProductPrice:    g.prices.mean(),
		})
	}
	return rows, nil
}
