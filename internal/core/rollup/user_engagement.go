package rollup

import (
	"context"
	"strconv"
	"time"

	v1 "github.com/aevon-lab/tally/internal/api/v1"
	"github.com/aevon-lab/tally/internal/core/storage"
	"github.com/shopspring/decimal"
)

const oneDay = 24 * time.Hour

// UserEngagementRow combines a user's purchasing and browsing activity.
type UserEngagementRow struct {
	UserID                int64               `json:"user_id"`
	Email                 string              `json:"email"`
	Name                  string              `json:"name"`
	TotalOrders           int64               `json:"total_orders"`
	LifetimeValue         decimal.Decimal     `json:"lifetime_value"`
	AvgOrderValue         decimal.NullDecimal `json:"avg_order_value"`
	TotalActivities       int64               `json:"total_activities"`
	PageViews             int64               `json:"page_views"`
	AddToCartCount        int64               `json:"add_to_cart_count"`
	LastOrderDate         *time.Time          `json:"last_order_date"`
	LastActivityAt        *time.Time          `json:"last_activity_date"`
	DaysSinceLastActivity *int64              `json:"days_since_last_activity"`
}

func (r UserEngagementRow) GroupKey() string { return strconv.FormatInt(r.UserID, 10) }

func userEngagementDefinition() Definition {
	return Definition{
		Name:       UserEngagement,
		Version:    "1",
		KeyColumn:  "user_id",
		SortColumn: "lifetime_value",
		Descending: true,
		Compute:    computeUserEngagement,
		Less: func(a, b Row) bool {
			x, y := a.(UserEngagementRow), b.(UserEngagementRow)
			if c := x.LifetimeValue.Cmp(y.LifetimeValue); c != 0 {
				return c > 0
			}
			return x.UserID < y.UserID
		},
		DecodeRows: decodeRows[UserEngagementRow],
	}
}

type engagementGroup struct {
	user         v1.User
	orders       idSet
	amounts      decimalStats // one observation per distinct order
	lastOrder    latest
	activities   idSet
	pageViews    idSet
	addToCarts   idSet
	lastActivity latest
}

func computeUserEngagement(ctx context.Context, src storage.RawDataAccessor, env Env) ([]Row, error) {
	groups := make(map[int64]*engagementGroup)
	order := make([]int64, 0)

	err := src.ScanUsers(ctx, func(u v1.User) error {
		if _, dup := groups[u.ID]; dup {
			return definitionErrorf(UserEngagement, "user %d appears more than once", u.ID)
		}
		groups[u.ID] = &engagementGroup{
			user:       u,
			orders:     idSet{},
			activities: idSet{},
			pageViews:  idSet{},
			addToCarts: idSet{},
		}
		order = append(order, u.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = src.ScanOrders(ctx, func(o v1.Order) error {
		g, ok := groups[o.UserID]
		if !ok {
			return nil
		}
		// Orders are counted once each, independent of how many activities the user has.
		if g.orders.add(o.ID) {
			g.amounts.observe(o.TotalAmount)
		}
		g.lastOrder.observe(o.OrderDate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = src.ScanUserActivities(ctx, func(a v1.UserActivity) error {
		if !a.ActivityType.Valid() {
			return definitionErrorf(UserEngagement, "activity %d has unexpected activity_type %q", a.ID, a.ActivityType)
		}
		g, ok := groups[a.UserID]
		if !ok {
			return nil
		}
		g.activities.add(a.ID)
		switch a.ActivityType {
		case v1.ActivityPageView:
			g.pageViews.add(a.ID)
		case v1.ActivityAddToCart:
			g.addToCarts.add(a.ID)
		}
		g.lastActivity.observe(a.OccurredAt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(order))
	for _, id := range order {
		g := groups[id]
		lastActivity := g.lastActivity.value()
		rows = append(rows, UserEngagementRow{
			UserID:                g.user.ID,
			Email:                 g.user.Email,
			Name:                  g.user.Name,
			TotalOrders:           g.orders.count(),
			LifetimeValue:         g.amounts.total(),
			AvgOrderValue:         g.amounts.mean(),
			TotalActivities:       g.activities.count(),
			PageViews:             g.pageViews.count(),
			AddToCartCount:        g.addToCarts.count(),
			LastOrderDate:         g.lastOrder.value(),
			LastActivityAt:        lastActivity,
			DaysSinceLastActivity: daysSince(lastActivity, env.Now),
		})
	}
	return rows, nil
}

// daysSince is the floor of whole days elapsed from t to now. Timestamps ahead
// of now count as zero days.
func daysSince(t *time.Time, now time.Time) *int64 {
	if t == nil {
		return nil
	}
	elapsed := now.Sub(*t)
	if elapsed < 0 {
		elapsed = 0
	}
	days := int64(elapsed / oneDay)
	return &days
}
