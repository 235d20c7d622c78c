package rollup

import (
	"context"
	"testing"
	"time"

	v1 "github.com/aevon-lab/tally/internal/api/v1"
	"github.com/aevon-lab/tally/internal/core/storage/memory"
	"github.com/stretchr/testify/require"
)

func TestUserEngagement_Aggregates(t *testing.T) {
	src := memory.NewStore()
	src.AddUsers(
		v1.User{ID: 1, Email: "user0@example.com", Name: "Ada"},
		v1.User{ID: 2, Email: "user1@example.com", Name: "Grace"},
		v1.User{ID: 3, Email: "user2@example.com", Name: "Idle"},
	)
	src.AddOrders(
		v1.Order{ID: 1, UserID: 1, TotalAmount: dec("100"), Status: v1.OrderStatusCompleted, OrderDate: at("2024-01-03T10:00:00Z")},
		v1.Order{ID: 2, UserID: 1, TotalAmount: dec("50"), Status: v1.OrderStatusRefunded, OrderDate: at("2024-01-05T10:00:00Z")},
		v1.Order{ID: 3, UserID: 2, TotalAmount: dec("150"), Status: v1.OrderStatusCompleted, OrderDate: at("2024-01-04T10:00:00Z")},
		// Order of an unknown user: ignored.
		v1.Order{ID: 4, UserID: 42, TotalAmount: dec("999"), Status: v1.OrderStatusCompleted, OrderDate: at("2024-01-04T10:00:00Z")},
	)
	src.AddUserActivities(
		v1.UserActivity{ID: 1, UserID: 1, ActivityType: v1.ActivityPageView, OccurredAt: at("2024-01-07T11:00:00Z")},
		v1.UserActivity{ID: 2, UserID: 1, ActivityType: v1.ActivityPageView, OccurredAt: at("2024-01-08T11:00:00Z")},
		v1.UserActivity{ID: 3, UserID: 1, ActivityType: v1.ActivityAddToCart, OccurredAt: at("2024-01-08T13:00:00Z")},
		v1.UserActivity{ID: 4, UserID: 1, ActivityType: v1.ActivitySearch, OccurredAt: at("2024-01-02T09:00:00Z")},
		v1.UserActivity{ID: 5, UserID: 2, ActivityType: v1.ActivityWishlistAdd, OccurredAt: at("2024-01-10T11:59:00Z")},
	)

	rows := computeRows(t, userEngagementDefinition(), src)
	require.Len(t, rows, 3)

	// Lifetime values tie at 150; user id breaks the tie.
	ada := rows[0].(UserEngagementRow)
	require.Equal(t, int64(1), ada.UserID)
	require.Equal(t, "user0@example.com", ada.Email)
	require.Equal(t, int64(2), ada.TotalOrders)
	// Four activities must not multiply the order totals.
	require.True(t, dec("150").Equal(ada.LifetimeValue))
	assertNullDecimal(t, "75", ada.AvgOrderValue)
	require.Equal(t, int64(4), ada.TotalActivities)
	require.Equal(t, int64(2), ada.PageViews)
	require.Equal(t, int64(1), ada.AddToCartCount)
	require.True(t, at("2024-01-05T10:00:00Z").Equal(*ada.LastOrderDate))
	require.True(t, at("2024-01-08T13:00:00Z").Equal(*ada.LastActivityAt))
	// 1 day 23 hours before fixedNow floors to 1.
	require.Equal(t, int64(1), *ada.DaysSinceLastActivity)

	grace := rows[1].(UserEngagementRow)
	require.Equal(t, int64(2), grace.UserID)
	require.Equal(t, int64(0), *grace.DaysSinceLastActivity)
	require.Equal(t, int64(0), grace.PageViews)

	idle := rows[2].(UserEngagementRow)
	require.Equal(t, int64(3), idle.UserID)
	require.Equal(t, int64(0), idle.TotalOrders)
	require.True(t, idle.LifetimeValue.IsZero())
	assertNullDecimal(t, "", idle.AvgOrderValue)
	require.Nil(t, idle.LastOrderDate)
	require.Nil(t, idle.LastActivityAt)
	require.Nil(t, idle.DaysSinceLastActivity)
}

func TestUserEngagement_InvalidActivityTypeIsDefinitionError(t *testing.T) {
	src := memory.NewStore()
	src.AddUsers(v1.User{ID: 1})
	src.AddUserActivities(v1.UserActivity{ID: 9, UserID: 1, ActivityType: "checkout", OccurredAt: fixedNow})

	_, err := newTestComputer().Compute(context.Background(), userEngagementDefinition(), src)
	var defErr *DefinitionError
	require.ErrorAs(t, err, &defErr)
	require.Contains(t, defErr.Reason, "checkout")
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want int64
	}{
		{name: "same instant", at: now, want: 0},
		{name: "just under a day", at: now.Add(-24*time.Hour + time.Second), want: 0},
		{name: "exactly a day", at: now.Add(-24 * time.Hour), want: 1},
		{name: "six and a half days", at: now.Add(-156 * time.Hour), want: 6},
		{name: "future clamps to zero", at: now.Add(3 * time.Hour), want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := daysSince(&tc.at, now)
			require.NotNil(t, got)
			require.Equal(t, tc.want, *got)
		})
	}

	require.Nil(t, daysSince(nil, now))
}
