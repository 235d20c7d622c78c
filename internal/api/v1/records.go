package v1

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order as recorded by the storefront.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// ActivityType classifies a user activity event.
type ActivityType string

const (
	ActivityPageView       ActivityType = "page_view"
	ActivitySearch         ActivityType = "search"
	ActivityAddToCart      ActivityType = "add_to_cart"
	ActivityRemoveFromCart ActivityType = "remove_from_cart"
	ActivityWishlistAdd    ActivityType = "wishlist_add"
	ActivityProfileUpdate  ActivityType = "profile_update"
)

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityPageView, ActivitySearch, ActivityAddToCart, ActivityRemoveFromCart, ActivityWishlistAdd, ActivityProfileUpdate:
		return true
	}
	return false
}

// Order is a raw order row. Owned by the storefront database; read only here.
type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`

	// OrderDate is the zero time when the source column is NULL.
	OrderDate time.Time `json:"order_date"`
}

// OrderItem is one line of an order. Subtotal is taken as stored and never
// recomputed from Quantity and UnitPrice.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Product is a catalog entry.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// User is a storefront customer account.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserActivity is a single tracked interaction of a user with the storefront.
type UserActivity struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"user_id"`
	ActivityType ActivityType `json:"activity_type"`

	// OccurredAt is the zero time when the source column is NULL.
	OccurredAt time.Time `json:"occurred_at"`
}
