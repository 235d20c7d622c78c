package storage

import (
	"context"

	v1 "github.com/aevon-lab/tally/internal/api/v1"
)

// RawDataAccessor is read-only access to the storefront's transactional tables.
// Each Scan method streams rows in ascending id order to fn. Returning an error
// from fn stops the scan and that error is returned unchanged.
type RawDataAccessor interface {
	ScanOrders(ctx context.Context, fn func(v1.Order) error) error
	ScanOrderItems(ctx context.Context, fn func(v1.OrderItem) error) error
	ScanProducts(ctx context.Context, fn func(v1.Product) error) error
	ScanUsers(ctx context.Context, fn func(v1.User) error) error
	ScanUserActivities(ctx context.Context, fn func(v1.UserActivity) error) error
}

// ConsistentReader is implemented by accessors that can pin a point-in-time view
// of the raw tables. All scans made through the accessor handed to fn observe the
// same state, regardless of concurrent writers.
type ConsistentReader interface {
	ReadConsistent(ctx context.Context, fn func(RawDataAccessor) error) error
}
