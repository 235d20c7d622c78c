package memory

import (
	"context"
	"sort"
	"sync"

	v1 "github.com/aevon-lab/tally/internal/api/v1"
	"github.com/aevon-lab/tally/internal/core/storage"
)

// Store is an in-memory implementation of storage.RawDataAccessor.
// Useful for testing and local development.
type Store struct {
	mu         sync.RWMutex
	orders     []v1.Order
	items      []v1.OrderItem
	products   []v1.Product
	users      []v1.User
	activities []v1.UserActivity
}

// NewStore creates an empty in-memory raw store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) AddOrders(orders ...v1.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, orders...)
	sort.Slice(s.orders, func(i, j int) bool { return s.orders[i].ID < s.orders[j].ID })
}

func (s *Store) AddOrderItems(items ...v1.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].ID < s.items[j].ID })
}

func (s *Store) AddProducts(products ...v1.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, products...)
	sort.Slice(s.products, func(i, j int) bool { return s.products[i].ID < s.products[j].ID })
}

func (s *Store) AddUsers(users ...v1.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, users...)
	sort.Slice(s.users, func(i, j int) bool { return s.users[i].ID < s.users[j].ID })
}

func (s *Store) AddUserActivities(activities ...v1.UserActivity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, activities...)
	sort.Slice(s.activities, func(i, j int) bool { return s.activities[i].ID < s.activities[j].ID })
}

func (s *Store) ScanOrders(ctx context.Context, fn func(v1.Order) error) error {
	return s.view().ScanOrders(ctx, fn)
}

func (s *Store) ScanOrderItems(ctx context.Context, fn func(v1.OrderItem) error) error {
	return s.view().ScanOrderItems(ctx, fn)
}

func (s *Store) ScanProducts(ctx context.Context, fn func(v1.Product) error) error {
	return s.view().ScanProducts(ctx, fn)
}

func (s *Store) ScanUsers(ctx context.Context, fn func(v1.User) error) error {
	return s.view().ScanUsers(ctx, fn)
}

func (s *Store) ScanUserActivities(ctx context.Context, fn func(v1.UserActivity) error) error {
	return s.view().ScanUserActivities(ctx, fn)
}

// ReadConsistent hands fn a frozen copy of all tables taken under one read lock,
// so writes that land while fn runs are not observed.
func (s *Store) ReadConsistent(ctx context.Context, fn func(storage.RawDataAccessor) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.view())
}

// view copies every table under the read lock; later writes and re-sorts never
// reach a view that is already handed out.
func (s *Store) view() *frozenView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &frozenView{
		orders:     append([]v1.Order(nil), s.orders...),
		items:      append([]v1.OrderItem(nil), s.items...),
		products:   append([]v1.Product(nil), s.products...),
		users:      append([]v1.User(nil), s.users...),
		activities: append([]v1.UserActivity(nil), s.activities...),
	}
}

type frozenView struct {
	orders     []v1.Order
	items      []v1.OrderItem
	products   []v1.Product
	users      []v1.User
	activities []v1.UserActivity
}

func (v *frozenView) ScanOrders(ctx context.Context, fn func(v1.Order) error) error {
	return each(ctx, v.orders, fn)
}

func (v *frozenView) ScanOrderItems(ctx context.Context, fn func(v1.OrderItem) error) error {
	return each(ctx, v.items, fn)
}

func (v *frozenView) ScanProducts(ctx context.Context, fn func(v1.Product) error) error {
	return each(ctx, v.products, fn)
}

func (v *frozenView) ScanUsers(ctx context.Context, fn func(v1.User) error) error {
	return each(ctx, v.users, fn)
}

func (v *frozenView) ScanUserActivities(ctx context.Context, fn func(v1.UserActivity) error) error {
	return each(ctx, v.activities, fn)
}

func each[T any](ctx context.Context, rows []T, fn func(T) error) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}
