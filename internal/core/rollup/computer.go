package rollup

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	v1 "github.com/aevon-lab/tally/internal/api/v1"
	"github.com/aevon-lab/tally/internal/core/storage"
)

// ctxCheckInterval is how many scanned rows pass between cancellation checks.
const ctxCheckInterval = 1024

// Computer executes definitions against a raw data accessor.
type Computer struct {
	location *time.Location
	nowFn    func() time.Time
}

// NewComputer creates a computer that buckets calendar days in loc (nil means UTC).
func NewComputer(loc *time.Location) *Computer {
	if loc == nil {
		loc = time.UTC
	}
	return &Computer{
		location: loc,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Location is the calendar time zone used for day boundaries.
func (c *Computer) Location() *time.Location { return c.location }

// Compute runs def once against src and returns a complete, ordered snapshot.
// It never returns a partial result: raw store failures surface as
// *RawAccessError, unusable data as *DefinitionError, and cancellation as the
// context's error.
//
// When src implements storage.ConsistentReader all scans of the definition run
// inside a single consistent read.
func (c *Computer) Compute(ctx context.Context, def Definition, src storage.RawDataAccessor) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rollup %s: %w", def.Name, err)
	}

	env := Env{Now: c.nowFn().UTC(), Location: c.location}

	var (
		rows    []Row
		scanned int64
	)
	run := func(acc storage.RawDataAccessor) error {
		counted := &countingAccessor{inner: acc, rollup: def.Name}
		out, err := def.Compute(ctx, counted, env)
		if err != nil {
			return err
		}
		rows = out
		scanned = counted.rows
		return nil
	}

	var err error
	if reader, ok := src.(storage.ConsistentReader); ok {
		err = reader.ReadConsistent(ctx, run)
	} else {
		err = run(src)
	}
	if err != nil {
		return nil, classify(ctx, def.Name, err)
	}

	sort.SliceStable(rows, func(i, j int) bool { return def.Less(rows[i], rows[j]) })

	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		key := row.GroupKey()
		if _, dup := seen[key]; dup {
			return nil, definitionErrorf(def.Name, "duplicate group key %q", key)
		}
		seen[key] = struct{}{}
	}

	// A cancellation that lands after the last scan still discards the result.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rollup %s: %w", def.Name, err)
	}

	snap := NewSnapshot(def.Name, env.Now, rows, scanned)
	snap.Fingerprint = def.Settings.Fingerprint
	return snap, nil
}

func classify(ctx context.Context, rollup string, err error) error {
	var (
		defErr *DefinitionError
		rawErr *RawAccessError
	)
	switch {
	case errors.As(err, &defErr), errors.As(err, &rawErr):
		return err
	case ctx.Err() != nil:
		return fmt.Errorf("rollup %s: %w", rollup, ctx.Err())
	default:
		return &RawAccessError{Rollup: rollup, Err: err}
	}
}

// callbackError marks errors raised by the definition's own callback, so they
// are not mistaken for raw store failures.
type callbackError struct{ err error }

func (e callbackError) Error() string { return e.err.Error() }
func (e callbackError) Unwrap() error { return e.err }

// countingAccessor counts scanned rows, checks for cancellation while
// scanning, and tags raw store failures as *RawAccessError.
type countingAccessor struct {
	inner  storage.RawDataAccessor
	rollup string
	rows   int64
}

func (a *countingAccessor) ScanOrders(ctx context.Context, fn func(v1.Order) error) error {
	return scanCounted(ctx, a, a.inner.ScanOrders, fn)
}

func (a *countingAccessor) ScanOrderItems(ctx context.Context, fn func(v1.OrderItem) error) error {
	return scanCounted(ctx, a, a.inner.ScanOrderItems, fn)
}

func (a *countingAccessor) ScanProducts(ctx context.Context, fn func(v1.Product) error) error {
	return scanCounted(ctx, a, a.inner.ScanProducts, fn)
}

func (a *countingAccessor) ScanUsers(ctx context.Context, fn func(v1.User) error) error {
	return scanCounted(ctx, a, a.inner.ScanUsers, fn)
}

func (a *countingAccessor) ScanUserActivities(ctx context.Context, fn func(v1.UserActivity) error) error {
	return scanCounted(ctx, a, a.inner.ScanUserActivities, fn)
}

func scanCounted[T any](
	ctx context.Context,
	a *countingAccessor,
	scan func(context.Context, func(T) error) error,
	fn func(T) error,
) error {
	err := scan(ctx, func(row T) error {
		a.rows++
		if a.rows%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return callbackError{err: err}
			}
		}
		if err := fn(row); err != nil {
			return callbackError{err: err}
		}
		return nil
	})
	if err == nil {
		return nil
	}

	var cbErr callbackError
	if errors.As(err, &cbErr) {
		return cbErr.err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &RawAccessError{Rollup: a.rollup, Err: err}
}
