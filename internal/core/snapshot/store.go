// Package snapshot holds the current snapshot of every rollup.
package snapshot

import (
	"sort"

	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/puzpuzpuz/xsync/v4"
)

// Store maps rollup names to their current snapshot. Readers never wait on a
// refresh: a swap replaces a single map entry atomically and snapshots are
// never mutated once stored.
type Store struct {
	current *xsync.Map[string, *rollup.Snapshot]
}

// NewStore creates an empty store; every rollup starts uninitialized.
func NewStore() *Store {
	return &Store{current: xsync.NewMap[string, *rollup.Snapshot]()}
}

// Current returns the latest snapshot of name. The second return value is
// false until the first successful refresh.
func (s *Store) Current(name string) (*rollup.Snapshot, bool) {
	return s.current.Load(name)
}

// SwapIn makes snap the current snapshot of its rollup unless the store already
// holds a newer one. It reports whether snap became current.
func (s *Store) SwapIn(snap *rollup.Snapshot) bool {
	if snap == nil {
		return false
	}

	swapped := false
	s.current.Compute(snap.Rollup, func(old *rollup.Snapshot, loaded bool) (*rollup.Snapshot, xsync.ComputeOp) {
		if loaded && old.ComputedAt.After(snap.ComputedAt) {
			return old, xsync.CancelOp
		}
		swapped = true
		return snap, xsync.UpdateOp
	})
	return swapped
}

// Names lists the initialized rollups in lexical order.
func (s *Store) Names() []string {
	names := make([]string, 0, s.current.Size())
	s.current.Range(func(name string, _ *rollup.Snapshot) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}
