package snapshot

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/stretchr/testify/require"
)

type row string

func (r row) GroupKey() string { return string(r) }

func snapshotAt(name string, at time.Time, keys ...string) *rollup.Snapshot {
	rows := make([]rollup.Row, len(keys))
	for i, k := range keys {
		rows[i] = row(k)
	}
	return rollup.NewSnapshot(name, at, rows, int64(len(keys)))
}

func TestStore_UninitializedUntilFirstSwap(t *testing.T) {
	s := NewStore()

	_, ok := s.Current(rollup.DailySales)
	require.False(t, ok)
	require.Empty(t, s.Names())

	snap := snapshotAt(rollup.DailySales, time.Now(), "2024-01-01")
	require.True(t, s.SwapIn(snap))

	got, ok := s.Current(rollup.DailySales)
	require.True(t, ok)
	require.Same(t, snap, got)
	require.Equal(t, []string{rollup.DailySales}, s.Names())
}

func TestStore_SwapInRefusesOlderSnapshot(t *testing.T) {
	s := NewStore()
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	newer := snapshotAt(rollup.TopProducts, base, "1")
	older := snapshotAt(rollup.TopProducts, base.Add(-time.Minute), "2")

	require.True(t, s.SwapIn(newer))
	require.False(t, s.SwapIn(older))

	got, _ := s.Current(rollup.TopProducts)
	require.Same(t, newer, got)

	sameInstant := snapshotAt(rollup.TopProducts, base, "3")
	require.True(t, s.SwapIn(sameInstant))
}

func TestStore_SwapInNil(t *testing.T) {
	require.False(t, NewStore().SwapIn(nil))
}

func TestStore_ReadersSeeWholeSnapshots(t *testing.T) {
	s := NewStore()
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	require.True(t, s.SwapIn(snapshotAt(rollup.UserEngagement, base, "a", "b")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 200; i++ {
			keys := make([]string, i%5+1)
			for j := range keys {
				keys[j] = fmt.Sprintf("%d-%d", i, j)
			}
			s.SwapIn(snapshotAt(rollup.UserEngagement, base.Add(time.Duration(i)*time.Second), keys...))
		}
	}()

	for i := 0; i < 1000; i++ {
		snap, ok := s.Current(rollup.UserEngagement)
		require.True(t, ok)
		require.Equal(t, snap.RowCount(), int(snap.SourceRowCount))
	}
	wg.Wait()
}
