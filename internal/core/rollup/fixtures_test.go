package rollup

import (
	"context"
	"testing"
	"time"

	"github.com/aevon-lab/tally/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestComputer() *Computer {
	c := NewComputer(time.UTC)
	c.nowFn = func() time.Time { return fixedNow }
	return c
}

func computeRows(t *testing.T, def Definition, src storage.RawDataAccessor) []Row {
	t.Helper()
	snap, err := newTestComputer().Compute(context.Background(), def, src)
	require.NoError(t, err)
	return snap.Rows()
}
