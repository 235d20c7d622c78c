package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	Key string `json:"key"`
}

func (r testRow) GroupKey() string { return r.Key }

func newTestSnapshot(computedAt time.Time) *rollup.Snapshot {
	snap := rollup.NewSnapshot(rollup.DailySales, computedAt, []rollup.Row{testRow{Key: "2024-01-02"}, testRow{Key: "2024-01-01"}}, 3)
	snap.RunID = "0b9b4f3e-5a43-4d3a-9d7e-3f3c2f1b8a10"
	snap.Fingerprint = "fp-1"
	return snap
}

func newTestSnapshotAdapter(t *testing.T) (*SnapshotAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	adapter := NewSnapshotAdapter(db)
	adapter.nowFn = func() time.Time { return time.Date(2024, 1, 10, 12, 0, 5, 0, time.UTC) }
	return adapter, mock
}

func TestSnapshotAdapter_SaveInsertsFirstSnapshot(t *testing.T) {
	adapter, mock := newTestSnapshotAdapter(t)
	computedAt := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	snap := newTestSnapshot(computedAt)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(querySelectSnapshotForUpdate)).
		WithArgs(rollup.DailySales).
		WillReturnRows(sqlmock.NewRows([]string{"computed_at"}))
	mock.ExpectExec(regexp.QuoteMeta(queryUpsertSnapshot)).
		WithArgs(
			rollup.DailySales,
			snap.RunID,
			"fp-1",
			computedAt,
			2,
			int64(3),
			[]byte(`[{"key":"2024-01-02"},{"key":"2024-01-01"}]`),
			adapter.nowFn(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, adapter.Save(context.Background(), snap))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotAdapter_SaveSkipsStaleSnapshot(t *testing.T) {
	adapter, mock := newTestSnapshotAdapter(t)
	computedAt := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(querySelectSnapshotForUpdate)).
		WithArgs(rollup.DailySales).
		WillReturnRows(sqlmock.NewRows([]string{"computed_at"}).AddRow(computedAt.Add(time.Minute)))
	mock.ExpectRollback()

	require.NoError(t, adapter.Save(context.Background(), newTestSnapshot(computedAt)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotAdapter_SaveReplacesOlderSnapshot(t *testing.T) {
	adapter, mock := newTestSnapshotAdapter(t)
	computedAt := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(querySelectSnapshotForUpdate)).
		WithArgs(rollup.DailySales).
		WillReturnRows(sqlmock.NewRows([]string{"computed_at"}).AddRow(computedAt.Add(-time.Hour)))
	mock.ExpectExec(regexp.QuoteMeta(queryUpsertSnapshot)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, adapter.Save(context.Background(), newTestSnapshot(computedAt)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotAdapter_SaveUpsertFailureRollsBack(t *testing.T) {
	adapter, mock := newTestSnapshotAdapter(t)
	dbErr := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(querySelectSnapshotForUpdate)).
		WithArgs(rollup.DailySales).
		WillReturnRows(sqlmock.NewRows([]string{"computed_at"}))
	mock.ExpectExec(regexp.QuoteMeta(queryUpsertSnapshot)).WillReturnError(dbErr)
	mock.ExpectRollback()

	err := adapter.Save(context.Background(), newTestSnapshot(time.Now().UTC()))
	require.ErrorIs(t, err, dbErr)
	require.ErrorContains(t, err, "upsert daily_sales")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotAdapter_LoadAll(t *testing.T) {
	adapter, mock := newTestSnapshotAdapter(t)
	computedAt := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryLoadSnapshots)).
		WillReturnRows(sqlmock.NewRows([]string{
			"rollup", "run_id", "fingerprint", "computed_at", "row_count", "source_row_count", "rows",
		}).
			AddRow("daily_sales", "run-1", "fp-1", computedAt, 2, int64(3), []byte(`[{"key":"a"},{"key":"b"}]`)).
			AddRow("top_products", "run-2", "fp-2", computedAt, 0, int64(0), []byte(`[]`)))

	stored, err := adapter.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)

	require.Equal(t, "daily_sales", stored[0].Rollup)
	require.Equal(t, "run-1", stored[0].RunID)
	require.Equal(t, 2, stored[0].RowCount)
	require.Equal(t, int64(3), stored[0].SourceRowCount)
	require.JSONEq(t, `[{"key":"a"},{"key":"b"}]`, string(stored[0].Rows))
	require.True(t, computedAt.Equal(stored[0].ComputedAt))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotAdapter_LoadAllQueryError(t *testing.T) {
	adapter, mock := newTestSnapshotAdapter(t)
	dbErr := errors.New("relation \"rollup_snapshots\" does not exist")

	mock.ExpectQuery(regexp.QuoteMeta(queryLoadSnapshots)).WillReturnError(dbErr)

	_, err := adapter.LoadAll(context.Background())
	require.ErrorIs(t, err, dbErr)
}
