package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/tally/internal/core/rollup"
)

// SnapshotAdapter archives the latest snapshot of each rollup in
// rollup_snapshots so a restart can serve data before its first refresh.
// Only the most recent snapshot per rollup is kept.
type SnapshotAdapter struct {
	db    *sql.DB
	nowFn func() time.Time
}

// NewSnapshotAdapter creates a SnapshotAdapter sharing the given connection.
func NewSnapshotAdapter(db *sql.DB) *SnapshotAdapter {
	return &SnapshotAdapter{
		db: db,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Save writes snap as the archived snapshot of its rollup. The existing row is
// locked first; a snapshot older than the archived one is skipped so a slow
// refresh can never overwrite a newer result.
func (a *SnapshotAdapter) Save(ctx context.Context, snap *rollup.Snapshot) error {
	rows, err := snap.MarshalRows()
	if err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot save: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var archivedAt time.Time
	err = tx.QueryRowContext(ctx, querySelectSnapshotForUpdate, snap.Rollup).Scan(&archivedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("snapshot save: read archived snapshot for update: %w", err)
	case archivedAt.After(snap.ComputedAt):
		slog.Warn("[SnapshotAdapter] Skipping stale snapshot",
			"rollup", snap.Rollup,
			"run_id", snap.RunID,
			"computed_at", snap.ComputedAt,
			"archived_at", archivedAt)
		return nil
	}

	if _, err := tx.ExecContext(ctx, queryUpsertSnapshot,
		snap.Rollup,
		snap.RunID,
		snap.Fingerprint,
		snap.ComputedAt,
		snap.RowCount(),
		snap.SourceRowCount,
		rows,
		a.nowFn(),
	); err != nil {
		return fmt.Errorf("snapshot save: upsert %s: %w", snap.Rollup, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("snapshot save: commit: %w", err)
	}

	slog.Debug("[SnapshotAdapter] Saved snapshot",
		"rollup", snap.Rollup,
		"run_id", snap.RunID,
		"row_count", snap.RowCount())
	return nil
}

// LoadAll returns every archived snapshot ordered by rollup name. Rows are
// left encoded; the owning definition decodes them.
func (a *SnapshotAdapter) LoadAll(ctx context.Context) ([]rollup.StoredSnapshot, error) {
	rows, err := a.db.QueryContext(ctx, queryLoadSnapshots)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	defer rows.Close()

	var stored []rollup.StoredSnapshot
	for rows.Next() {
		var (
			s    rollup.StoredSnapshot
			data []byte
		)
		if err := rows.Scan(
			&s.Rollup,
			&s.RunID,
			&s.Fingerprint,
			&s.ComputedAt,
			&s.RowCount,
			&s.SourceRowCount,
			&data,
		); err != nil {
			return nil, fmt.Errorf("load snapshots: scan row: %w", err)
		}
		s.ComputedAt = s.ComputedAt.UTC()
		s.Rows = data
		stored = append(stored, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshots: iterate rows: %w", err)
	}

	slog.Info("[SnapshotAdapter] Loaded archived snapshots", "count", len(stored))
	return stored, nil
}
