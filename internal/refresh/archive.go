package refresh

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/aevon-lab/tally/internal/core/snapshot"
)

// Restore loads archived snapshots into store so reads are served before the
// first refresh. Snapshots of unknown or disabled rollups, and snapshots whose
// fingerprint no longer matches the definition, are skipped. It returns the
// number of snapshots restored.
func Restore(ctx context.Context, archive SnapshotArchive, registry *rollup.Registry, store *snapshot.Store) (int, error) {
	stored, err := archive.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("restore snapshots: %w", err)
	}

	restored := 0
	for _, s := range stored {
		def, err := registry.Get(s.Rollup)
		if err != nil {
			slog.Info("[Refresh] Skipping archived snapshot of inactive rollup", "rollup", s.Rollup)
			continue
		}
		if s.Fingerprint != def.Settings.Fingerprint {
			slog.Info("[Refresh] Skipping archived snapshot with stale fingerprint",
				"rollup", s.Rollup,
				"run_id", s.RunID,
			)
			continue
		}
		if def.DecodeRows == nil {
			continue
		}

		rows, err := def.DecodeRows(s.Rows)
		if err != nil {
			slog.Warn("[Refresh] Skipping undecodable archived snapshot", "rollup", s.Rollup, "run_id", s.RunID, "error", err)
			continue
		}
		if len(rows) != s.RowCount {
			slog.Warn("[Refresh] Skipping archived snapshot with inconsistent row count",
				"rollup", s.Rollup,
				"run_id", s.RunID,
				"row_count", s.RowCount,
				"decoded_rows", len(rows),
			)
			continue
		}

		snap := rollup.NewSnapshot(s.Rollup, s.ComputedAt, rows, s.SourceRowCount)
		snap.RunID = s.RunID
		snap.Fingerprint = s.Fingerprint
		if store.SwapIn(snap) {
			restored++
		}
	}

	slog.Info("[Refresh] Restored archived snapshots", "restored", restored, "archived", len(stored))
	return restored, nil
}
