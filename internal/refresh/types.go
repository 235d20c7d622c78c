package refresh

import (
	"context"
	"errors"
	"time"

	"github.com/aevon-lab/tally/internal/core/rollup"
)

var (
	// ErrRefreshInProgress is returned when a refresh of the same rollup is
	// already running and the reject policy is in effect.
	ErrRefreshInProgress = errors.New("refresh already in progress")

	// ErrArchive marks a refresh that computed a snapshot but could not archive
	// it. The snapshot is not swapped in.
	ErrArchive = errors.New("snapshot archive failed")
)

// Status is the outcome of one refresh attempt.
type Status string

const (
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusInProgress Status = "in_progress"
)

// Policy decides what a refresh request does while the same rollup is
// already refreshing.
type Policy string

const (
	// PolicyReject turns the request away with ErrRefreshInProgress.
	PolicyReject Policy = "reject"
	// PolicyCoalesce waits for the running refresh and shares its result.
	PolicyCoalesce Policy = "coalesce"
)

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p == PolicyReject || p == PolicyCoalesce
}

// Result reports one rollup's refresh. Error is empty on success.
type Result struct {
	Rollup         string     `json:"rollup"`
	RunID          string     `json:"run_id,omitempty"`
	Status         Status     `json:"status"`
	ElapsedMS      int64      `json:"elapsed_ms"`
	RowCount       int        `json:"row_count"`
	SourceRowCount int64      `json:"source_row_count"`
	ComputedAt     *time.Time `json:"computed_at,omitempty"`
	// Coalesced is set when the result was shared between concurrent callers.
	Coalesced bool   `json:"coalesced,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SnapshotArchive persists the latest snapshot of each rollup.
type SnapshotArchive interface {
	Save(ctx context.Context, snap *rollup.Snapshot) error
	LoadAll(ctx context.Context) ([]rollup.StoredSnapshot, error)
}

// Notifier is told about every snapshot that becomes current.
type Notifier interface {
	Publish(ctx context.Context, snap *rollup.Snapshot) error
}
