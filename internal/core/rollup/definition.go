package rollup

import (
	"context"
	"time"

	"github.com/aevon-lab/tally/internal/core/storage"
)

// Env carries the inputs of a computation that do not come from the raw store.
type Env struct {
	// Now is the snapshot's computed_at; relative fields such as
	// days_since_last_activity are measured against it.
	Now time.Time

	// Location decides calendar-day boundaries. Nil means UTC.
	Location *time.Location
}

func (e Env) location() *time.Location {
	if e.Location == nil {
		return time.UTC
	}
	return e.Location
}

// Settings are the per-rollup knobs resolved from the catalog.
type Settings struct {
	Enabled        bool
	DefaultLimit   int
	MaxLimit       int
	RefreshTimeout time.Duration // zero means the coordinator default
	Fingerprint    string
}

// Definition declares one rollup: how rows are grouped and built, and how they
// are ordered. Compute must be a pure function of the raw data and Env.
type Definition struct {
	Name       string
	Version    string
	KeyColumn  string
	SortColumn string
	Descending bool

	Compute func(ctx context.Context, src storage.RawDataAccessor, env Env) ([]Row, error)

	// Less orders rows by the primary sort column, breaking ties on the
	// grouping key ascending so pagination is reproducible.
	Less func(a, b Row) bool

	// DecodeRows restores rows written by Snapshot.MarshalRows.
	DecodeRows func(data []byte) ([]Row, error)

	Settings Settings
}
