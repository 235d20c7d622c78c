package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/aevon-lab/tally/internal/core/snapshot"
	"github.com/aevon-lab/tally/internal/core/storage"
	"github.com/aevon-lab/tally/internal/observability"
	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	defaultWorkerCount = 4
	defaultTimeout     = 5 * time.Minute
)

// Options tunes a Coordinator. Zero values fall back to defaults; nil
// collaborators are skipped.
type Options struct {
	WorkerCount int
	Timeout     time.Duration
	Policy      Policy
	Location    *time.Location

	Archive  SnapshotArchive
	Notifier Notifier
	Metrics  *observability.Metrics
}

func (o Options) normalized() Options {
	n := o
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	if n.Timeout <= 0 {
		n.Timeout = defaultTimeout
	}
	if n.Policy == "" {
		n.Policy = PolicyReject
	}
	if n.Location == nil {
		n.Location = time.UTC
	}
	return n
}

// Coordinator recomputes rollups and publishes the results to the snapshot
// store. At most one refresh of a given rollup runs at a time; different
// rollups refresh in parallel.
type Coordinator struct {
	registry *rollup.Registry
	source   storage.RawDataAccessor
	store    *snapshot.Store
	computer *rollup.Computer
	opts     Options

	running  map[string]*atomic.Bool // fixed key set, built once
	inflight singleflight.Group
	pool     pond.Pool

	newRunID func() string
}

// NewCoordinator creates a coordinator for every definition in registry.
func NewCoordinator(
	registry *rollup.Registry,
	source storage.RawDataAccessor,
	store *snapshot.Store,
	opts Options,
) (*Coordinator, error) {
	opts = opts.normalized()
	if !opts.Policy.Valid() {
		return nil, fmt.Errorf("unknown refresh policy %q", opts.Policy)
	}

	running := make(map[string]*atomic.Bool, len(registry.Names()))
	for _, name := range registry.Names() {
		running[name] = &atomic.Bool{}
	}

	return &Coordinator{
		registry: registry,
		source:   source,
		store:    store,
		computer: rollup.NewComputer(opts.Location),
		opts:     opts,
		running:  running,
		pool:     pond.NewPool(opts.WorkerCount),
		newRunID: func() string { return uuid.NewString() },
	}, nil
}

// RefreshOne recomputes a single rollup. Unknown names return an error
// wrapping rollup.ErrUnknownRollup; a refresh already in flight under the
// reject policy returns ErrRefreshInProgress. The error is nil only when the
// new snapshot was computed and published.
func (c *Coordinator) RefreshOne(ctx context.Context, name string) (Result, error) {
	def, err := c.registry.Get(name)
	if err != nil {
		return Result{Rollup: name, Status: StatusFailed, Error: err.Error()}, err
	}
	return c.refresh(ctx, def)
}

// RefreshAll refreshes every rollup concurrently on the worker pool and
// returns one result per rollup in registry order. A failing rollup never
// stops the others; rollups that could not start before ctx ended are
// reported as failed.
func (c *Coordinator) RefreshAll(ctx context.Context) []Result {
	start := time.Now()
	defs := c.registry.All()
	results := make([]Result, len(defs))
	started := make([]bool, len(defs))

	group := c.pool.NewGroupContext(ctx)
	for i, def := range defs {
		group.Submit(func() {
			started[i] = true
			results[i], _ = c.refresh(ctx, def)
		})
	}

	waitErr := group.Wait()
	if waitErr != nil && !errors.Is(waitErr, context.Canceled) && !errors.Is(waitErr, pond.ErrGroupStopped) {
		slog.Error("[Refresh] Worker pool reported an error", "error", waitErr)
	}

	succeeded, failed := 0, 0
	for i, def := range defs {
		if !started[i] || results[i].Status == "" {
			reason := ctx.Err()
			if reason == nil {
				reason = waitErr
			}
			if reason == nil {
				reason = errors.New("refresh task did not run")
			}
			results[i] = Result{Rollup: def.Name, Status: StatusFailed, Error: reason.Error()}
		}
		if results[i].Status == StatusSucceeded {
			succeeded++
		} else {
			failed++
		}
	}

	slog.Info("[Refresh] Refresh-all complete",
		"rollups", len(defs),
		"succeeded", succeeded,
		"failed", failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return results
}

func (c *Coordinator) refresh(ctx context.Context, def rollup.Definition) (Result, error) {
	if c.opts.Policy == PolicyCoalesce {
		v, err, shared := c.inflight.Do(def.Name, func() (interface{}, error) {
			return c.run(ctx, def)
		})
		res := v.(Result)
		res.Coalesced = shared
		return res, err
	}

	flag := c.running[def.Name]
	if !flag.CompareAndSwap(false, true) {
		c.opts.Metrics.ObserveRejected(def.Name)
		slog.Info("[Refresh] Refresh already running, rejecting request", "rollup", def.Name)
		return Result{
			Rollup: def.Name,
			Status: StatusInProgress,
			Error:  ErrRefreshInProgress.Error(),
		}, ErrRefreshInProgress
	}
	defer flag.Store(false)

	return c.run(ctx, def)
}

// run computes, archives and swaps in one snapshot. The store is only touched
// after every fallible step has succeeded.
func (c *Coordinator) run(ctx context.Context, def rollup.Definition) (Result, error) {
	runID := c.newRunID()
	start := time.Now()

	timeout := def.Settings.RefreshTimeout
	if timeout <= 0 {
		timeout = c.opts.Timeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	slog.Debug("[Refresh] Starting rollup refresh", "rollup", def.Name, "run_id", runID, "timeout", timeout)

	snap, err := c.computer.Compute(runCtx, def, c.source)
	if err == nil {
		snap.RunID = runID
		if c.opts.Archive != nil {
			if saveErr := c.opts.Archive.Save(runCtx, snap); saveErr != nil {
				err = fmt.Errorf("%w: %w", ErrArchive, saveErr)
			}
		}
	}

	elapsed := time.Since(start)
	res := Result{
		Rollup:    def.Name,
		RunID:     runID,
		ElapsedMS: elapsed.Milliseconds(),
	}

	if err != nil {
		res.Status = StatusFailed
		res.Error = err.Error()
		c.opts.Metrics.ObserveRefresh(def.Name, string(StatusFailed), elapsed)
		slog.Error("[Refresh] Rollup refresh failed",
			"rollup", def.Name,
			"run_id", runID,
			"elapsed_ms", res.ElapsedMS,
			"error", err,
		)
		return res, err
	}

	computedAt := snap.ComputedAt
	res.Status = StatusSucceeded
	res.RowCount = snap.RowCount()
	res.SourceRowCount = snap.SourceRowCount
	res.ComputedAt = &computedAt

	if c.store.SwapIn(snap) {
		c.opts.Metrics.ObserveSnapshot(def.Name, snap.RowCount(), snap.SourceRowCount, snap.ComputedAt)
		if c.opts.Notifier != nil {
			if err := c.opts.Notifier.Publish(ctx, snap); err != nil {
				slog.Warn("[Refresh] Snapshot notification failed", "rollup", def.Name, "run_id", runID, "error", err)
			}
		}
	} else {
		slog.Warn("[Refresh] Newer snapshot already current, keeping it", "rollup", def.Name, "run_id", runID)
	}

	c.opts.Metrics.ObserveRefresh(def.Name, string(StatusSucceeded), elapsed)
	slog.Info("[Refresh] Rollup refreshed",
		"rollup", def.Name,
		"run_id", runID,
		"row_count", res.RowCount,
		"source_row_count", res.SourceRowCount,
		"elapsed_ms", res.ElapsedMS,
	)
	return res, nil
}

// Close stops the worker pool after in-flight refreshes finish.
func (c *Coordinator) Close() {
	c.pool.StopAndWait()
}
