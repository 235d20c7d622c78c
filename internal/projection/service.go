package projection

import (
	"errors"
	"fmt"
	"time"

	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/aevon-lab/tally/internal/core/snapshot"
	"github.com/aevon-lab/tally/internal/observability"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid rollup query")

// Service implements the read side. It only ever reads the snapshot store and
// never triggers a refresh.
type Service struct {
	registry *rollup.Registry
	store    *snapshot.Store
	metrics  *observability.Metrics
	nowFn    func() time.Time
}

// NewService creates a query service over store. metrics may be nil.
func NewService(registry *rollup.Registry, store *snapshot.Store, metrics *observability.Metrics) *Service {
	return &Service{
		registry: registry,
		store:    store,
		metrics:  metrics,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// List returns rows [offset, offset+limit) of the rollup's current snapshot.
func (s *Service) List(req ListRequest) (*ListResponse, error) {
	def, err := s.registry.Get(req.Rollup)
	if err != nil {
		return nil, err
	}
	limit, err := resolveLimit(def.Settings, req.Limit)
	if err != nil {
		return nil, err
	}
	if req.Offset < 0 {
		return nil, invalidQueryf("offset must be >= 0, got %d", req.Offset)
	}

	s.metrics.ObserveQuery(def.Name, "list")

	resp := &ListResponse{
		Rollup: def.Name,
		Limit:  limit,
		Offset: req.Offset,
		Rows:   []rollup.Row{},
	}

	snap, ok := s.store.Current(def.Name)
	if !ok {
		return resp, nil
	}

	computedAt := snap.ComputedAt
	resp.Initialized = true
	resp.RunID = snap.RunID
	resp.ComputedAt = &computedAt
	resp.StalenessSeconds = s.staleness(computedAt)
	resp.Total = snap.RowCount()
	resp.Rows = snap.Page(req.Offset, limit)
	return resp, nil
}

// Summary returns the metadata of the rollup's current snapshot.
func (s *Service) Summary(name string) (*SummaryResponse, error) {
	def, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveQuery(def.Name, "summary")

	summary := s.summarize(def)
	return &summary, nil
}

// Summaries returns the summary of every rollup in registry order.
func (s *Service) Summaries() []SummaryResponse {
	defs := s.registry.All()
	out := make([]SummaryResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, s.summarize(def))
	}
	return out
}

func (s *Service) summarize(def rollup.Definition) SummaryResponse {
	summary := SummaryResponse{
		Rollup:     def.Name,
		KeyColumn:  def.KeyColumn,
		SortColumn: def.SortColumn,
		Descending: def.Descending,
	}

	snap, ok := s.store.Current(def.Name)
	if !ok {
		return summary
	}

	computedAt := snap.ComputedAt
	summary.Initialized = true
	summary.RunID = snap.RunID
	summary.Fingerprint = snap.Fingerprint
	summary.ComputedAt = &computedAt
	summary.StalenessSeconds = s.staleness(computedAt)
	summary.RowCount = snap.RowCount()
	summary.SourceRowCount = snap.SourceRowCount
	return summary
}

// staleness is whole seconds since computedAt, clamped at zero for clock skew.
func (s *Service) staleness(computedAt time.Time) *int64 {
	secs := int64(s.nowFn().Sub(computedAt) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return &secs
}

func resolveLimit(settings rollup.Settings, requested int) (int, error) {
	defaultLimit := settings.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = rollup.DefaultListLimit
	}
	maxLimit := settings.MaxLimit
	if maxLimit <= 0 {
		maxLimit = rollup.DefaultMaxLimit
	}

	switch {
	case requested < 0:
		return 0, invalidQueryf("limit must be >= 0, got %d", requested)
	case requested == 0:
		return defaultLimit, nil
	case requested > maxLimit:
		return 0, invalidQueryf("limit %d exceeds max_limit %d", requested, maxLimit)
	default:
		return requested, nil
	}
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
