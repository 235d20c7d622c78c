package rollup

import (
	"encoding/json"
	"fmt"
	"time"
)

// Row is one group of a rollup. GroupKey is unique within a snapshot.
type Row interface {
	GroupKey() string
}

// Snapshot is one complete, ordered result set of a rollup. Rows are never
// edited after construction; metadata may be stamped by the refresh pipeline
// until the snapshot is swapped in.
type Snapshot struct {
	Rollup         string
	RunID          string
	Fingerprint    string
	ComputedAt     time.Time
	SourceRowCount int64

	rows []Row
}

// NewSnapshot wraps already ordered rows. The slice is owned by the snapshot afterwards.
func NewSnapshot(rollup string, computedAt time.Time, rows []Row, sourceRowCount int64) *Snapshot {
	if rows == nil {
		rows = []Row{}
	}
	return &Snapshot{
		Rollup:         rollup,
		ComputedAt:     computedAt,
		SourceRowCount: sourceRowCount,
		rows:           rows,
	}
}

func (s *Snapshot) RowCount() int { return len(s.rows) }

// Rows returns a copy of all rows in snapshot order.
func (s *Snapshot) Rows() []Row {
	return append([]Row(nil), s.rows...)
}

// Page returns a copy of the rows in [offset, offset+limit). A limit <= 0 means
// "to the end". Out-of-range offsets yield an empty page.
func (s *Snapshot) Page(offset, limit int) []Row {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.rows) {
		return []Row{}
	}
	end := len(s.rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]Row(nil), s.rows[offset:end]...)
}

// MarshalRows encodes the rows as a JSON array for durable storage.
func (s *Snapshot) MarshalRows() ([]byte, error) {
	data, err := json.Marshal(s.rows)
	if err != nil {
		return nil, fmt.Errorf("marshal %s rows: %w", s.Rollup, err)
	}
	return data, nil
}

// StoredSnapshot is the durable form of a snapshot as read back from an archive.
type StoredSnapshot struct {
	Rollup         string
	RunID          string
	Fingerprint    string
	ComputedAt     time.Time
	RowCount       int
	SourceRowCount int64
	Rows           json.RawMessage
}

func decodeRows[T Row](data []byte) ([]Row, error) {
	var typed []T
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	rows := make([]Row, len(typed))
	for i := range typed {
		rows[i] = typed[i]
	}
	return rows, nil
}
