package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type keyRow string

func (k keyRow) GroupKey() string { return string(k) }

func TestEvent_MarshalBinary(t *testing.T) {
	at := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	snap := rollup.NewSnapshot(rollup.CategoryRevenue, at, []rollup.Row{keyRow("Books"), keyRow("Toys")}, 17)
	snap.RunID = "run-1"

	data, err := NewEvent(snap).MarshalBinary()
	require.NoError(t, err)
	require.JSONEq(t, `{
		"rollup": "category_revenue",
		"run_id": "run-1",
		"computed_at": "2024-01-10T12:00:00Z",
		"row_count": 2,
		"source_row_count": 17
	}`, string(data))

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, 2, decoded.RowCount)
}

func TestRedisPublisher_DefaultChannel(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	require.Equal(t, DefaultChannel, newRedisPublisher(client, "").channel)
	require.Equal(t, "custom", newRedisPublisher(client, "custom").channel)
}

func TestRedisPublisher_PublishReportsConnectionFailure(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	p := newRedisPublisher(client, "")
	defer p.Close()

	snap := rollup.NewSnapshot(rollup.DailySales, time.Now().UTC(), nil, 0)
	err := p.Publish(context.Background(), snap)
	require.Error(t, err)
	require.ErrorContains(t, err, "publish daily_sales")
}
