// Package notify announces freshly swapped snapshots to dashboard clients.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/tally/internal/core/rollup"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultChannel = "tally:rollups"
	pingTimeout    = 5 * time.Second
)

// Event is the JSON payload published after a snapshot becomes current.
type Event struct {
	Rollup         string    `json:"rollup"`
	RunID          string    `json:"run_id"`
	ComputedAt     time.Time `json:"computed_at"`
	RowCount       int       `json:"row_count"`
	SourceRowCount int64     `json:"source_row_count"`
}

// NewEvent describes snap.
func NewEvent(snap *rollup.Snapshot) Event {
	return Event{
		Rollup:         snap.Rollup,
		RunID:          snap.RunID,
		ComputedAt:     snap.ComputedAt.UTC(),
		RowCount:       snap.RowCount(),
		SourceRowCount: snap.SourceRowCount,
	}
}

// MarshalBinary lets go-redis publish an Event directly.
func (e Event) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// RedisPublisher publishes snapshot events on a Redis Pub/Sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to Redis and verifies the connection.
func NewRedisPublisher(ctx context.Context, opts Options) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,

		PoolSize:     4,
		MinIdleConns: 1,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	p := newRedisPublisher(client, opts.Channel)
	if err := p.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	slog.Info("[Notify] Connected to Redis", "addr", opts.Addr, "db", opts.DB, "channel", p.channel)
	return p, nil
}

func newRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Publish announces snap. Delivery is best effort: Pub/Sub keeps nothing for
// subscribers that are not connected.
func (p *RedisPublisher) Publish(ctx context.Context, snap *rollup.Snapshot) error {
	if err := p.client.Publish(ctx, p.channel, NewEvent(snap)).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", snap.Rollup, p.channel, err)
	}
	return nil
}

// Ping checks Redis connectivity. It also serves the health endpoint.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.client.Ping(ctx).Err()
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
