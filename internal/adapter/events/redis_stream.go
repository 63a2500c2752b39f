package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

const defaultStream = "taskhub:domain-events"

// StreamAdder is the slice of the redis client the stream publisher needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamPublisher appends every event to a Redis stream so that external
// consumers can read them with XREAD or a consumer group.
type StreamPublisher struct {
	client StreamAdder
	stream string
	maxLen int64
}

var _ ports.EventDispatcher = (*StreamPublisher)(nil)

type streamPayload struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	AggregateKind string    `json:"aggregate_kind"`
	AggregateID   int64     `json:"aggregate_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	Data          any       `json:"data"`
}

func NewStreamPublisher(client StreamAdder, stream string, maxLen int64) *StreamPublisher {
	if stream == "" {
		stream = defaultStream
	}
	return &StreamPublisher{client: client, stream: stream, maxLen: maxLen}
}

// NewRedisClient connects to addr and checks the connection.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (p *StreamPublisher) Publish(ctx context.Context, env domain.Envelope) error {
	raw, err := json.Marshal(streamPayload{
		ID:            env.ID,
		Kind:          string(env.Event.Kind()),
		AggregateKind: string(env.AggregateKind),
		AggregateID:   env.AggregateID,
		OccurredAt:    env.Event.OccurredAt(),
		Data:          env.Event,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", env.Event.Kind(), err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"event_id": env.ID,
			"kind":     string(env.Event.Kind()),
			"payload":  string(raw),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
