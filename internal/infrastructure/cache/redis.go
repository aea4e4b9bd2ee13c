// Package cache provides the Redis client used for rate limiting and event fan-out.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"stocktake/internal/infrastructure/storage/postgres"
)

// limiterPrefix namespaces rate-limit counters in a shared Redis.
const limiterPrefix = "stocktake:limiter"

// NewRedisClient connects to the Redis instance at rawURL and pings it.
func NewRedisClient(ctx context.Context, rawURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Pinger adapts a Redis client to the health check interface.
type Pinger struct {
	Client *goredis.Client
}

// Ping reports whether Redis answers.
func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

// NewLimiter builds a rate limiter from a formatted rate such as "300-M".
// Counters live in Redis when rdb is non-nil so that replicas share them.
func NewLimiter(rate string, rdb *goredis.Client) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", rate, err)
	}

	if rdb == nil {
		return limiter.New(memory.NewStore(), r), nil
	}

	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix: limiterPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis limiter store: %w", err)
	}
	return limiter.New(store, r), nil
}

// Publisher is the subset of the Redis client the event relay needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *goredis.IntCmd
}

// EventMessage is the JSON document published for each outbox row.
type EventMessage struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     string          `json:"eventType"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// EventRelay publishes outbox messages to a Redis pub/sub channel.
type EventRelay struct {
	client  Publisher
	channel string
}

var _ postgres.OutboxHandler = (*EventRelay)(nil)

// NewEventRelay creates a relay publishing to channel.
func NewEventRelay(client Publisher, channel string) *EventRelay {
	return &EventRelay{client: client, channel: channel}
}

// Handle publishes one outbox message.
func (r *EventRelay) Handle(ctx context.Context, msg *postgres.OutboxMessage) error {
	payload := json.RawMessage(msg.Payload)
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}

	raw, err := json.Marshal(EventMessage{
		ID:            msg.ID.String(),
		AggregateType: msg.AggregateType,
		AggregateID:   msg.AggregateID.String(),
		EventType:     msg.EventType,
		Payload:       payload,
		CreatedAt:     msg.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", msg.ID, err)
	}

	return r.client.Publish(ctx, r.channel, raw).Err()
}
