package notifier

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"dutch_market/internal/domain/entity"
)

const (
	DefaultRedisChannel = "dutch-market:auction-ended"
	DefaultRedisStream  = "dutch-market:auction-ended:stream"
	defaultStreamMaxLen = 10_000
)

type redisClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Redis публикует событие в канал Pub/Sub для живых подписчиков и
// дописывает его в стрим, чтобы поздние потребители могли дочитать историю.
type Redis struct {
	client  redisClient
	channel string
	stream  string
	maxLen  int64
}

func NewRedis(client redisClient) *Redis {
	return &Redis{
		client:  client,
		channel: DefaultRedisChannel,
		stream:  DefaultRedisStream,
		maxLen:  defaultStreamMaxLen,
	}
}

func (r *Redis) WithChannel(channel string) *Redis {
	r.channel = channel
	return r
}

// WithStream задаёт имя стрима. Пустое имя отключает запись в стрим.
func (r *Redis) WithStream(stream string) *Redis {
	r.stream = stream
	return r
}

func (r *Redis) AuctionEnded(ctx context.Context, event entity.AuctionEnded) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis.Publish: %w", err)
	}

	if r.stream == "" {
		return nil
	}

	err = r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: true,
		Values: map[string]any{
			"auction_index": event.AuctionIndex.String(),
			"payload":       string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("redis.XAdd: %w", err)
	}

	return nil
}
