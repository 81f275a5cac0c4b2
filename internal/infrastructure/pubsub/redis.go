package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mohammadpnp/contact-import/internal/logger"
)

// NewRedisClient dials addr and fails fast when the server does not answer a ping.
func NewRedisClient(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
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

func channelName(prefix, topic string) string {
	if prefix == "" {
		return topic
	}
	return prefix + ":" + topic
}

// RedisPublisher publishes JSON payloads on "<prefix>:<topic>".
type RedisPublisher struct {
	rdb    *goredis.Client
	prefix string
}

func NewRedisPublisher(rdb *goredis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, prefix: prefix}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload any) error {
	if p == nil || p.rdb == nil {
		return fmt.Errorf("redis publisher not initialized")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.rdb.Publish(ctx, channelName(p.prefix, topic), raw).Err()
}

// RedisSubscriber relays raw messages of one topic until ctx is done.
type RedisSubscriber struct {
	rdb    *goredis.Client
	prefix string
	log    *logger.Logger
}

func NewRedisSubscriber(rdb *goredis.Client, prefix string, log *logger.Logger) *RedisSubscriber {
	return &RedisSubscriber{rdb: rdb, prefix: prefix, log: log.With("service", "RedisSubscriber")}
}

// Subscribe returns a channel of payloads. The channel is closed when ctx is
// canceled or the underlying subscription ends.
func (s *RedisSubscriber) Subscribe(ctx context.Context, topic string) (<-chan []byte, error) {
	if s == nil || s.rdb == nil {
		return nil, fmt.Errorf("redis subscriber not initialized")
	}

	channel := channelName(s.prefix, topic)
	sub := s.rdb.Subscribe(ctx, channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				select {
				case out <- []byte(m.Payload):
				case <-ctx.Done():
					return
				default:
					s.log.Warn("dropping message for slow subscriber", "channel", channel)
				}
			}
		}
	}()

	return out, nil
}

// NopPublisher discards every message. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
