package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

// RedisHub usa pub/sub do Redis para que várias instâncias da API
// compartilhem o mesmo feed.
type RedisHub struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisHub(ctx context.Context, url string, log zerolog.Logger) (*RedisHub, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisHub{client: client, log: log.With().Str("component", "realtime").Logger()}, nil
}

func (h *RedisHub) Publish(ctx context.Context, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return h.client.Publish(ctx, Channel, payload).Err()
}

func (h *RedisHub) Subscribe(ctx context.Context) (<-chan models.Notification, error) {
	ps := h.client.Subscribe(ctx, Channel)

	// confirma a inscrição antes de devolver o canal
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	in := ps.Channel()
	out := make(chan models.Notification, 16)

	go func() {
		defer close(out)
		defer ps.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				var n models.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					h.log.Warn().Err(err).Msg("invalid notification payload")
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (h *RedisHub) Close() error {
	return h.client.Close()
}
