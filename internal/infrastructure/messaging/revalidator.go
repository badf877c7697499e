package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/config"
	"go.uber.org/zap"
)

// Revalidator publishes path invalidation hints for the rendering layer
// after a successful mutation. Hints are fire-and-forget.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
	Close() error
}

type redisRevalidator struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisRevalidator creates a redis pub/sub backed revalidator. When no
// redis address is configured, hints are silently dropped.
func NewRedisRevalidator(cfg config.RedisConfig, logger *zap.Logger) (Revalidator, error) {
	if cfg.Addr == "" {
		return &nopRevalidator{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	channel := cfg.RevalidateChannel
	if channel == "" {
		channel = "revalidate"
	}

	return &redisRevalidator{
		client:  client,
		channel: channel,
		logger:  logger,
	}, nil
}

func (r *redisRevalidator) Revalidate(ctx context.Context, path string) {
	if err := r.client.Publish(ctx, r.channel, path).Err(); err != nil {
		// A lost hint only delays a re-render; never fail the mutation.
		r.logger.Warn("Failed to publish revalidation hint",
			zap.String("path", path),
			zap.Error(err))
	}
}

func (r *redisRevalidator) Close() error {
	return r.client.Close()
}

type nopRevalidator struct{}

func (n *nopRevalidator) Revalidate(ctx context.Context, path string) {}

func (n *nopRevalidator) Close() error { return nil }
