package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rashmods/helpdesk/internal/config"
)

// Redis wraps the go-redis client backing the transcript archive list.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis when an address is provided.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if cfg.Addr == "" {
		logger.Warn("REDIS_ADDR not provided; transcript archive cache disabled")
		return &Redis{Client: nil}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity when configured.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Ping(ctx).Err()
}

// Transcripts returns the most recent transcripts archived for a
// destination, newest first.
func (r *Redis) Transcripts(ctx context.Context, destination string, limit int64) ([]string, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("redis client not configured")
	}
	if limit <= 0 {
		limit = 10
	}
	return r.Client.LRange(ctx, "transcripts:"+destination, 0, limit-1).Result()
}
