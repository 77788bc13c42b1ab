package gateway

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisArchivePrefix = "transcripts:"

type redisArchiver struct {
	Gateway
	client *redis.Client
	logger *zap.Logger
}

// WithRedisArchive decorates a gateway so archived transcripts are also
// pushed onto a Redis list per destination. A Redis failure is logged and
// does not fail the archive: the platform delivery already happened.
func WithRedisArchive(inner Gateway, client *redis.Client, logger *zap.Logger) Gateway {
	return &redisArchiver{Gateway: inner, client: client, logger: logger}
}

func (a *redisArchiver) ArchiveTranscript(ctx context.Context, destination, transcript string) error {
	err := a.Gateway.ArchiveTranscript(ctx, destination, transcript)
	if pushErr := a.client.LPush(ctx, redisArchivePrefix+destination, transcript).Err(); pushErr != nil {
		a.logger.Warn("redis transcript archive failed",
			zap.String("destination", destination),
			zap.Error(pushErr))
	}
	return err
}
