package db

import (
	"context"
	"time"

	"backend-roamio/internal/config"
	"backend-roamio/internal/logging"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 2 * time.Second

// ConnectRedis returns nil when Redis is not configured or does not answer a
// ping. A nil client keeps the chat stream hub in single-instance mode.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, chat stream stays local")
		_ = client.Close()
		return nil
	}
	return client
}
