package cache

import (
	"context"
	"fmt"
	"time"

	"creedava-api/infrastructure/configuration"
	"creedava-api/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to Redis using the redisClient configuration block.
// A ping failure is returned to the caller so it can decide whether to
// run without the cache.
func NewCache() (*redis.Client, error) {
	cfg := configuration.C.RedisClient
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	logger.GetLogger().WithField("addr", client.Options().Addr).Info("connected to redis")
	return client, nil
}
