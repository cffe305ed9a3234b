package dal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"praxis-cashier-api/internal/config"
)

// NewRedis connects and pings the configured server.
func NewRedis(ctx context.Context, c config.RedisCfg) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
