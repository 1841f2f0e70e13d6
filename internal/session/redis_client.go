// Package session keeps in-flight interview sessions in Redis: turns are
// appended as the live chat progresses and expire on a rolling TTL. It
// also rate limits report generation per session.
package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// InitRedis connects the package-level client used by Store and RateLimiter
func InitRedis(addr, password string, db int) error {
	opt := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	rdb = client
	return nil
}

func GetRedisClient() *redis.Client {
	return rdb
}

func GetContext() context.Context {
	return ctx
}
