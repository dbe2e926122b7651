package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/fashion-store/pkg/retry"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

// NewClient connects to redis and waits for it to answer.
func NewClient(ctx context.Context, addr, password string, db int) (Client, error) {
	const op = "redisstore.NewClient"
	log := slog.With("op", op)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	rc := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
		OnRetry: func(attempt int, wait time.Duration, err error) {
			log.Warn("redis is not ready", "attempt", attempt, "wait", wait, "err", err)
		},
	}
	if err := retry.Do(ctx, rc, func() error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		_ = rdb.Close()
		return Client{}, fmt.Errorf("%s: redis is unavailable: %w", op, err)
	}

	log.Info("redis is available", "addr", addr)
	return Client{rdb}, nil
}

func (c Client) Close() {
	const op = "redisstore.Client.Close"
	log := slog.With("op", op)

	log.Info("closing redis client...")

	if err := c.Client.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("redis client is closed")
}
