package redis

import (
	"context"
	"fmt"
	"time"

	"demo-credit/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultDialTimeout = 5 * time.Second

// NewClient connects to Redis and pings it within the dial timeout.
// Rate limits, idempotent replays and revoked tokens all live on this one client.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}

	client := goredis.NewClient(clientOptions(cfg, dialTimeout))

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr(), err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Int("pool_size", client.Options().PoolSize).
		Msg("Redis connection established")

	return client, nil
}

func clientOptions(cfg config.RedisConfig, dialTimeout time.Duration) *goredis.Options {
	opts := &goredis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	return opts
}
