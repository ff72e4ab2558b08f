package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TokenBlocklist implements ports.TokenBlocklist. Revoked token IDs live until
// the token itself would have expired.
type TokenBlocklist struct {
	client *goredis.Client
	prefix string
}

// NewTokenBlocklist creates a new Redis-backed token blocklist.
func NewTokenBlocklist(client *goredis.Client) *TokenBlocklist {
	return &TokenBlocklist{
		client: client,
		prefix: "revoked:",
	}
}

// Revoke blocks tokenID for ttl. A non-positive ttl means the token is already expired.
func (b *TokenBlocklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.prefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (b *TokenBlocklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, b.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis token lookup: %w", err)
	}
	return n > 0, nil
}
