package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist records revoked refresh tokens by jti.
type Blacklist interface {
	Add(ctx context.Context, jti string, until time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
}

const blacklistPrefix = "auth:blacklist:"

// RedisBlacklist keeps revoked jtis in Redis until the token would have expired.
type RedisBlacklist struct {
	rdb redis.Cmdable
}

// NewRedisBlacklist creates a Redis-backed blacklist.
func NewRedisBlacklist(rdb redis.Cmdable) *RedisBlacklist {
	return &RedisBlacklist{rdb: rdb}
}

func (b *RedisBlacklist) Add(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := b.rdb.Set(ctx, blacklistPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (b *RedisBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return n > 0, nil
}
