package admin

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBlacklist keeps revoked admin tokens under "<prefix><token>" with a TTL
// matching the token's remaining lifetime.
type RedisBlacklist struct {
	client *redis.Client
	prefix string
}

func NewRedisBlacklist(client *redis.Client, prefix string) *RedisBlacklist {
	if prefix == "" {
		prefix = "blacklist:admin:"
	}
	return &RedisBlacklist{client: client, prefix: prefix}
}

func (b *RedisBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	return b.client.Set(ctx, b.prefix+token, "1", ttl).Err()
}

func (b *RedisBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, b.prefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
