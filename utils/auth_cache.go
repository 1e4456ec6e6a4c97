package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisTokenCache remembers the hash of each user's active token so the auth
// middleware can reject tokens revoked by logout without hitting Postgres.
type RedisTokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTokenCache(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{client: client, ttl: AuthCacheTTL}
}

func authKey(userID string) string {
	return AuthCachePrefix + userID
}

func (c *RedisTokenCache) Store(ctx context.Context, userID, tokenHash string) error {
	return c.client.Set(ctx, authKey(userID), tokenHash, c.ttl).Err()
}

// Lookup returns the cached hash and whether one was found.
func (c *RedisTokenCache) Lookup(ctx context.Context, userID string) (string, bool, error) {
	val, err := c.client.Get(ctx, authKey(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisTokenCache) Clear(ctx context.Context, userID string) error {
	return c.client.Del(ctx, authKey(userID)).Err()
}
