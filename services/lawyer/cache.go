package lawyer

import (
	"context"
	"encoding/json"
	"time"

	"lawease/models"
	"lawease/utils"

	"github.com/go-redis/redis/v8"
)

// DirectoryCache holds search results for the public lawyer directory.
type DirectoryCache interface {
	Get(ctx context.Context, criteria models.LawyerSearch) ([]models.PublicLawyer, bool)
	Set(ctx context.Context, criteria models.LawyerSearch, profiles []models.PublicLawyer) error
	Invalidate(ctx context.Context) error
}

type RedisDirectoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDirectoryCache(client *redis.Client, ttl time.Duration) *RedisDirectoryCache {
	if ttl <= 0 {
		ttl = utils.LawyerListCacheTTL
	}
	return &RedisDirectoryCache{client: client, ttl: ttl}
}

func listKey(criteria models.LawyerSearch) string {
	return utils.LawyerListCachePrefix + criteria.CacheKey()
}

// Get reports a miss on any Redis or decode error.
func (c *RedisDirectoryCache) Get(ctx context.Context, criteria models.LawyerSearch) ([]models.PublicLawyer, bool) {
	val, err := c.client.Get(ctx, listKey(criteria)).Result()
	if err != nil {
		return nil, false
	}
	var profiles []models.PublicLawyer
	if err := json.Unmarshal([]byte(val), &profiles); err != nil {
		return nil, false
	}
	return profiles, true
}

func (c *RedisDirectoryCache) Set(ctx context.Context, criteria models.LawyerSearch, profiles []models.PublicLawyer) error {
	data, err := json.Marshal(profiles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey(criteria), data, c.ttl).Err()
}

// Invalidate drops every cached listing.
func (c *RedisDirectoryCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, utils.LawyerListCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
