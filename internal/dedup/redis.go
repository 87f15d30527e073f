package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "vagas:seen:"

// RedisCache is the shared SeenStore used when several scrapers feed the same table.
// Every key carries its own TTL, so expiry needs no sweep.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, prefix: defaultKeyPrefix, ttl: ttl}
}

// ConnectRedis parses a redis:// URL and checks the server answers.
func ConnectRedis(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRedisCache(client, ttl), nil
}

func (rc *RedisCache) IsSeen(ctx context.Context, key string) (bool, error) {
	n, err := rc.client.Exists(ctx, rc.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (rc *RedisCache) Add(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	now := time.Now().UnixMilli()
	pipe := rc.client.Pipeline()
	for _, key := range keys {
		if key == "" {
			continue
		}
		pipe.SetNX(ctx, rc.prefix+key, now, rc.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline: %w", err)
	}
	return nil
}

func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// OpenSeenStore uses redis when redisURL is set and the JSON file cache in cacheDir otherwise.
// The returned close func is never nil.
func OpenSeenStore(ctx context.Context, redisURL, cacheDir string) (SeenStore, func() error, error) {
	if redisURL == "" {
		return NewJobCache(cacheDir), func() error { return nil }, nil
	}
	rc, err := ConnectRedis(ctx, redisURL, DefaultTTL)
	if err != nil {
		return nil, nil, err
	}
	return rc, rc.Close, nil
}
