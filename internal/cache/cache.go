package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

// Analysis is the session-scoped result holder: the latest analysis produced
// for a tenant. It is replaced wholesale on every new analysis (last write
// wins) and expires with the session TTL.
type Analysis struct {
	ID          uuid.UUID             `json:"id"`
	Provider    string                `json:"provider"`
	Suggestions models.AnalysisResult `json:"suggestions"`
	CreatedAt   time.Time             `json:"created_at"`
}

// Cache is the caching interface. All cache operations go through here.
// Implementations must be safe for concurrent use.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	SetLatestAnalysis(ctx context.Context, tenantID uuid.UUID, a *Analysis, ttl time.Duration) error
	GetLatestAnalysis(ctx context.Context, tenantID uuid.UUID) (*Analysis, bool, error)
	IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error)
}

// RedisCache implements the Cache interface using go-redis/v9.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache from a Redis URL.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) SetLatestAnalysis(ctx context.Context, tenantID uuid.UUID, a *Analysis, ttl time.Duration) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, LatestAnalysisKey(tenantID), b, ttl).Err()
}

func (c *RedisCache) GetLatestAnalysis(ctx context.Context, tenantID uuid.UUID) (*Analysis, bool, error) {
	val, err := c.client.Get(ctx, LatestAnalysisKey(tenantID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var a Analysis
	if err := json.Unmarshal(val, &a); err != nil {
		return nil, false, err
	}
	return &a, true, nil
}

func (c *RedisCache) IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, expiry)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
