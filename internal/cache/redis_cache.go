package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"terra-farm/pkg/models"
)

// RedisCache implements the Cache interface using Redis. The learning
// hub runs on the memory backend by default; this backend is for
// deployments where several replicas should share one response cache.
type RedisCache struct {
	client redis.UniversalClient
	logger *zap.Logger
	config *CacheConfig
}

// NewRedisCache creates a new instance of RedisCache
func NewRedisCache(config *CacheConfig, logger *zap.Logger) (*RedisCache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	options := &redis.UniversalOptions{
		Addrs:        config.Addresses,
		Password:     config.Password,
		DB:           config.Database,
		MaxRetries:   config.MaxRetries,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolTimeout:  config.PoolTimeout,
	}

	client := redis.NewUniversalClient(options)

	// Check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		logger: logger,
		config: config,
	}, nil
}

// Set stores an item in the cache
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = rc.config.DefaultTTL
	}

	cacheItem := models.NewCacheItem(key, value, ttl, time.Now())

	data, err := json.Marshal(cacheItem)
	if err != nil {
		rc.logger.Error("failed to marshal cache item", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to marshal cache item: %w", err)
	}

	err = rc.client.Set(ctx, key, data, ttl).Err()
	if err != nil {
		rc.logger.Error("failed to set cache item", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to set cache item: %w", err)
	}

	rc.logger.Debug("cache item set successfully",
		zap.String("key", key),
		zap.Duration("ttl", ttl))

	return nil
}

// Get retrieves an item from the cache
func (rc *RedisCache) Get(ctx context.Context, key string) (*models.CacheItem, error) {
	data, err := rc.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		rc.logger.Error("failed to get cache item", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to get cache item: %w", err)
	}

	var cacheItem models.CacheItem
	if err := json.Unmarshal([]byte(data), &cacheItem); err != nil {
		rc.logger.Error("failed to unmarshal cache item", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to unmarshal cache item: %w", err)
	}

	// Check if expired (double check)
	if cacheItem.IsExpired() {
		rc.logger.Debug("cache item expired, removing", zap.String("key", key))
		_ = rc.Delete(ctx, key) // Clean up expired item
		return nil, nil
	}

	rc.logger.Debug("cache item retrieved successfully", zap.String("key", key))
	return &cacheItem, nil
}

// Delete removes an item from the cache
func (rc *RedisCache) Delete(ctx context.Context, key string) error {
	err := rc.client.Del(ctx, key).Err()
	if err != nil {
		rc.logger.Error("failed to delete cache item", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to delete cache item: %w", err)
	}

	rc.logger.Debug("cache item deleted successfully", zap.String("key", key))
	return nil
}

// Exists checks if a key exists in the cache
func (rc *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := rc.client.Exists(ctx, key).Result()
	if err != nil {
		rc.logger.Error("failed to check cache item existence", zap.Error(err), zap.String("key", key))
		return false, fmt.Errorf("failed to check cache item existence: %w", err)
	}

	return count > 0, nil
}

// Clear wipes the entire cache
func (rc *RedisCache) Clear(ctx context.Context) error {
	err := rc.client.FlushDB(ctx).Err()
	if err != nil {
		rc.logger.Error("failed to clear cache", zap.Error(err))
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	rc.logger.Info("cache cleared successfully")
	return nil
}

// Keys returns keys matching a pattern
func (rc *RedisCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := rc.client.Keys(ctx, pattern).Result()
	if err != nil {
		rc.logger.Error("failed to get keys", zap.Error(err), zap.String("pattern", pattern))
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}

	return keys, nil
}

// Size returns the number of keys in the cache
func (rc *RedisCache) Size(ctx context.Context) (int64, error) {
	size, err := rc.client.DBSize(ctx).Result()
	if err != nil {
		rc.logger.Error("failed to get cache size", zap.Error(err))
		return 0, fmt.Errorf("failed to get cache size: %w", err)
	}

	return size, nil
}

// Ping checks the Redis connection
func (rc *RedisCache) Ping(ctx context.Context) error {
	err := rc.client.Ping(ctx).Err()
	if err != nil {
		rc.logger.Error("ping failed", zap.Error(err))
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	err := rc.client.Close()
	if err != nil {
		rc.logger.Error("failed to close Redis connection", zap.Error(err))
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}

	rc.logger.Info("Redis connection closed successfully")
	return nil
}
