package cache

import (
	"context"
	"time"

	"terra-farm/pkg/models"
)

// Cache defines the interface for the learning hub's response cache
type Cache interface {
	// Basic operations
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (*models.CacheItem, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Cleanup operations
	Clear(ctx context.Context) error

	// Statistics
	Keys(ctx context.Context, pattern string) ([]string, error)
	Size(ctx context.Context) (int64, error)

	// Connection
	Ping(ctx context.Context) error
	Close() error
}

// CacheConfig configuration for the cache
type CacheConfig struct {
	// Backend selects the implementation: "memory" or "redis"
	Backend    string        `mapstructure:"backend"`
	DefaultTTL time.Duration `mapstructure:"default_ttl"`

	// Memory backend: entries beyond MaxEntries evict oldest-inserted first
	MaxEntries int `mapstructure:"max_entries"`

	// Redis backend
	Addresses    []string      `mapstructure:"addresses"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	MaxRetries   int           `mapstructure:"max_retries"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

// DefaultCacheConfig returns the default configuration
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Backend:      "memory",
		DefaultTTL:   30 * time.Minute,
		MaxEntries:   10000,
		Addresses:    []string{"localhost:6379"},
		Password:     "",
		Database:     0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	}
}
