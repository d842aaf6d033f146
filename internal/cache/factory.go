package cache

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the cache backend named in the configuration
func New(config *CacheConfig, logger *zap.Logger) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Backend {
	case "", "memory":
		return NewMemoryCache(config, logger, nil), nil
	case "redis":
		return NewRedisCache(config, logger)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", config.Backend)
	}
}
