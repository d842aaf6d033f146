package cache

import (
	"container/list"
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"terra-farm/pkg/models"
)

// MemoryCache implements the Cache interface with a process-local map.
// Reads of stale entries behave as misses and lazily drop the entry.
// When the entry count exceeds MaxEntries the oldest-inserted entries
// are evicted first.
type MemoryCache struct {
	mu     sync.RWMutex
	items  map[string]*memoryEntry
	order  *list.List // insertion order, front = oldest
	clock  clock.Clock
	logger *zap.Logger
	config *CacheConfig
}

type memoryEntry struct {
	item *models.CacheItem
	elem *list.Element
}

// NewMemoryCache creates a new in-memory cache. A nil clock falls back
// to the wall clock; tests inject clock.NewMock for deterministic expiry.
func NewMemoryCache(config *CacheConfig, logger *zap.Logger, clk clock.Clock) *MemoryCache {
	if config == nil {
		config = DefaultCacheConfig()
	}
	if clk == nil {
		clk = clock.New()
	}

	return &MemoryCache{
		items:  make(map[string]*memoryEntry),
		order:  list.New(),
		clock:  clk,
		logger: logger,
		config: config,
	}
}

// Set stores an item in the cache
func (mc *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = mc.config.DefaultTTL
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	item := models.NewCacheItem(key, value, ttl, mc.clock.Now())

	if existing, ok := mc.items[key]; ok {
		// Overwrites re-stamp insertion order
		mc.order.Remove(existing.elem)
	}
	elem := mc.order.PushBack(key)
	mc.items[key] = &memoryEntry{item: item, elem: elem}

	mc.evictOverflowLocked()

	mc.logger.Debug("cache item set successfully",
		zap.String("key", key),
		zap.Duration("ttl", ttl))

	return nil
}

// Get retrieves an item from the cache. Expired entries are treated as
// absent and removed.
func (mc *MemoryCache) Get(ctx context.Context, key string) (*models.CacheItem, error) {
	mc.mu.RLock()
	entry, ok := mc.items[key]
	mc.mu.RUnlock()

	if !ok {
		return nil, nil // Cache miss
	}

	if entry.item.IsExpiredAt(mc.clock.Now()) {
		mc.logger.Debug("cache item expired, removing", zap.String("key", key))
		mc.mu.Lock()
		mc.removeLocked(key)
		mc.mu.Unlock()
		return nil, nil
	}

	mc.logger.Debug("cache item retrieved successfully", zap.String("key", key))
	return entry.item, nil
}

// Delete removes an item from the cache
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	mc.removeLocked(key)
	mc.mu.Unlock()

	mc.logger.Debug("cache item deleted successfully", zap.String("key", key))
	return nil
}

// Exists checks if a key exists in the cache and is still fresh
func (mc *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	item, err := mc.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return item != nil, nil
}

// Clear wipes the entire cache
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	mc.items = make(map[string]*memoryEntry)
	mc.order.Init()
	mc.mu.Unlock()

	mc.logger.Info("cache cleared successfully")
	return nil
}

// Keys returns fresh keys matching a glob pattern
func (mc *MemoryCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	now := mc.clock.Now()
	keys := make([]string, 0, len(mc.items))
	for key, entry := range mc.items {
		if entry.item.IsExpiredAt(now) {
			continue
		}
		matched, err := path.Match(pattern, key)
		if err != nil {
			return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, err)
		}
		if matched {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// Size returns the number of fresh entries
func (mc *MemoryCache) Size(ctx context.Context) (int64, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	now := mc.clock.Now()
	var size int64
	for _, entry := range mc.items {
		if !entry.item.IsExpiredAt(now) {
			size++
		}
	}

	return size, nil
}

// Ping is a no-op for the memory backend
func (mc *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

// Close releases the cache contents
func (mc *MemoryCache) Close() error {
	mc.mu.Lock()
	mc.items = nil
	mc.order.Init()
	mc.mu.Unlock()
	return nil
}

// removeLocked drops a key and its order node. Callers hold mc.mu.
func (mc *MemoryCache) removeLocked(key string) {
	if entry, ok := mc.items[key]; ok {
		mc.order.Remove(entry.elem)
		delete(mc.items, key)
	}
}

// evictOverflowLocked enforces the MaxEntries bound, oldest insert first.
// Callers hold mc.mu.
func (mc *MemoryCache) evictOverflowLocked() {
	if mc.config.MaxEntries <= 0 {
		return
	}
	for len(mc.items) > mc.config.MaxEntries {
		front := mc.order.Front()
		if front == nil {
			return
		}
		key := front.Value.(string)
		mc.removeLocked(key)
		mc.logger.Debug("cache entry evicted", zap.String("key", key))
	}
}
