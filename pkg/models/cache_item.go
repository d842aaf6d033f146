package models

import (
	"time"
)

// CacheItem represents an item stored in the cache
type CacheItem struct {
	Key       string        `json:"key"`
	Value     interface{}   `json:"value"`
	TTL       time.Duration `json:"ttl"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// NewCacheItem creates a new cache item stamped at now
func NewCacheItem(key string, value interface{}, ttl time.Duration, now time.Time) *CacheItem {
	return &CacheItem{
		Key:       key,
		Value:     value,
		TTL:       ttl,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpiredAt checks if the item has expired as of the given instant
func (ci *CacheItem) IsExpiredAt(now time.Time) bool {
	return now.After(ci.ExpiresAt)
}

// IsExpired checks if the item has expired against the wall clock
func (ci *CacheItem) IsExpired() bool {
	return ci.IsExpiredAt(time.Now())
}

// RemainingTTL returns the remaining time until expiration
func (ci *CacheItem) RemainingTTL() time.Duration {
	if ci.IsExpired() {
		return 0
	}
	return time.Until(ci.ExpiresAt)
}
