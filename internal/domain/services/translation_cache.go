package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	Logger "mineral-catalog-service/pkg/logger"
)

// TranslationCache stores finished translations
type TranslationCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// translationCacheKey hashes the text so long descriptions make short keys
func translationCacheKey(text, sourceLang, targetLang string) string {
	sum := sha256.Sum256([]byte(text))
	return "translation:" + sourceLang + ":" + targetLang + ":" + hex.EncodeToString(sum[:])
}

// RedisTranslationCache keeps translations in Redis
type RedisTranslationCache struct {
	Redis InterfaceRedisService
}

func (c *RedisTranslationCache) Get(ctx context.Context, key string) (string, bool) {
	var value string
	if err := c.Redis.Get(ctx, key, &value); err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			Logger.Warning("translation cache get %s: %v", key, err)
		}
		return "", false
	}
	return value, true
}

func (c *RedisTranslationCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.Redis.Set(ctx, key, value, ttl); err != nil {
		Logger.Warning("translation cache set %s: %v", key, err)
	}
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryTranslationCache is the in-process fallback when Redis is off
type MemoryTranslationCache struct {
	mu      sync.RWMutex
	items   map[string]memoryEntry
	maxSize int
	now     func() time.Time
}

// NewMemoryTranslationCache creates a cache holding at most maxSize entries
func NewMemoryTranslationCache(maxSize int) *MemoryTranslationCache {
	if maxSize <= 0 {
		maxSize = 10000
	}
	return &MemoryTranslationCache{
		items:   make(map[string]memoryEntry),
		maxSize: maxSize,
		now:     time.Now,
	}
}

func (c *MemoryTranslationCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (c *MemoryTranslationCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.evictLocked()
	}
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.items[key] = entry
}

// evictLocked drops expired entries, or an arbitrary one when none expired
func (c *MemoryTranslationCache) evictLocked() {
	now := c.now()
	for k, e := range c.items {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
	if len(c.items) < c.maxSize {
		return
	}
	for k := range c.items {
		delete(c.items, k)
		return
	}
}

// Len returns the number of cached entries
func (c *MemoryTranslationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
