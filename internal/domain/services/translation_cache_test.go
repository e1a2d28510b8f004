package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, InterfaceRedisService) {
	t.Helper()
	mr := miniredis.RunT(t)
	svc := NewRedisServiceWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = svc.Close() })
	return mr, svc
}

func TestTranslationCacheKey(t *testing.T) {
	a := translationCacheKey("кварц", "ru", "en")
	assert.Equal(t, a, translationCacheKey("кварц", "ru", "en"))
	assert.NotEqual(t, a, translationCacheKey("кварц", "ru", "de"))
	assert.NotEqual(t, a, translationCacheKey("пирит", "ru", "en"))
	assert.Len(t, a, len("translation:ru:en:")+64)
}

func TestRedisTranslationCache(t *testing.T) {
	mr, redisService := newMiniRedis(t)
	cache := &RedisTranslationCache{Redis: redisService}
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	cache.Set(ctx, "k", "quartz", time.Hour)
	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "quartz", got)
	assert.Equal(t, time.Hour, mr.TTL("k"))

	mr.FastForward(2 * time.Hour)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisServiceRoundTrip(t *testing.T) {
	_, svc := newMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, svc.Ping(ctx))
	type payload struct {
		A int    `json:"a"`
		B string `json:"b"`
	}
	require.NoError(t, svc.Set(ctx, "p", payload{A: 1, B: "x"}, 0))

	var got payload
	require.NoError(t, svc.Get(ctx, "p", &got))
	assert.Equal(t, payload{A: 1, B: "x"}, got)

	require.NoError(t, svc.Delete(ctx, "p"))
	assert.ErrorIs(t, svc.Get(ctx, "p", &got), ErrCacheMiss)
}

func TestTranslationServiceWithRedisCache(t *testing.T) {
	_, redisService := newMiniRedis(t)
	ft := newFakeTranslator(t, map[string]string{"агат": "agate"})
	cfg := testConfig(t)
	cfg.TranslationURL = ft.server.URL
	cache := &RedisTranslationCache{Redis: redisService}

	first := NewTranslationService(cfg, cache)
	got, err := first.Translate(context.Background(), "агат", "ru", "en")
	require.NoError(t, err)
	assert.Equal(t, "agate", got)

	// a second instance shares the Redis entries
	second := NewTranslationService(cfg, cache)
	got, err = second.Translate(context.Background(), "агат", "ru", "en")
	require.NoError(t, err)
	assert.Equal(t, "agate", got)
	assert.EqualValues(t, 1, ft.calls.Load())
}

func TestMemoryTranslationCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryTranslationCache(2)
	cache.now = func() time.Time { return now }

	cache.Set(ctx, "a", "1", time.Minute)
	cache.Set(ctx, "b", "2", 0)
	v, ok := cache.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get(ctx, "a")
	assert.False(t, ok, "expired entries are dropped")
	assert.Equal(t, 1, cache.Len())

	cache.Set(ctx, "c", "3", 0)
	cache.Set(ctx, "d", "4", 0)
	assert.Equal(t, 2, cache.Len(), "size stays bounded")
	v, ok = cache.Get(ctx, "d")
	require.True(t, ok)
	assert.Equal(t, "4", v)
}
