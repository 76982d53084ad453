// internal/embedding/cache_test.go
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"speech-scorer/internal/common/config"
	"speech-scorer/internal/common/database"
	"speech-scorer/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	vector []float32
	err    error
	calls  int
}

func (p *countingProvider) Embed(_ context.Context, _ string) ([]float32, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.vector, nil
}

func (p *countingProvider) Dimensions() int { return len(p.vector) }

func createTestRedisCache(t *testing.T, next Provider, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(next, rdb, "test-model", ttl, logger.NewTestLogger(t)), mr
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embedding:%s:%s", model, hex.EncodeToString(sum[:]))
}

func TestRedisCache_MissPopulatesRedis(t *testing.T) {
	next := &countingProvider{vector: []float32{0.5, 0.25}}
	cache, mr := createTestRedisCache(t, next, time.Hour)

	vector, err := cache.Embed(context.Background(), "some transcript")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, vector)
	assert.Equal(t, 1, next.calls)

	stored, err := mr.Get(cacheKey("test-model", "some transcript"))
	require.NoError(t, err)
	assert.Equal(t, "[0.5,0.25]", stored)
}

func TestRedisCache_HitSkipsProvider(t *testing.T) {
	next := &countingProvider{vector: []float32{1, 2, 3}}
	cache, _ := createTestRedisCache(t, next, time.Hour)

	first, err := cache.Embed(context.Background(), "cached text")
	require.NoError(t, err)
	second, err := cache.Embed(context.Background(), "cached text")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
}

func TestRedisCache_SetsTTL(t *testing.T) {
	next := &countingProvider{vector: []float32{1}}
	cache, mr := createTestRedisCache(t, next, 30*time.Minute)

	_, err := cache.Embed(context.Background(), "expiring text")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, mr.TTL(cacheKey("test-model", "expiring text")))
}

func TestRedisCache_MalformedEntryFallsThrough(t *testing.T) {
	next := &countingProvider{vector: []float32{0.7}}
	cache, mr := createTestRedisCache(t, next, time.Hour)

	key := cacheKey("test-model", "corrupted entry")
	require.NoError(t, mr.Set(key, "not json"))

	vector, err := cache.Embed(context.Background(), "corrupted entry")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.7}, vector)
	assert.Equal(t, 1, next.calls)

	stored, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "[0.7]", stored)
}

func TestRedisCache_ProviderErrorPropagates(t *testing.T) {
	next := &countingProvider{err: ErrEmbeddingFailed}
	cache, _ := createTestRedisCache(t, next, time.Hour)

	_, err := cache.Embed(context.Background(), "failing text")

	assert.True(t, errors.Is(err, ErrEmbeddingFailed))
}

func TestRedisCache_RedisDownDegradesToProvider(t *testing.T) {
	next := &countingProvider{vector: []float32{0.1}}
	cache, mr := createTestRedisCache(t, next, time.Hour)
	mr.Close()

	vector, err := cache.Embed(context.Background(), "redis is down")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1}, vector)
	assert.Equal(t, 1, next.calls)
}

func TestRedisCache_DimensionsDelegates(t *testing.T) {
	next := &countingProvider{vector: []float32{1, 2, 3, 4}}
	cache, _ := createTestRedisCache(t, next, time.Hour)

	assert.Equal(t, 4, cache.Dimensions())
}
