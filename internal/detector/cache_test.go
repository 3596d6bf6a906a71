//nolint:testpackage // exercises eviction internals
package detector

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
)

func sampleScore(probability float64) *domain.ComponentScore {
	return &domain.ComponentScore{
		Method:      domain.MethodDetector,
		Probability: probability,
		Confidence:  domain.ConfidenceHigh,
		Model: &domain.ModelDetail{
			Model:    "test/ai-detector",
			Task:     taskAIDetection,
			RawLabel: "Fake",
			RawScore: probability / 100,
		},
	}
}

func TestCacheKey(t *testing.T) {
	key := CacheKey("some resume text", "test/ai-detector", taskAIDetection)
	assert.Len(t, key, hashPrefixLength)

	assert.Equal(t, key, CacheKey("some resume text", "test/ai-detector", taskAIDetection))
	assert.NotEqual(t, key, CacheKey("different text", "test/ai-detector", taskAIDetection))
	assert.NotEqual(t, key, CacheKey("some resume text", "other/model", taskAIDetection))
	assert.NotEqual(t, key, CacheKey("some resume text", "test/ai-detector", taskZeroShot))
}

func TestCacheKeyUsesTextPrefixOnly(t *testing.T) {
	prefix := strings.Repeat("a", cacheKeyTextPrefix)
	keyOne := CacheKey(prefix+" first tail", "m", "t")
	keyTwo := CacheKey(prefix+" second tail", "m", "t")
	assert.Equal(t, keyOne, keyTwo)
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour, 10)

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	cache.Set(ctx, "key", sampleScore(85))

	got, ok := cache.Get(ctx, "key")
	require.True(t, ok)
	assert.InDelta(t, 85.0, got.Probability, 0.001)
	require.NotNil(t, got.Model)
	assert.Equal(t, "test/ai-detector", got.Model.Model)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10*time.Millisecond, 10)

	cache.Set(ctx, "key", sampleScore(50))
	_, ok := cache.Get(ctx, "key")
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)

	_, ok = cache.Get(ctx, "key")
	assert.False(t, ok)
}

func TestMemoryCacheReturnsCopies(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour, 10)

	original := sampleScore(70)
	cache.Set(ctx, "key", original)

	// Mutating the stored original must not leak into the cache.
	original.Probability = 1
	original.Model.Model = "mutated"

	first, ok := cache.Get(ctx, "key")
	require.True(t, ok)
	assert.InDelta(t, 70.0, first.Probability, 0.001)
	assert.Equal(t, "test/ai-detector", first.Model.Model)

	// Mutating a fetched copy must not affect later reads.
	first.Probability = 2
	first.Model.Model = "also mutated"

	second, ok := cache.Get(ctx, "key")
	require.True(t, ok)
	assert.InDelta(t, 70.0, second.Probability, 0.001)
	assert.Equal(t, "test/ai-detector", second.Model.Model)
}

func TestMemoryCacheEvictsOldestWhenFull(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour, 2)

	cache.Set(ctx, "first", sampleScore(10))
	time.Sleep(time.Millisecond)
	cache.Set(ctx, "second", sampleScore(20))
	time.Sleep(time.Millisecond)
	cache.Set(ctx, "third", sampleScore(30))

	assert.Equal(t, 2, cache.Len())

	_, ok := cache.Get(ctx, "first")
	assert.False(t, ok, "entry closest to expiry should be evicted")

	_, ok = cache.Get(ctx, "second")
	assert.True(t, ok)
	_, ok = cache.Get(ctx, "third")
	assert.True(t, ok)
}

func TestMemoryCachePrunesExpiredBeforeEvicting(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10*time.Millisecond, 2)

	cache.Set(ctx, "stale-a", sampleScore(10))
	cache.Set(ctx, "stale-b", sampleScore(20))
	time.Sleep(25 * time.Millisecond)

	cache.Set(ctx, "fresh", sampleScore(30))

	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get(ctx, "fresh")
	assert.True(t, ok)
}

func TestMemoryCacheIgnoresNilScore(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour, 10)

	cache.Set(ctx, "key", nil)

	_, ok := cache.Get(ctx, "key")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}
