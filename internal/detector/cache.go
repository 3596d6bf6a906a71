package detector

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/Thanatos9404/fakecatcher-plus/internal/domain"
)

// cacheKeyTextPrefix is how much of the input text participates in the key.
// Long documents share a key when their openings match, which is acceptable
// for a short-lived response cache.
const cacheKeyTextPrefix = 100

const hashPrefixLength = 12

// Cache stores normalized detector scores keyed by input. Implementations
// must be safe for concurrent use; this is the only state shared between
// in-flight analyses.
type Cache interface {
	Get(ctx context.Context, key string) (*domain.ComponentScore, bool)
	Set(ctx context.Context, key string, score *domain.ComponentScore)
}

// CacheKey creates a deterministic cache key for a detection request.
// Format: sha256(text_prefix + model + task)[:12]
func CacheKey(text, model, task string) string {
	prefix := text
	if len(prefix) > cacheKeyTextPrefix {
		prefix = prefix[:cacheKeyTextPrefix]
	}
	hash := sha256.Sum256([]byte(prefix + model + task))
	return hex.EncodeToString(hash[:])[:hashPrefixLength]
}

type memoryEntry struct {
	score     *domain.ComponentScore
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache with a bounded entry count.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
}

// NewMemoryCache creates a memory cache holding at most maxEntries scores
// for ttl each.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the cached score, so callers can never mutate a
// result another request will observe.
func (c *MemoryCache) Get(_ context.Context, key string) (*domain.ComponentScore, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.score.Clone(), true
}

// Set stores a copy of the score. When the cache is full, expired entries are
// pruned first; if it is still full, the entry closest to expiry is dropped.
func (c *MemoryCache) Set(_ context.Context, key string, score *domain.ComponentScore) {
	if score == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}

	c.entries[key] = memoryEntry{
		score:     score.Clone(),
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Len returns the number of entries currently held, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) evictLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}

	var oldestKey string
	var oldestExpiry time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestExpiry) {
			oldestKey = key
			oldestExpiry = entry.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
