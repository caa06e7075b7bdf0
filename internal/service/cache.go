package service

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// ResultCache provides in-memory caching of build results keyed by input hash
type ResultCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewResultCache creates a new result cache. A zero ttl keeps entries until evicted.
func NewResultCache(ttl time.Duration, maxSize int) *ResultCache {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl * 2
	}
	return &ResultCache{
		cache:   cache.New(expiration, cleanup),
		ttl:     expiration,
		maxSize: maxSize,
	}
}

// Get retrieves a cached result
func (rc *ResultCache) Get(key string) (*Result, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if item, found := rc.cache.Get(key); found {
		if result, ok := item.(*Result); ok {
			rc.hitCount++
			return result, true
		}
	}
	rc.missCount++
	return nil, false
}

// Set stores a result. When the cache is full expired items are dropped first,
// then the entry closest to expiry.
func (rc *ResultCache) Set(key string, result *Result) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.maxSize <= 0 {
		return
	}
	if rc.cache.ItemCount() >= rc.maxSize {
		rc.cache.DeleteExpired()
	}
	if rc.cache.ItemCount() >= rc.maxSize {
		rc.evictOldest()
	}
	rc.cache.Set(key, result, rc.ttl)
}

func (rc *ResultCache) evictOldest() {
	var oldestKey string
	var oldest int64
	for k, item := range rc.cache.Items() {
		if oldestKey == "" || item.Expiration < oldest {
			oldestKey = k
			oldest = item.Expiration
		}
	}
	if oldestKey != "" {
		rc.cache.Delete(oldestKey)
	}
}

// Clear flushes the entire cache
func (rc *ResultCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache.Flush()
	rc.hitCount = 0
	rc.missCount = 0
}

// Stats returns cache statistics
func (rc *ResultCache) Stats() (hits, misses uint64, ratio float64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	hits = rc.hitCount
	misses = rc.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (rc *ResultCache) ItemCount() int {
	return rc.cache.ItemCount()
}

// HashInput creates a stable key for slate contents and builder parameters
func HashInput(slate []byte, params map[string]interface{}) string {
	paramData, _ := json.Marshal(params)
	h := sha256.New()
	h.Write(slate)
	h.Write([]byte{0})
	h.Write(paramData)
	return fmt.Sprintf("%x", h.Sum(nil))
}
