package geocode

import (
	"container/list"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/agrosmart/farm-advisory/internal/domain"
	"github.com/agrosmart/farm-advisory/internal/observability"
)

// CachedResolver wraps a CandidateResolver with an in-memory LRU cache so
// repeated lookups for the same place do not hit the providers again.
type CachedResolver struct {
	inner   CandidateResolver
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedResolver creates a cache decorator around a resolver.
func NewCachedResolver(inner CandidateResolver, maxEntries int, metrics *observability.Metrics) *CachedResolver {
	return &CachedResolver{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, name string, count int) []domain.GeoCandidate {
	key := fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(name)), count)
	if candidates, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return candidates
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	candidates := c.inner.Resolve(ctx, name, count)
	// Only cache non-empty results so transient failures can be retried.
	if len(candidates) > 0 {
		c.cache.put(key, candidates)
	}
	return candidates
}

// lruCache is a thread-safe LRU cache for candidate lists. Recency order
// lives in the list, front is most recently used; the map indexes list
// elements by key.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List
	index      map[string]*list.Element
}

type cacheEntry struct {
	key        string
	candidates []domain.GeoCandidate
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		order:      list.New(),
		index:      make(map[string]*list.Element),
	}
}

func (c *lruCache) get(key string) ([]domain.GeoCandidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).candidates, true
}

func (c *lruCache) put(key string, candidates []domain.GeoCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		el.Value.(*cacheEntry).candidates = candidates
		c.order.MoveToFront(el)
		return
	}

	c.index[key] = c.order.PushFront(&cacheEntry{key: key, candidates: candidates})

	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.index, oldest.Value.(*cacheEntry).key)
	}
}
