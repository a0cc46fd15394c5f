package nominatim

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/sun-chart/internal/domain"
)

// CachedGeocoder wraps a Geocoder with an LRU cache so repeated lookups of
// the same place do not hit the Nominatim API again. Callers that want no
// caching should use the inner Geocoder directly.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lruCache
	lookups *prometheus.CounterVec // labels: operation, result; may be nil
}

// NewCachedGeocoder creates a caching decorator holding at most maxEntries
// results. lookups receives hit/miss counts and may be nil.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, lookups *prometheus.CounterVec) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		lookups: lookups,
	}
}

// Search implements domain.Geocoder.
func (g *CachedGeocoder) Search(ctx context.Context, query string) ([]domain.Location, error) {
	key := "search:" + query
	if cached, ok := g.cache.get(key); ok {
		g.record("search", "hit")
		return cached, nil
	}
	g.record("search", "miss")

	locations, err := g.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty results so transient "not found" responses can
	// be retried.
	if len(locations) > 0 {
		g.cache.put(key, locations)
	}
	return locations, nil
}

// Reverse implements domain.Geocoder.
func (g *CachedGeocoder) Reverse(ctx context.Context, lat, lon float64) (domain.Location, error) {
	key := fmt.Sprintf("rev:%.6f,%.6f", lat, lon)
	if cached, ok := g.cache.get(key); ok {
		g.record("reverse", "hit")
		return cached[0], nil
	}
	g.record("reverse", "miss")

	loc, err := g.inner.Reverse(ctx, lat, lon)
	if err != nil {
		return domain.Location{}, err
	}
	// A nameless result means the coordinates resolved to nothing; a reverse
	// hit is stored as a one-element list.
	if loc.Name != "" {
		g.cache.put(key, []domain.Location{loc})
	}
	return loc, nil
}

func (g *CachedGeocoder) record(operation, result string) {
	if g.lookups == nil {
		return
	}
	g.lookups.WithLabelValues(operation, result).Inc()
}

// lruCache is a small mutex-guarded LRU keyed by request signature. Entries
// form a doubly-linked list ordered most to least recently used.
type lruCache struct {
	maxEntries int

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry
	tail    *entry
}

type entry struct {
	key   string
	value []domain.Location
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []domain.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if c.head == e {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	evicted := c.tail
	c.remove(evicted)
	delete(c.entries, evicted.key)
}
