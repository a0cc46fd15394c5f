package nominatim

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sun-chart/internal/domain"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	searchCalls   int
	reverseCalls  int
	searchResult  []domain.Location
	searchErr     error
	reverseResult domain.Location
}

func (m *countingGeocoder) Search(_ context.Context, _ string) ([]domain.Location, error) {
	m.searchCalls++
	return m.searchResult, m.searchErr
}

func (m *countingGeocoder) Reverse(_ context.Context, _, _ float64) (domain.Location, error) {
	m.reverseCalls++
	return m.reverseResult, nil
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_SearchCacheHit(t *testing.T) {
	inner := &countingGeocoder{
		searchResult: []domain.Location{{Name: "Tokyo", Lat: 35.68, Lon: 139.76}},
	}
	cached := NewCachedGeocoder(inner, 10, nil)

	r1, err := cached.Search(context.Background(), "Tokyo")
	require.NoError(t, err)
	require.Len(t, r1, 1)

	r2, err := cached.Search(context.Background(), "Tokyo")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.searchCalls, "should only call inner once")
}

func TestCachedGeocoder_EmptySearchNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, nil)

	_, _ = cached.Search(context.Background(), "nowhere")
	_, _ = cached.Search(context.Background(), "nowhere")

	assert.Equal(t, 2, inner.searchCalls, "empty results must stay retryable")
}

func TestCachedGeocoder_SearchErrorNotCached(t *testing.T) {
	boom := errors.New("nominatim down")
	inner := &countingGeocoder{searchErr: boom}
	cached := NewCachedGeocoder(inner, 10, nil)

	_, err := cached.Search(context.Background(), "Tokyo")
	require.ErrorIs(t, err, boom)

	_, err = cached.Search(context.Background(), "Tokyo")
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 2, inner.searchCalls)
}

func TestCachedGeocoder_DifferentQueriesMiss(t *testing.T) {
	inner := &countingGeocoder{
		searchResult: []domain.Location{{Name: "Somewhere"}},
	}
	cached := NewCachedGeocoder(inner, 10, nil)

	_, _ = cached.Search(context.Background(), "Tokyo")
	_, _ = cached.Search(context.Background(), "London")

	assert.Equal(t, 2, inner.searchCalls)
}

func TestCachedGeocoder_ReverseCacheHit(t *testing.T) {
	inner := &countingGeocoder{
		reverseResult: domain.Location{Name: "London", Lat: 51.51, Lon: -0.13},
	}
	cached := NewCachedGeocoder(inner, 10, nil)

	r1, err := cached.Reverse(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)
	assert.Equal(t, "London", r1.Name)

	r2, err := cached.Reverse(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.reverseCalls, "should only call inner once")
}

func TestCachedGeocoder_NamelessReverseNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, nil)

	_, _ = cached.Reverse(context.Background(), 0, -30)
	_, _ = cached.Reverse(context.Background(), 0, -30)

	assert.Equal(t, 2, inner.reverseCalls)
}

func TestCachedGeocoder_RecordsLookups(t *testing.T) {
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_geocode_cache_total"}, []string{"operation", "result"})
	inner := &countingGeocoder{
		searchResult: []domain.Location{{Name: "Tokyo"}},
	}
	cached := NewCachedGeocoder(inner, 10, lookups)

	_, _ = cached.Search(context.Background(), "Tokyo")
	_, _ = cached.Search(context.Background(), "Tokyo")

	// One miss then one hit; the counter must accept both label pairs
	// without panicking.
	assert.Equal(t, 1, inner.searchCalls)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", []domain.Location{{Name: "A"}})
	c.put("b", []domain.Location{{Name: "B"}})

	result, ok := c.get("a")
	assert.True(t, ok)
	require.Len(t, result, 1)
	assert.Equal(t, "A", result[0].Name)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []domain.Location{{Name: "A"}})
	c.put("b", []domain.Location{{Name: "B"}})
	c.put("c", []domain.Location{{Name: "C"}}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", result[0].Name)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", result[0].Name)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []domain.Location{{Name: "A"}})
	c.put("b", []domain.Location{{Name: "B"}})

	// Access "a" to promote it
	c.get("a")

	// Insert "c" — should evict "b" (LRU), not "a"
	c.put("c", []domain.Location{{Name: "C"}})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []domain.Location{{Name: "A1"}})
	c.put("a", []domain.Location{{Name: "A2"}})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", result[0].Name)
}
