package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyIsStableAndDistinct(t *testing.T) {
	k1 := Key("stmt.a", "SELECT 1")
	k2 := Key("stmt.a", "SELECT 1")
	k3 := Key("stmt.b", "SELECT 1")
	require.Equal(t, k1, k2)
	require.NotEqual(t, k1, k3)
}

func TestStoreThenLookupHits(t *testing.T) {
	c := NewCache(10, time.Minute)
	key := Key("stmt.a", "SELECT 1")
	c.Store(key, "result")

	v, ok := c.Lookup(key)
	require.True(t, ok)
	require.Equal(t, "result", v)
}

func TestLookupMissOnUnknownKey(t *testing.T) {
	c := NewCache(10, time.Minute)
	_, ok := c.Lookup(Key("nope", "SELECT 1"))
	require.False(t, ok)
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c := NewCache(10, time.Millisecond)
	key := Key("stmt.a", "SELECT 1")
	c.Store(key, "result")

	time.Sleep(5 * time.Millisecond)

	_, ok := c.Lookup(key)
	require.False(t, ok)
}

func TestCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2, time.Minute)
	k1, k2, k3 := Key("a", "sql"), Key("b", "sql"), Key("c", "sql")

	c.Store(k1, 1)
	c.Store(k2, 2)
	c.Store(k3, 3) // evicts k1

	_, ok := c.Lookup(k1)
	require.False(t, ok)
	_, ok = c.Lookup(k2)
	require.True(t, ok)
	_, ok = c.Lookup(k3)
	require.True(t, ok)
}

func TestLookupRefreshesRecency(t *testing.T) {
	c := NewCache(2, time.Minute)
	k1, k2, k3 := Key("a", "sql"), Key("b", "sql"), Key("c", "sql")

	c.Store(k1, 1)
	c.Store(k2, 2)
	_, _ = c.Lookup(k1) // k1 now more recently used than k2
	c.Store(k3, 3)      // should evict k2, not k1

	_, ok := c.Lookup(k1)
	require.True(t, ok)
	_, ok = c.Lookup(k2)
	require.False(t, ok)
}

func TestClearEmptiesCache(t *testing.T) {
	c := NewCache(10, time.Minute)
	c.Store(Key("a", "sql"), 1)
	c.Clear()
	require.Equal(t, 0, c.Len())
}

func TestNewCacheAppliesDefaults(t *testing.T) {
	c := NewCache(0, 0)
	require.Equal(t, DefaultCapacity, c.capacity)
	require.Equal(t, DefaultTTL, c.ttl)
}
