package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetAndGet(t *testing.T) {
	c := New()

	c.Set("key", "value", time.Minute)

	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestCacheMissingKey(t *testing.T) {
	c := New()

	got, ok := c.Get("never-set")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheExpiry(t *testing.T) {
	c := New()

	c.Set("key", "value", 40*time.Millisecond)

	// Retrievable before the TTL elapses
	_, ok := c.Get("key")
	assert.True(t, ok)

	time.Sleep(60 * time.Millisecond)

	// An expired entry behaves like a key that was never set
	got, ok := c.Get("key")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheExpiredEntryIsEvictedOnLookup(t *testing.T) {
	c := New()

	c.Set("key", "value", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, 1, c.Len())
	c.Get("key")
	assert.Equal(t, 0, c.Len())
}

func TestCacheFailureMarkerDoesNotCollide(t *testing.T) {
	c := New()

	c.Set("github-stats-acme-app", "stats", time.Minute)
	c.Set("github-stats-acme-app-failed", true, 10*time.Millisecond)

	got, ok := c.Get("github-stats-acme-app")
	assert.True(t, ok)
	assert.Equal(t, "stats", got)

	time.Sleep(30 * time.Millisecond)

	// Marker expires independently of the success entry
	_, ok = c.Get("github-stats-acme-app-failed")
	assert.False(t, ok)
	_, ok = c.Get("github-stats-acme-app")
	assert.True(t, ok)
}

func TestCacheNonPositiveTTLStoresNothing(t *testing.T) {
	c := New()

	c.Set("key", "value", 0)

	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestCacheOverwrite(t *testing.T) {
	c := New()

	c.Set("key", "old", time.Minute)
	c.Set("key", "new", time.Minute)

	got, _ := c.Get("key")
	assert.Equal(t, "new", got)
}
