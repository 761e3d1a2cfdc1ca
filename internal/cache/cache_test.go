package cache

import (
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got.(string) != "v" {
		t.Errorf("Get = %v, want v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Minute)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	c.now = func() time.Time { return current }

	c.Set("k", 42)

	current = base.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry expired before TTL")
	}

	current = base.Add(61 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("entry survived past TTL")
	}

	// Lazy expiry removes the entry on read.
	if c.Len() != 0 {
		t.Errorf("Len = %d after expired read, want 0", c.Len())
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(0) // default TTL
	c.Set("k", "v")
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after Delete")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1)
	c.Set("k", 2)

	got, ok := c.Get("k")
	if !ok || got.(int) != 2 {
		t.Errorf("Get = %v (%v), want 2", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}
