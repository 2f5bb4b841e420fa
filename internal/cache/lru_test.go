package cache

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLRUCacheTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[float64](10, time.Hour, WithClock(clock.Now))

	c.Set("USD_RUB", 92.5)

	clock.Advance(59 * time.Minute)
	if v, ok := c.Get("USD_RUB"); !ok || v != 92.5 {
		t.Fatalf("Get() = %v, %v; want 92.5, true", v, ok)
	}

	clock.Advance(time.Minute)
	if _, ok := c.Get("USD_RUB"); ok {
		t.Error("entry must expire once it is an hour old")
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0 after expiry", c.Size())
	}
}

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Hour)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used key should be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used key should survive")
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	c := NewLRUCache[int](10, time.Minute, WithClock(clock.Now))

	c.Set("a", 1)
	clock.Advance(30 * time.Second)
	c.Set("b", 2)
	clock.Advance(45 * time.Second)

	if n := c.CleanExpired(); n != 1 {
		t.Errorf("CleanExpired() = %d, want 1", n)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestManagerCleansRegisteredCaches(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rates := NewLRUCache[float64](10, time.Hour, WithClock(clock.Now))
	names := NewLRUCache[string](10, time.Minute, WithClock(clock.Now))
	rates.Set("USD_RUB", 92.5)
	names.Set("1", "Ali")
	names.Set("2", "Olga")

	m := NewManager(nil)
	m.Register(rates)
	m.Register(names)

	clock.Advance(2 * time.Minute)
	if n := m.CleanNow(); n != 2 {
		t.Errorf("CleanNow() = %d, want 2", n)
	}
	if rates.Size() != 1 {
		t.Errorf("rates Size() = %d, want 1", rates.Size())
	}
}

func TestManagerStop(t *testing.T) {
	m := NewManager(nil)
	m.Register(NewLRUCache[int](1, time.Minute))
	m.StartCleanup(time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Stop()
		m.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return")
	}
}
