package cache

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"mealmatch/internal/availability"
	"mealmatch/internal/domain"
)

func TestGridCache(t *testing.T) {
	c, err := NewGridCache(2, time.Minute, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get(1); ok {
		t.Fatal("expected miss on empty cache")
	}

	grid := availability.NewDefaultGrid()
	if !c.Store(1, c.Generation(), grid) {
		t.Fatal("expected fill to be accepted")
	}
	grid[domain.WeekdayMon][domain.TimeSlotDay] = domain.AvailabilityStatusAvailable

	cached, ok := c.Get(1)
	if !ok {
		t.Fatal("expected hit")
	}
	if cached.Status(domain.WeekdayMon, domain.TimeSlotDay) != domain.AvailabilityStatusUnavailable {
		t.Error("cache should hold a copy of the stored grid")
	}

	cached[domain.WeekdayTue][domain.TimeSlotNight] = domain.AvailabilityStatusAvailable
	again, _ := c.Get(1)
	if again.Status(domain.WeekdayTue, domain.TimeSlotNight) != domain.AvailabilityStatusUnavailable {
		t.Error("mutating a returned grid changed the cache")
	}

	c.Invalidate(1)
	if _, ok := c.Get(1); ok {
		t.Error("expected miss after invalidate")
	}
}

func TestGridCacheDropsFillOlderThanInvalidate(t *testing.T) {
	c, _ := NewGridCache(4, time.Minute, zaptest.NewLogger(t))

	generation := c.Generation()
	stale := availability.NewDefaultGrid()

	// a write lands between the read and the fill
	c.Invalidate(1)

	if c.Store(1, generation, stale) {
		t.Error("fill taken before the invalidate must be dropped")
	}
	if _, ok := c.Get(1); ok {
		t.Error("stale grid was cached")
	}

	if !c.Store(1, c.Generation(), stale) {
		t.Error("fill with a current generation should be accepted")
	}
}

func TestGridCacheEvicts(t *testing.T) {
	c, _ := NewGridCache(2, time.Minute, zaptest.NewLogger(t))
	c.Store(1, c.Generation(), availability.NewDefaultGrid())
	c.Store(2, c.Generation(), availability.NewDefaultGrid())
	c.Store(3, c.Generation(), availability.NewDefaultGrid())

	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Error("oldest entry should be evicted")
	}
}

func TestGridCacheExpires(t *testing.T) {
	c, _ := NewGridCache(2, 20*time.Millisecond, zaptest.NewLogger(t))
	c.Store(1, c.Generation(), availability.NewDefaultGrid())

	time.Sleep(100 * time.Millisecond)

	if _, ok := c.Get(1); ok {
		t.Error("entry should expire after ttl")
	}
}

func TestNewGridCacheRejectsZeroSize(t *testing.T) {
	if _, err := NewGridCache(0, time.Minute, zaptest.NewLogger(t)); err == nil {
		t.Error("expected error for zero size")
	}
}
