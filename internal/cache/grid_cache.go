package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"mealmatch/internal/availability"
	"mealmatch/internal/domain"
)

// GridCache keeps recently read availability grids by user id. Grids are
// copied on the way in and out so callers can mutate what they get.
//
// Fills are conditional: a reader takes Generation before it reads the
// database and passes it to Store. Any Invalidate in between bumps the
// generation and the fill is dropped, so a read that raced a write never
// caches the pre-write grid. Entries also expire after ttl so instances that
// miss each other's invalidations converge.
type GridCache struct {
	mu         sync.Mutex
	generation uint64
	cache      *expirable.LRU[int64, domain.AvailabilityGrid]
	logger     *zap.Logger
}

func NewGridCache(size int, ttl time.Duration, logger *zap.Logger) (*GridCache, error) {
	if size <= 0 {
		return nil, errors.New("failed to create grid cache: size must be positive")
	}
	return &GridCache{
		cache:  expirable.NewLRU[int64, domain.AvailabilityGrid](size, nil, ttl),
		logger: logger.Named("grid_cache"),
	}, nil
}

func (c *GridCache) Get(userID int64) (domain.AvailabilityGrid, bool) {
	grid, ok := c.cache.Get(userID)
	if !ok {
		c.logger.Debug("cache miss", zap.Int64("user_id", userID))
		return nil, false
	}
	c.logger.Debug("cache hit", zap.Int64("user_id", userID))
	return availability.CloneGrid(grid), true
}

// Generation must be read before the database read whose result is stored.
func (c *GridCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Store caches grid unless an invalidation happened after generation was
// taken. It reports whether the grid was cached.
func (c *GridCache) Store(userID int64, generation uint64, grid domain.AvailabilityGrid) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.Debug("stale fill dropped", zap.Int64("user_id", userID))
		return false
	}
	c.cache.Add(userID, availability.CloneGrid(grid))
	c.logger.Debug("grid cached", zap.Int64("user_id", userID), zap.Int("entries", c.Len()))
	return true
}

func (c *GridCache) Invalidate(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.cache.Remove(userID)
}

func (c *GridCache) Len() int {
	return c.cache.Len()
}
