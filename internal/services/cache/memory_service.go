package cache

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

var ErrCacheMiss = models.ErrCacheMiss

type Stats = models.CacheStats

// Key normalizes coordinates to two decimals so requests ~1 km apart share an entry.
func Key(lat, lon float64, unit models.Unit) string {
	return fmt.Sprintf("%.2f,%.2f,%s", lat, lon, unit)
}

type memoryEntry[T any] struct {
	key       string
	value     T
	timestamp time.Time
}

// MemoryCache is a process-local TTL cache with a size cap.
// At capacity it drops the oldest inserted entries in one batch.
type MemoryCache[T any] struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	ttl        time.Duration
	maxSize    int
	evictBatch int
	now        func() time.Time
	logger     zerolog.Logger
}

func NewMemoryCache[T any](
	ttl time.Duration,
	maxSize int,
	evictBatch int,
	logger zerolog.Logger,
) *MemoryCache[T] {
	return &MemoryCache[T]{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		ttl:        ttl,
		maxSize:    maxSize,
		evictBatch: evictBatch,
		now:        time.Now,
		logger:     logger,
	}
}

//nolint:ireturn
func (c *MemoryCache[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return zero, ErrCacheMiss
	}

	e := el.Value.(*memoryEntry[T])
	if c.now().Sub(e.timestamp) > c.ttl {
		c.remove(el)
		c.logger.Debug().
			Ctx(ctx).
			Str("key", key).
			Msg("cache entry expired")
		return zero, ErrCacheMiss
	}

	return e.value, nil
}

func (c *MemoryCache[T]) Set(ctx context.Context, key string, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}

	if len(c.entries) >= c.maxSize {
		evicted := c.evictOldest(c.evictBatch)
		c.logger.Info().
			Ctx(ctx).
			Int("evicted", evicted).
			Int("max_size", c.maxSize).
			Msg("cache at capacity, evicted oldest entries")
	}

	c.entries[key] = c.order.PushBack(&memoryEntry[T]{key: key, value: value, timestamp: c.now()})
	return nil
}

func (c *MemoryCache[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.mu.Unlock()

	c.logger.Info().
		Ctx(ctx).
		Int("dropped", n).
		Msg("cache cleared")
	return nil
}

func (c *MemoryCache[T]) Stats(_ context.Context) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{Size: len(c.entries), MaxSize: c.maxSize, TTLMs: c.ttl.Milliseconds()}
}

func (c *MemoryCache[T]) evictOldest(n int) int {
	evicted := 0
	for evicted < n {
		el := c.order.Front()
		if el == nil {
			break
		}
		c.remove(el)
		evicted++
	}
	return evicted
}

func (c *MemoryCache[T]) remove(el *list.Element) {
	e := c.order.Remove(el).(*memoryEntry[T])
	delete(c.entries, e.key)
}
