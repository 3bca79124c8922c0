package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

type entry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
	removed bool
}

type Stats = models.RateLimitStats

// Limiter counts requests per client in fixed windows.
// Check-and-increment is atomic per client; different clients never contend on one lock.
type Limiter struct {
	entries     sync.Map // client id -> *entry
	window      time.Duration
	maxRequests int
	now         func() time.Time
	logger      zerolog.Logger
}

func NewLimiter(window time.Duration, maxRequests int, logger zerolog.Logger) *Limiter {
	return &Limiter{
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
		logger:      logger.With().Str("component", "RateLimiter").Logger(),
	}
}

// Check records one request for clientID and reports whether it is allowed.
func (l *Limiter) Check(clientID string) models.RateLimitResult {
	now := l.now()
	for {
		e := l.load(clientID)

		e.mu.Lock()
		if e.removed {
			// swept between load and lock, take the fresh entry
			e.mu.Unlock()
			continue
		}
		res := l.hit(e, now)
		e.mu.Unlock()

		if !res.Allowed {
			l.logger.Warn().
				Str("client", clientID).
				Time("reset_at", res.ResetAt).
				Msg("rate limit exceeded")
		}
		return res
	}
}

func (l *Limiter) load(clientID string) *entry {
	if v, ok := l.entries.Load(clientID); ok {
		return v.(*entry)
	}
	v, _ := l.entries.LoadOrStore(clientID, &entry{})
	return v.(*entry)
}

func (l *Limiter) hit(e *entry, now time.Time) models.RateLimitResult {
	if e.count == 0 || !now.Before(e.resetAt) {
		e.count = 1
		e.resetAt = now.Add(l.window)
		return models.RateLimitResult{Allowed: true, Remaining: l.maxRequests - 1, ResetAt: e.resetAt}
	}

	if e.count >= l.maxRequests {
		return models.RateLimitResult{Allowed: false, Remaining: 0, ResetAt: e.resetAt}
	}

	e.count++
	return models.RateLimitResult{Allowed: true, Remaining: l.maxRequests - e.count, ResetAt: e.resetAt}
}

// Sweep drops entries whose window has expired and returns how many were removed.
// Entries locked by an in-flight Check are skipped until the next sweep.
func (l *Limiter) Sweep() int {
	now := l.now()
	removed := 0

	l.entries.Range(func(key, value any) bool {
		e := value.(*entry)
		if !e.mu.TryLock() {
			return true
		}
		if !e.removed && !now.Before(e.resetAt) {
			e.removed = true
			l.entries.CompareAndDelete(key, e)
			removed++
		}
		e.mu.Unlock()
		return true
	})

	return removed
}

func (l *Limiter) Stats() Stats {
	n := 0
	l.entries.Range(func(_, _ any) bool {
		n++
		return true
	})

	return Stats{
		Entries:     n,
		MaxRequests: l.maxRequests,
		WindowMs:    l.window.Milliseconds(),
	}
}
