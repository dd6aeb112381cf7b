package holiday

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type cachedYear struct {
	entries   []Entry
	fetchedAt time.Time
}

// Cache memoizes holiday calendars per year with a TTL. The provider is a
// best-effort external service: a failed fetch degrades to "no holidays
// known" for that year and is logged, never propagated.
type Cache struct {
	provider Provider
	ttl      time.Duration

	mu    sync.RWMutex
	years map[int]cachedYear
}

func NewCache(provider Provider, ttl time.Duration) *Cache {
	return &Cache{
		provider: provider,
		ttl:      ttl,
		years:    make(map[int]cachedYear),
	}
}

// ForYear returns the cached calendar for a year, fetching it on a miss or
// after the TTL elapses. Returns an empty calendar when the provider fails.
func (c *Cache) ForYear(ctx context.Context, year int) []Entry {
	c.mu.RLock()
	cached, ok := c.years[year]
	c.mu.RUnlock()

	if ok && time.Since(cached.fetchedAt) < c.ttl {
		return cached.entries
	}

	entries, err := c.provider.FetchHolidays(ctx, year)
	if err != nil {
		slog.Warn("holiday provider unavailable, treating year as holiday-free",
			"year", year, "error", err)
		if ok {
			// Stale data beats no data
			return cached.entries
		}
		return nil
	}

	c.mu.Lock()
	c.years[year] = cachedYear{entries: entries, fetchedAt: time.Now()}
	c.mu.Unlock()

	return entries
}

// ForRange returns the combined calendar covering every year touched by
// [start, end].
func (c *Cache) ForRange(ctx context.Context, start, end time.Time) []Entry {
	var all []Entry
	for year := start.Year(); year <= end.Year(); year++ {
		all = append(all, c.ForYear(ctx, year)...)
	}
	return all
}

// Refresh forces a fetch for a year, replacing any cached calendar. Used by
// the cron job to keep the current year warm.
func (c *Cache) Refresh(ctx context.Context, year int) error {
	entries, err := c.provider.FetchHolidays(ctx, year)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.years[year] = cachedYear{entries: entries, fetchedAt: time.Now()}
	c.mu.Unlock()

	return nil
}
