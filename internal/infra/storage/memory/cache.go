package memory

import (
	"context"
	"sync"
	"time"

	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/venues"
)

// IntervalCache is a process-local cache of booked intervals per venue.
type IntervalCache struct {
	mu    sync.Mutex
	items map[venues.VenueID]cachedIntervals
	now   func() time.Time
}

type cachedIntervals struct {
	intervals []calendar.BookedInterval
	expiresAt time.Time
}

func NewIntervalCache() *IntervalCache {
	return &IntervalCache{items: make(map[venues.VenueID]cachedIntervals), now: time.Now}
}

func (c *IntervalCache) Get(ctx context.Context, id venues.VenueID) ([]calendar.BookedInterval, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(item.expiresAt) {
		delete(c.items, id)
		return nil, false, nil
	}
	return append([]calendar.BookedInterval(nil), item.intervals...), true, nil
}

func (c *IntervalCache) Set(ctx context.Context, id venues.VenueID, intervals []calendar.BookedInterval, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[id] = cachedIntervals{
		intervals: append([]calendar.BookedInterval(nil), intervals...),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *IntervalCache) Invalidate(ctx context.Context, id venues.VenueID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}
