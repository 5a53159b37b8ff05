package cache

import (
	"context"
	"log/slog"
	"time"

	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/venues"
)

type IntervalCache interface {
	Get(ctx context.Context, id venues.VenueID) ([]calendar.BookedInterval, bool, error)
	Set(ctx context.Context, id venues.VenueID, intervals []calendar.BookedInterval, ttl time.Duration) error
	Invalidate(ctx context.Context, id venues.VenueID) error
}

// CachedSource is a read-through cache in front of an IntervalSource. Cache
// failures are logged and fall through to the source.
type CachedSource struct {
	Source venues.IntervalSource
	Cache  IntervalCache
	TTL    time.Duration
	Logger *slog.Logger
}

func (s CachedSource) BookedIntervals(ctx context.Context, id venues.VenueID) ([]calendar.BookedInterval, error) {
	if s.Cache == nil || s.TTL <= 0 {
		return s.Source.BookedIntervals(ctx, id)
	}
	cached, ok, err := s.Cache.Get(ctx, id)
	if err != nil {
		s.warn(ctx, "interval cache read failed", id, err)
	} else if ok {
		return cached, nil
	}

	fresh, err := s.Source.BookedIntervals(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, id, fresh, s.TTL); err != nil {
		s.warn(ctx, "interval cache write failed", id, err)
	}
	return fresh, nil
}

// Invalidate drops the cached copy so the next read goes to the source.
func (s CachedSource) Invalidate(ctx context.Context, id venues.VenueID) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Invalidate(ctx, id)
}

func (s CachedSource) warn(ctx context.Context, msg string, id venues.VenueID, err error) {
	if s.Logger != nil {
		s.Logger.WarnContext(ctx, msg, "venue_id", id, "error", err)
	}
}

var _ venues.IntervalSource = CachedSource{}
