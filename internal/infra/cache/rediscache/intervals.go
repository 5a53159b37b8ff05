package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/venues"
)

const keyPrefix = "holidaze:intervals:"

type Options struct {
	Addr     string
	Password string
	DB       int
}

func NewClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// IntervalCache stores a venue's booked intervals as one JSON value.
type IntervalCache struct {
	rdb redis.Cmdable
}

func NewIntervalCache(rdb redis.Cmdable) *IntervalCache {
	return &IntervalCache{rdb: rdb}
}

func (c *IntervalCache) Get(ctx context.Context, id venues.VenueID) ([]calendar.BookedInterval, bool, error) {
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var out []calendar.BookedInterval
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (c *IntervalCache) Set(ctx context.Context, id venues.VenueID, intervals []calendar.BookedInterval, ttl time.Duration) error {
	raw, err := json.Marshal(intervals)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(id), raw, ttl).Err()
}

func (c *IntervalCache) Invalidate(ctx context.Context, id venues.VenueID) error {
	return c.rdb.Del(ctx, key(id)).Err()
}

func (c *IntervalCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func key(id venues.VenueID) string {
	return keyPrefix + string(id)
}
