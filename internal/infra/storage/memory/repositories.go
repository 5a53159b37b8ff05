package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/sessions"
	"holidaze/internal/domain/venues"
)

// VenueRepository serves venues from memory, e.g. loaded from fixtures.
type VenueRepository struct {
	mu       sync.RWMutex
	items    map[venues.VenueID]venues.Venue
	location *time.Location
}

func NewVenueRepository(loc *time.Location) *VenueRepository {
	return &VenueRepository{items: make(map[venues.VenueID]venues.Venue), location: loc}
}

func (r *VenueRepository) Save(ctx context.Context, v venues.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[v.ID] = v
	return nil
}

func (r *VenueRepository) Venue(ctx context.Context, id venues.VenueID) (venues.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return venues.Venue{}, fmt.Errorf("%w: %s", venues.ErrVenueNotFound, id)
	}
	return v, nil
}

func (r *VenueRepository) BookedIntervals(ctx context.Context, id venues.VenueID) ([]calendar.BookedInterval, error) {
	v, err := r.Venue(ctx, id)
	if err != nil {
		return nil, err
	}
	return v.BookedIntervals(r.location), nil
}

// SessionRepository keeps selection sessions in memory. Stored sessions are
// copied in and out so callers never share a pointer with the store.
type SessionRepository struct {
	mu    sync.Mutex
	items map[sessions.SessionID]sessionEntry
	ttl   time.Duration
	now   func() time.Time
}

type sessionEntry struct {
	session   sessions.Session
	expiresAt time.Time
}

// NewSessionRepository expires sessions ttl after their last save; zero
// disables expiry.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{items: make(map[sessions.SessionID]sessionEntry), ttl: ttl, now: time.Now}
}

func (r *SessionRepository) ByID(ctx context.Context, id sessions.SessionID) (*sessions.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.items[id]
	if !ok {
		return nil, sessions.ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		delete(r.items, id)
		return nil, sessions.ErrSessionNotFound
	}
	s := entry.session
	s.ClearEvents()
	return &s, nil
}

// Save rejects writes based on a stale version.
func (r *SessionRepository) Save(ctx context.Context, s *sessions.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[s.ID]; ok && existing.session.Version != s.Version {
		return sessions.ErrConcurrentClick
	}
	s.Version++
	stored := *s
	stored.ClearEvents()
	entry := sessionEntry{session: stored}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}
	r.items[s.ID] = entry
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id sessions.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return sessions.ErrSessionNotFound
	}
	delete(r.items, id)
	return nil
}

var (
	_ venues.IntervalSource = (*VenueRepository)(nil)
	_ sessions.Repository   = (*SessionRepository)(nil)
)
