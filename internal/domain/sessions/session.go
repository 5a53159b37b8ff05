package sessions

import (
	"context"
	"errors"
	"time"

	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/shared/events"
	"holidaze/internal/domain/venues"
)

var (
	ErrSessionNotFound = errors.New("sessions: session not found")
	ErrVenueMismatch   = errors.New("sessions: session belongs to another venue")
	ErrConcurrentClick = errors.New("sessions: session was modified concurrently")
)

type SessionID string

// Session holds the check-in/check-out pair a client is building for one
// venue. It plays the role of the booking page that owns the selection.
type Session struct {
	ID        SessionID
	VenueID   venues.VenueID
	Selection calendar.Selection
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id SessionID) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id SessionID) error
}

func New(id SessionID, venueID venues.VenueID, now time.Time) *Session {
	return &Session{ID: id, VenueID: venueID, CreatedAt: now.UTC(), UpdatedAt: now.UTC()}
}

// Click feeds a day click through the calendar transition. Ignored clicks
// leave the session untouched and record nothing.
func (s *Session) Click(day calendar.Date, booked []calendar.BookedInterval, today calendar.Date, now time.Time) bool {
	next, changed := calendar.SelectDay(day, s.Selection, booked, today)
	if !changed {
		return false
	}
	s.apply(next, &day, now)
	return true
}

// Reset clears the selection. It reports false when there was nothing to
// clear.
func (s *Session) Reset(now time.Time) bool {
	if s.Selection.State() == calendar.StateEmpty {
		return false
	}
	s.apply(calendar.Selection{}, nil, now)
	return true
}

func (s *Session) CheckVenue(venueID venues.VenueID) error {
	if s.VenueID != venueID {
		return ErrVenueMismatch
	}
	return nil
}

func (s *Session) apply(next calendar.Selection, clicked *calendar.Date, now time.Time) {
	s.Selection = next
	s.UpdatedAt = now.UTC()
	s.Record(SelectionChanged{
		SessionID: string(s.ID),
		VenueID:   string(s.VenueID),
		Clicked:   clicked,
		CheckIn:   next.CheckIn,
		CheckOut:  next.CheckOut,
		State:     next.State(),
		At:        now.UTC(),
	})
}
