package policies

import (
	"context"
	"time"

	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/venues"
)

// Clock supplies the current instant and the calendar day it falls on.
type Clock interface {
	Now() time.Time
	Today() calendar.Date
}

// SessionIDs mints identifiers for new selection sessions.
type SessionIDs interface {
	NewID() string
}

// IntervalInvalidator drops whatever copy of a venue's booked intervals is
// held between the service and the venue source.
type IntervalInvalidator interface {
	Invalidate(ctx context.Context, id venues.VenueID) error
}
