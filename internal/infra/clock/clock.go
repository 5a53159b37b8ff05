package clock

import (
	"time"

	"holidaze/internal/domain/calendar"
)

// System reads the wall clock and derives today in Location.
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	return time.Now()
}

func (s System) Today() calendar.Date {
	return calendar.Today(time.Now(), s.Location)
}

// Fixed always reports the same instant.
type Fixed struct {
	At       time.Time
	Location *time.Location
}

func (f Fixed) Now() time.Time {
	return f.At
}

func (f Fixed) Today() calendar.Date {
	return calendar.Today(f.At, f.Location)
}
