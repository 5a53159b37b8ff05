package calendar

// BookedInterval is an existing reservation occupying every day from From
// through To inclusive.
type BookedInterval struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

func (b BookedInterval) Contains(d Date) bool {
	return !d.Before(b.From) && !d.After(b.To)
}

// IsDisabled reports whether d cannot be picked: it is before today or it
// falls inside one of the booked intervals. Today itself stays selectable.
func IsDisabled(d, today Date, booked []BookedInterval) bool {
	if d.Before(today) {
		return true
	}
	for _, b := range booked {
		if b.Contains(d) {
			return true
		}
	}
	return false
}

// HasConflict reports whether any booked interval starts or ends strictly
// between checkIn and candidate, meaning a range between them would pass
// through an occupied day.
func HasConflict(checkIn, candidate Date, booked []BookedInterval) bool {
	for _, b := range booked {
		if b.From.Between(checkIn, candidate) || b.To.Between(checkIn, candidate) {
			return true
		}
	}
	return false
}
