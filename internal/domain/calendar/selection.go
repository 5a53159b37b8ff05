package calendar

import "errors"

var (
	ErrIncompleteSelection = errors.New("calendar: check-in and check-out are required")
	ErrZeroNights          = errors.New("calendar: check-out must be after check-in")
	ErrInvalidSelection    = errors.New("calendar: check-out needs an earlier or equal check-in")
)

type SelectionState string

const (
	StateEmpty    SelectionState = "EMPTY"
	StatePending  SelectionState = "PENDING"
	StateComplete SelectionState = "COMPLETE"
)

// Selection is the caller-owned check-in/check-out pair. The calendar never
// stores it; it only computes the next value from a click.
type Selection struct {
	CheckIn  *Date `json:"check_in"`
	CheckOut *Date `json:"check_out"`
}

func Pending(checkIn Date) Selection {
	return Selection{CheckIn: &checkIn}
}

func Complete(checkIn, checkOut Date) Selection {
	return Selection{CheckIn: &checkIn, CheckOut: &checkOut}
}

// ParseSelection parses a caller-held check-in/check-out pair. Either side
// may be empty, but a check-out needs a check-in on or before it.
func ParseSelection(checkIn, checkOut string) (Selection, error) {
	in, err := ParseDatePtr(checkIn)
	if err != nil {
		return Selection{}, err
	}
	out, err := ParseDatePtr(checkOut)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{CheckIn: in, CheckOut: out}
	if err := sel.Check(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// Check rejects a check-out that has no check-in or comes before it. A
// same-day pair passes; Validate is the stricter booking check.
func (s Selection) Check() error {
	if s.CheckOut == nil {
		return nil
	}
	if s.CheckIn == nil || s.CheckOut.Before(*s.CheckIn) {
		return ErrInvalidSelection
	}
	return nil
}

// State treats a check-out without a check-in as empty.
func (s Selection) State() SelectionState {
	switch {
	case s.CheckIn == nil:
		return StateEmpty
	case s.CheckOut == nil:
		return StatePending
	default:
		return StateComplete
	}
}

func (s Selection) Equal(other Selection) bool {
	return sameDate(s.CheckIn, other.CheckIn) && sameDate(s.CheckOut, other.CheckOut)
}

// IsEndpoint reports whether d is the check-in or check-out day.
func (s Selection) IsEndpoint(d Date) bool {
	return (s.CheckIn != nil && *s.CheckIn == d) || (s.CheckOut != nil && *s.CheckOut == d)
}

// InRange is true for days strictly between check-in and check-out.
func (s Selection) InRange(d Date) bool {
	if s.State() != StateComplete {
		return false
	}
	return d.Between(*s.CheckIn, *s.CheckOut)
}

// Nights is zero unless the selection is complete.
func (s Selection) Nights() int {
	if s.State() != StateComplete {
		return 0
	}
	return s.CheckIn.DaysUntil(*s.CheckOut)
}

// Validate is the booking-side check: the calendar itself permits a
// same-day check-in/check-out.
func (s Selection) Validate() error {
	if s.State() != StateComplete {
		return ErrIncompleteSelection
	}
	if s.Nights() < 1 {
		return ErrZeroNights
	}
	return nil
}

// SelectDay applies one click to the current selection. The second return
// value is false when the click is ignored and the selection is unchanged.
//
// Rules, in order: disabled days are ignored; from an empty or complete
// selection the click starts a new one; while pending, an earlier day
// restarts, a day whose range would straddle a booking restarts, and any
// other day completes the range.
func SelectDay(clicked Date, current Selection, booked []BookedInterval, today Date) (Selection, bool) {
	if IsDisabled(clicked, today, booked) {
		return current, false
	}
	if current.State() != StatePending {
		return Pending(clicked), true
	}
	checkIn := *current.CheckIn
	if clicked.Before(checkIn) {
		return Pending(clicked), true
	}
	if HasConflict(checkIn, clicked, booked) {
		return Pending(clicked), true
	}
	return Complete(checkIn, clicked), true
}

func sameDate(a, b *Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
