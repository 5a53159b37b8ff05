package calendar

// Navigator owns the displayed month. It is the only mutable state of a
// calendar and is not safe for concurrent use.
type Navigator struct {
	cursor MonthCursor
	today  Date
}

// NewNavigator starts on the month containing today.
func NewNavigator(today Date) *Navigator {
	return &Navigator{cursor: CursorOf(today), today: today}
}

func (n *Navigator) Cursor() MonthCursor {
	return n.cursor
}

// Previous moves back one month unless that would show a month entirely in
// the past. It reports whether the cursor moved.
func (n *Navigator) Previous() bool {
	if !CanGoPrevious(n.cursor, n.today) {
		return false
	}
	n.cursor = n.cursor.Previous()
	return true
}

func (n *Navigator) Next() {
	n.cursor = n.cursor.Next()
}

// Jump moves directly to c, clamped to the month of today.
func (n *Navigator) Jump(c MonthCursor) {
	if floor := CursorOf(n.today); c.Compare(floor) < 0 {
		c = floor
	}
	n.cursor = c
}
