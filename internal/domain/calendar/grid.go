package calendar

import (
	"fmt"
	"time"
)

// GridSize is six weeks of seven days.
const GridSize = 42

var Weekdays = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// MonthCursor identifies the month displayed by a calendar.
type MonthCursor struct {
	Year  int
	Month time.Month
}

type DayCell struct {
	Date           Date `json:"date"`
	IsCurrentMonth bool `json:"is_current_month"`
}

func CursorOf(d Date) MonthCursor {
	return MonthCursor{Year: d.Year, Month: d.Month}
}

func ParseMonth(s string) (MonthCursor, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return MonthCursor{}, fmt.Errorf("%w %q", ErrInvalidMonth, s)
	}
	return MonthCursor{Year: t.Year(), Month: t.Month()}, nil
}

// MonthIndex returns the zero-based month (January = 0).
func (c MonthCursor) MonthIndex() int {
	return int(c.Month) - 1
}

func (c MonthCursor) First() Date {
	return Date{Year: c.Year, Month: c.Month, Day: 1}
}

func (c MonthCursor) DaysIn() int {
	return NewDate(c.Year, c.Month+1, 0).Day
}

func (c MonthCursor) Previous() MonthCursor {
	if c.Month == time.January {
		return MonthCursor{Year: c.Year - 1, Month: time.December}
	}
	return MonthCursor{Year: c.Year, Month: c.Month - 1}
}

func (c MonthCursor) Next() MonthCursor {
	if c.Month == time.December {
		return MonthCursor{Year: c.Year + 1, Month: time.January}
	}
	return MonthCursor{Year: c.Year, Month: c.Month + 1}
}

func (c MonthCursor) Compare(other MonthCursor) int {
	if c.Year != other.Year {
		return cmpInt(c.Year, other.Year)
	}
	return cmpInt(int(c.Month), int(other.Month))
}

// Label renders the header text, e.g. "August 2024".
func (c MonthCursor) Label() string {
	return fmt.Sprintf("%s %d", c.Month, c.Year)
}

func (c MonthCursor) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, int(c.Month))
}

func (c MonthCursor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *MonthCursor) UnmarshalText(b []byte) error {
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CanGoPrevious reports whether navigating back from c is allowed. Months at
// or before the month containing today are the floor.
func CanGoPrevious(c MonthCursor, today Date) bool {
	return c.Compare(CursorOf(today)) > 0
}

// BuildMonthGrid lays out the month as 42 consecutive days starting on the
// Sunday on or before the 1st.
func BuildMonthGrid(c MonthCursor) []DayCell {
	first := c.First()
	lead := int(first.Weekday())
	cells := make([]DayCell, 0, GridSize)

	for i := lead; i > 0; i-- {
		cells = append(cells, DayCell{Date: first.AddDays(-i)})
	}
	days := c.DaysIn()
	for i := 0; i < days; i++ {
		cells = append(cells, DayCell{Date: first.AddDays(i), IsCurrentMonth: true})
	}
	next := c.Next().First()
	for i := 0; len(cells) < GridSize; i++ {
		cells = append(cells, DayCell{Date: next.AddDays(i)})
	}
	return cells
}
