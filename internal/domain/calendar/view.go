package calendar

const unsetLabel = "Select date"

// DayView is a grid cell with every display flag resolved.
type DayView struct {
	Date         Date   `json:"date"`
	Day          int    `json:"day"`
	Label        string `json:"label"`
	OutsideMonth bool   `json:"outside_month"`
	Today        bool   `json:"today"`
	Disabled     bool   `json:"disabled"`
	Selected     bool   `json:"selected"`
	InRange      bool   `json:"in_range"`
}

type MonthView struct {
	Cursor       MonthCursor `json:"month"`
	Title        string      `json:"title"`
	Weekdays     []string    `json:"weekdays"`
	PrevDisabled bool        `json:"prev_disabled"`
	Days         []DayView   `json:"days"`
	Summary      Summary     `json:"summary"`
}

// Summary is the check-in/check-out block shown under the grid.
type Summary struct {
	Visible  bool   `json:"visible"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Nights   int    `json:"nights"`
}

// ClassifyMonth builds the render model for cursor. It is recomputed from
// scratch on every call.
func ClassifyMonth(cursor MonthCursor, today Date, booked []BookedInterval, sel Selection) MonthView {
	cells := BuildMonthGrid(cursor)
	days := make([]DayView, 0, len(cells))
	for _, cell := range cells {
		days = append(days, DayView{
			Date:         cell.Date,
			Day:          cell.Date.Day,
			Label:        cell.Date.Label(),
			OutsideMonth: !cell.IsCurrentMonth,
			Today:        cell.Date == today,
			Disabled:     IsDisabled(cell.Date, today, booked),
			Selected:     sel.IsEndpoint(cell.Date),
			InRange:      sel.InRange(cell.Date),
		})
	}
	return MonthView{
		Cursor:       cursor,
		Title:        cursor.Label(),
		Weekdays:     Weekdays[:],
		PrevDisabled: !CanGoPrevious(cursor, today),
		Days:         days,
		Summary:      Summarize(sel),
	}
}

func Summarize(sel Selection) Summary {
	return Summary{
		Visible:  sel.CheckIn != nil || sel.CheckOut != nil,
		CheckIn:  labelOrUnset(sel.CheckIn),
		CheckOut: labelOrUnset(sel.CheckOut),
		Nights:   sel.Nights(),
	}
}

func labelOrUnset(d *Date) string {
	if d == nil {
		return unsetLabel
	}
	return d.Label()
}
