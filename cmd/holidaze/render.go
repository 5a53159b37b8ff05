package main

import (
	"fmt"
	"io"
	"strings"

	"holidaze/internal/app/dto"
	"holidaze/internal/domain/calendar"
)

const cellWidth = 4

// renderMonth prints the grid as text. Each in-month day carries one marker:
// '*' check-in or check-out, '~' between them, 'x' unavailable.
func renderMonth(w io.Writer, m dto.CalendarMonth) {
	view := m.View
	width := cellWidth * len(view.Weekdays)
	pad := (width - len(view.Title)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), view.Title)

	var header strings.Builder
	for _, wd := range view.Weekdays {
		fmt.Fprintf(&header, "%*s", cellWidth, wd)
	}
	fmt.Fprintln(w, header.String())

	var row strings.Builder
	for i, d := range view.Days {
		row.WriteString(dayCell(d))
		if (i+1)%len(view.Weekdays) == 0 {
			fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Check-in:  %s\n", view.Summary.CheckIn)
	fmt.Fprintf(w, "Check-out: %s\n", view.Summary.CheckOut)
	if view.Summary.Visible {
		fmt.Fprintf(w, "Nights:    %d\n", view.Summary.Nights)
	}
	prev := m.PrevMonth
	if prev == "" {
		prev = "-"
	}
	fmt.Fprintf(w, "prev %s  next %s\n", prev, m.NextMonth)
}

func dayCell(d calendar.DayView) string {
	if d.OutsideMonth {
		return strings.Repeat(" ", cellWidth)
	}
	marker := ' '
	switch {
	case d.Selected:
		marker = '*'
	case d.InRange:
		marker = '~'
	case d.Disabled:
		marker = 'x'
	}
	return fmt.Sprintf("%*d%c", cellWidth-1, d.Day, marker)
}

func renderTransition(w io.Writer, clicked calendar.Date, before calendar.Selection, after dto.Selection) {
	fmt.Fprintf(w, "clicked   %s\n", clicked.Label())
	fmt.Fprintf(w, "before    %s\n", describeSelection(before))
	fmt.Fprintf(w, "after     %s\n", describeSelection(calendar.Selection{CheckIn: after.CheckIn, CheckOut: after.CheckOut}))
	if !after.Changed {
		fmt.Fprintln(w, "unchanged (day is unavailable)")
	}
	if after.State == calendar.StateComplete {
		fmt.Fprintf(w, "nights    %d\n", after.Nights)
	}
	switch {
	case after.Bookable:
		fmt.Fprintln(w, "bookable  yes")
	case after.Problem != "":
		fmt.Fprintf(w, "bookable  no (%s)\n", after.Problem)
	}
}

func describeSelection(sel calendar.Selection) string {
	s := calendar.Summarize(sel)
	return fmt.Sprintf("%s -> %s [%s]", s.CheckIn, s.CheckOut, sel.State())
}
