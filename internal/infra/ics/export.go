package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"holidaze/internal/domain/calendar"
)

const productID = "-//Holidaze//Availability Calendar//EN"

type Export struct {
	VenueID   string
	VenueName string
	Booked    []calendar.BookedInterval
	Selection calendar.Selection
	Stamp     time.Time
}

// Render writes booked intervals and a complete selection as all-day
// events. DTEND is exclusive, so a booking through the 13th ends on the 14th.
func Render(e Export) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if e.VenueName != "" {
		cal.SetName(e.VenueName)
	}

	for i, b := range e.Booked {
		ev := cal.AddEvent(fmt.Sprintf("%s-booked-%d-%s@holidaze", e.VenueID, i, b.From))
		ev.SetDtStampTime(e.Stamp.UTC())
		ev.SetAllDayStartAt(b.From.Time(time.UTC))
		ev.SetAllDayEndAt(b.To.AddDays(1).Time(time.UTC))
		ev.SetSummary("Booked")
		ev.SetProperty(ical.ComponentPropertyTransp, "OPAQUE")
	}

	if e.Selection.State() == calendar.StateComplete {
		in, out := *e.Selection.CheckIn, *e.Selection.CheckOut
		ev := cal.AddEvent(fmt.Sprintf("%s-selection-%s@holidaze", e.VenueID, in))
		ev.SetDtStampTime(e.Stamp.UTC())
		ev.SetAllDayStartAt(in.Time(time.UTC))
		ev.SetAllDayEndAt(out.AddDays(1).Time(time.UTC))
		ev.SetSummary(fmt.Sprintf("Selected stay (%d nights)", e.Selection.Nights()))
		ev.SetProperty(ical.ComponentPropertyTransp, "TRANSPARENT")
	}
	return cal.Serialize()
}
