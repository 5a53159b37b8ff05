package dto

import (
	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/sessions"
	"holidaze/internal/domain/venues"
)

type BookedInterval struct {
	From calendar.Date `json:"from"`
	To   calendar.Date `json:"to"`
}

type Venue struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Price     float64 `json:"price"`
	MaxGuests int     `json:"max_guests"`
	Bookings  int     `json:"bookings"`
}

type BookedIntervals struct {
	VenueID   string           `json:"venue_id"`
	Intervals []BookedInterval `json:"intervals"`
}

type CalendarMonth struct {
	VenueID   string             `json:"venue_id"`
	SessionID string             `json:"session_id,omitempty"`
	Today     calendar.Date      `json:"today"`
	PrevMonth string             `json:"prev_month,omitempty"`
	NextMonth string             `json:"next_month"`
	Selection Selection          `json:"selection"`
	View      calendar.MonthView `json:"view"`
}

type Selection struct {
	SessionID string                  `json:"session_id,omitempty"`
	VenueID   string                  `json:"venue_id"`
	CheckIn   *calendar.Date          `json:"check_in"`
	CheckOut  *calendar.Date          `json:"check_out"`
	State     calendar.SelectionState `json:"state"`
	Nights    int                     `json:"nights"`
	Changed   bool                    `json:"changed"`
	// Bookable is true once the stay covers at least one night. Problem
	// says why not for a started selection.
	Bookable  bool                    `json:"bookable"`
	Problem   string                  `json:"problem,omitempty"`
}

func MapVenue(v venues.Venue) Venue {
	return Venue{
		ID:        string(v.ID),
		Name:      v.Name,
		City:      v.Location.City,
		Country:   v.Location.Country,
		Price:     v.Price,
		MaxGuests: v.MaxGuests,
		Bookings:  len(v.Bookings),
	}
}

func MapIntervals(venueID string, in []calendar.BookedInterval) BookedIntervals {
	out := make([]BookedInterval, 0, len(in))
	for _, b := range in {
		out = append(out, BookedInterval{From: b.From, To: b.To})
	}
	return BookedIntervals{VenueID: venueID, Intervals: out}
}

func MapSelection(venueID string, sel calendar.Selection, changed bool) Selection {
	out := Selection{
		VenueID:  venueID,
		CheckIn:  sel.CheckIn,
		CheckOut: sel.CheckOut,
		State:    sel.State(),
		Nights:   sel.Nights(),
		Changed:  changed,
	}
	switch err := sel.Validate(); {
	case err == nil:
		out.Bookable = true
	case out.State != calendar.StateEmpty:
		out.Problem = err.Error()
	}
	return out
}

func MapSession(s *sessions.Session, changed bool) Selection {
	out := MapSelection(string(s.VenueID), s.Selection, changed)
	out.SessionID = string(s.ID)
	return out
}

func MapMonth(venueID string, view calendar.MonthView, today calendar.Date, sel Selection) CalendarMonth {
	month := CalendarMonth{
		VenueID:   venueID,
		SessionID: sel.SessionID,
		Today:     today,
		NextMonth: view.Cursor.Next().String(),
		Selection: sel,
		View:      view,
	}
	if !view.PrevDisabled {
		month.PrevMonth = view.Cursor.Previous().String()
	}
	return month
}
