package calendar

import (
	"context"

	"holidaze/internal/app/dto"
	"holidaze/internal/app/policies"
	"holidaze/internal/app/queries"
	domaincalendar "holidaze/internal/domain/calendar"
	"holidaze/internal/domain/sessions"
	"holidaze/internal/domain/venues"
)

const getMonthKey = "calendar.month"

// GetMonthQuery renders one month of a venue's calendar. The selection comes
// from SessionID when set, otherwise from Selection as supplied by the caller.
// A zero Month means the month containing today.
type GetMonthQuery struct {
	VenueID   string `validate:"required"`
	Month     domaincalendar.MonthCursor
	SessionID string
	Selection domaincalendar.Selection
}

func (q GetMonthQuery) Key() string { return getMonthKey }

type GetMonthHandler struct {
	Intervals venues.IntervalSource
	Sessions  sessions.Repository
	Clock     policies.Clock
}

func (h *GetMonthHandler) Handle(ctx context.Context, q GetMonthQuery) (dto.CalendarMonth, error) {
	venueID := venues.VenueID(q.VenueID)
	today := h.Clock.Today()

	nav := domaincalendar.NewNavigator(today)
	if q.Month != (domaincalendar.MonthCursor{}) {
		nav.Jump(q.Month)
	}

	if err := q.Selection.Check(); err != nil {
		return dto.CalendarMonth{}, err
	}
	selection := dto.MapSelection(q.VenueID, q.Selection, false)
	sel := q.Selection
	if q.SessionID != "" {
		session, err := h.Sessions.ByID(ctx, sessions.SessionID(q.SessionID))
		if err != nil {
			return dto.CalendarMonth{}, err
		}
		if err := session.CheckVenue(venueID); err != nil {
			return dto.CalendarMonth{}, err
		}
		sel = session.Selection
		selection = dto.MapSession(session, false)
	}

	booked, err := h.Intervals.BookedIntervals(ctx, venueID)
	if err != nil {
		return dto.CalendarMonth{}, err
	}
	view := domaincalendar.ClassifyMonth(nav.Cursor(), today, booked, sel)
	return dto.MapMonth(q.VenueID, view, today, selection), nil
}

var _ queries.Handler[GetMonthQuery, dto.CalendarMonth] = (*GetMonthHandler)(nil)
