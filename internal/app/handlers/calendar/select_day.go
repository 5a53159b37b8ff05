package calendar

import (
	"context"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/dto"
	"holidaze/internal/app/outbox"
	"holidaze/internal/app/policies"
	domaincalendar "holidaze/internal/domain/calendar"
	"holidaze/internal/domain/sessions"
	"holidaze/internal/domain/venues"
)

const selectDayKey = "calendar.select_day"

// SelectDayCommand applies one day click. With a SessionID the stored
// selection is advanced and saved; without one Current is advanced and only
// returned, leaving storage to the caller.
type SelectDayCommand struct {
	VenueID   string `validate:"required"`
	SessionID string
	Day       domaincalendar.Date
	Current   domaincalendar.Selection
}

func (c SelectDayCommand) Key() string { return selectDayKey }

type SelectDayHandler struct {
	Intervals venues.IntervalSource
	Sessions  sessions.Repository
	Clock     policies.Clock
	Outbox    outbox.Outbox
	Encoder   outbox.EventEncoder
}

func (h *SelectDayHandler) Handle(ctx context.Context, cmd SelectDayCommand) (dto.Selection, error) {
	if cmd.Day.IsZero() {
		return dto.Selection{}, domaincalendar.ErrInvalidDate
	}
	if err := cmd.Current.Check(); err != nil {
		return dto.Selection{}, err
	}
	venueID := venues.VenueID(cmd.VenueID)

	session := sessions.New("", venueID, h.Clock.Now())
	session.Selection = cmd.Current
	if cmd.SessionID != "" {
		stored, err := h.Sessions.ByID(ctx, sessions.SessionID(cmd.SessionID))
		if err != nil {
			return dto.Selection{}, err
		}
		if err := stored.CheckVenue(venueID); err != nil {
			return dto.Selection{}, err
		}
		session = stored
	}

	booked, err := h.Intervals.BookedIntervals(ctx, venueID)
	if err != nil {
		return dto.Selection{}, err
	}

	changed := session.Click(cmd.Day, booked, h.Clock.Today(), h.Clock.Now())
	if !changed {
		return dto.MapSession(session, false), nil
	}
	if session.ID != "" {
		if err := h.Sessions.Save(ctx, session); err != nil {
			return dto.Selection{}, err
		}
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, session); err != nil {
		return dto.Selection{}, err
	}
	return dto.MapSession(session, true), nil
}

var _ commands.Handler[SelectDayCommand, dto.Selection] = (*SelectDayHandler)(nil)
