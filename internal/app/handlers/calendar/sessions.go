package calendar

import (
	"context"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/dto"
	"holidaze/internal/app/outbox"
	"holidaze/internal/app/policies"
	"holidaze/internal/app/queries"
	"holidaze/internal/domain/sessions"
	"holidaze/internal/domain/venues"
)

const (
	startSessionKey = "calendar.start_session"
	resetSessionKey = "calendar.reset_session"
)

type StartSessionCommand struct {
	VenueID string `validate:"required"`
}

func (c StartSessionCommand) Key() string { return startSessionKey }

// StartSessionHandler opens an empty selection for a venue. The venue is
// looked up first so unknown venues fail before anything is stored.
type StartSessionHandler struct {
	Intervals venues.IntervalSource
	Sessions  sessions.Repository
	Clock     policies.Clock
	IDs       policies.SessionIDs
}

func (h *StartSessionHandler) Handle(ctx context.Context, cmd StartSessionCommand) (dto.Selection, error) {
	venueID := venues.VenueID(cmd.VenueID)
	if _, err := h.Intervals.BookedIntervals(ctx, venueID); err != nil {
		return dto.Selection{}, err
	}
	session := sessions.New(sessions.SessionID(h.IDs.NewID()), venueID, h.Clock.Now())
	if err := h.Sessions.Save(ctx, session); err != nil {
		return dto.Selection{}, err
	}
	return dto.MapSession(session, false), nil
}

type ResetSessionCommand struct {
	VenueID   string `validate:"required"`
	SessionID string `validate:"required"`
	// Delete removes the session instead of clearing it.
	Delete bool
}

func (c ResetSessionCommand) Key() string { return resetSessionKey }

type ResetSessionHandler struct {
	Sessions sessions.Repository
	Clock    policies.Clock
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
}

func (h *ResetSessionHandler) Handle(ctx context.Context, cmd ResetSessionCommand) (dto.Selection, error) {
	session, err := h.Sessions.ByID(ctx, sessions.SessionID(cmd.SessionID))
	if err != nil {
		return dto.Selection{}, err
	}
	if err := session.CheckVenue(venues.VenueID(cmd.VenueID)); err != nil {
		return dto.Selection{}, err
	}
	if cmd.Delete {
		if err := h.Sessions.Delete(ctx, session.ID); err != nil {
			return dto.Selection{}, err
		}
		return dto.MapSession(session, false), nil
	}
	if !session.Reset(h.Clock.Now()) {
		return dto.MapSession(session, false), nil
	}
	if err := h.Sessions.Save(ctx, session); err != nil {
		return dto.Selection{}, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, session); err != nil {
		return dto.Selection{}, err
	}
	return dto.MapSession(session, true), nil
}

var (
	_ commands.Handler[StartSessionCommand, dto.Selection] = (*StartSessionHandler)(nil)
	_ commands.Handler[ResetSessionCommand, dto.Selection] = (*ResetSessionHandler)(nil)
)

const getSessionKey = "calendar.session"

type GetSessionQuery struct {
	VenueID   string `validate:"required"`
	SessionID string `validate:"required"`
}

func (q GetSessionQuery) Key() string { return getSessionKey }

type GetSessionHandler struct {
	Sessions sessions.Repository
}

func (h *GetSessionHandler) Handle(ctx context.Context, q GetSessionQuery) (dto.Selection, error) {
	session, err := h.Sessions.ByID(ctx, sessions.SessionID(q.SessionID))
	if err != nil {
		return dto.Selection{}, err
	}
	if err := session.CheckVenue(venues.VenueID(q.VenueID)); err != nil {
		return dto.Selection{}, err
	}
	return dto.MapSession(session, false), nil
}

var _ queries.Handler[GetSessionQuery, dto.Selection] = (*GetSessionHandler)(nil)
