package calendar

import (
	"context"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/dto"
	"holidaze/internal/app/policies"
	"holidaze/internal/app/queries"
	"holidaze/internal/domain/venues"
)

const (
	getIntervalsKey     = "calendar.intervals"
	refreshIntervalsKey = "calendar.refresh_intervals"
	getVenueKey         = "calendar.venue"
)

type GetIntervalsQuery struct {
	VenueID string `validate:"required"`
}

func (q GetIntervalsQuery) Key() string { return getIntervalsKey }

type GetIntervalsHandler struct {
	Intervals venues.IntervalSource
}

func (h *GetIntervalsHandler) Handle(ctx context.Context, q GetIntervalsQuery) (dto.BookedIntervals, error) {
	booked, err := h.Intervals.BookedIntervals(ctx, venues.VenueID(q.VenueID))
	if err != nil {
		return dto.BookedIntervals{}, err
	}
	return dto.MapIntervals(q.VenueID, booked), nil
}

// RefreshIntervalsCommand forces a re-fetch of a venue's bookings, for
// callers that know a booking was just made or cancelled.
type RefreshIntervalsCommand struct {
	VenueID string `validate:"required"`
}

func (c RefreshIntervalsCommand) Key() string { return refreshIntervalsKey }

type RefreshIntervalsHandler struct {
	Cache     policies.IntervalInvalidator
	Intervals venues.IntervalSource
}

func (h *RefreshIntervalsHandler) Handle(ctx context.Context, cmd RefreshIntervalsCommand) (dto.BookedIntervals, error) {
	id := venues.VenueID(cmd.VenueID)
	if h.Cache != nil {
		if err := h.Cache.Invalidate(ctx, id); err != nil {
			return dto.BookedIntervals{}, err
		}
	}
	booked, err := h.Intervals.BookedIntervals(ctx, id)
	if err != nil {
		return dto.BookedIntervals{}, err
	}
	return dto.MapIntervals(cmd.VenueID, booked), nil
}

type GetVenueQuery struct {
	VenueID string `validate:"required"`
}

func (q GetVenueQuery) Key() string { return getVenueKey }

type GetVenueHandler struct {
	Venues venues.Catalog
}

func (h *GetVenueHandler) Handle(ctx context.Context, q GetVenueQuery) (dto.Venue, error) {
	v, err := h.Venues.Venue(ctx, venues.VenueID(q.VenueID))
	if err != nil {
		return dto.Venue{}, err
	}
	return dto.MapVenue(v), nil
}

var (
	_ queries.Handler[GetIntervalsQuery, dto.BookedIntervals]        = (*GetIntervalsHandler)(nil)
	_ commands.Handler[RefreshIntervalsCommand, dto.BookedIntervals] = (*RefreshIntervalsHandler)(nil)
	_ queries.Handler[GetVenueQuery, dto.Venue]                      = (*GetVenueHandler)(nil)
)
