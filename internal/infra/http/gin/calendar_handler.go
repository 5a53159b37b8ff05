package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/dto"
	calendarapp "holidaze/internal/app/handlers/calendar"
	"holidaze/internal/app/queries"
	"holidaze/internal/domain/calendar"
	"holidaze/internal/infra/ics"
)

type CalendarHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Now      func() time.Time
}

type selectRequest struct {
	Session  string `json:"session"`
	Date     string `json:"date" binding:"required"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// Month serves GET /venues/:id/calendar?month=YYYY-MM&session=&check_in=&check_out=.
func (h CalendarHandler) Month(c *gin.Context) {
	query := calendarapp.GetMonthQuery{VenueID: c.Param("id"), SessionID: c.Query("session")}
	if raw := c.Query("month"); raw != "" {
		month, err := calendar.ParseMonth(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		query.Month = month
	}
	sel, err := calendar.ParseSelection(c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		writeError(c, err)
		return
	}
	query.Selection = sel

	result, err := queries.Ask[calendarapp.GetMonthQuery, dto.CalendarMonth](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) Intervals(c *gin.Context) {
	query := calendarapp.GetIntervalsQuery{VenueID: c.Param("id")}
	result, err := queries.Ask[calendarapp.GetIntervalsQuery, dto.BookedIntervals](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) Venue(c *gin.Context) {
	query := calendarapp.GetVenueQuery{VenueID: c.Param("id")}
	result, err := queries.Ask[calendarapp.GetVenueQuery, dto.Venue](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RefreshIntervals drops cached bookings and answers with a fresh copy.
func (h CalendarHandler) RefreshIntervals(c *gin.Context) {
	cmd := calendarapp.RefreshIntervalsCommand{VenueID: c.Param("id")}
	result, err := commands.Dispatch[calendarapp.RefreshIntervalsCommand, dto.BookedIntervals](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ICS exports booked days, plus the session's range when it is complete.
func (h CalendarHandler) ICS(c *gin.Context) {
	ctx := c.Request.Context()
	venueID := c.Param("id")
	venue, err := queries.Ask[calendarapp.GetVenueQuery, dto.Venue](ctx, h.Queries, calendarapp.GetVenueQuery{VenueID: venueID})
	if err != nil {
		writeError(c, err)
		return
	}
	booked, err := queries.Ask[calendarapp.GetIntervalsQuery, dto.BookedIntervals](ctx, h.Queries, calendarapp.GetIntervalsQuery{VenueID: venueID})
	if err != nil {
		writeError(c, err)
		return
	}
	export := ics.Export{VenueID: venueID, VenueName: venue.Name, Stamp: h.now()}
	for _, b := range booked.Intervals {
		export.Booked = append(export.Booked, calendar.BookedInterval{From: b.From, To: b.To})
	}
	if session := c.Query("session"); session != "" {
		sel, err := queries.Ask[calendarapp.GetSessionQuery, dto.Selection](ctx, h.Queries, calendarapp.GetSessionQuery{VenueID: venueID, SessionID: session})
		if err != nil {
			writeError(c, err)
			return
		}
		export.Selection = calendar.Selection{CheckIn: sel.CheckIn, CheckOut: sel.CheckOut}
	}
	c.Header("Content-Disposition", `attachment; filename="`+venueID+`.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics.Render(export)))
}

// Select applies one click. Without a session the caller passes its current
// check_in/check_out and stores the answer itself.
func (h CalendarHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, err := calendar.ParseDate(req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	current, err := calendar.ParseSelection(req.CheckIn, req.CheckOut)
	if err != nil {
		writeError(c, err)
		return
	}
	cmd := calendarapp.SelectDayCommand{
		VenueID:   c.Param("id"),
		SessionID: req.Session,
		Day:       day,
		Current:   current,
	}
	result, err := commands.Dispatch[calendarapp.SelectDayCommand, dto.Selection](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) StartSession(c *gin.Context) {
	cmd := calendarapp.StartSessionCommand{VenueID: c.Param("id")}
	result, err := commands.Dispatch[calendarapp.StartSessionCommand, dto.Selection](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h CalendarHandler) GetSession(c *gin.Context) {
	query := calendarapp.GetSessionQuery{VenueID: c.Param("id"), SessionID: c.Param("session")}
	result, err := queries.Ask[calendarapp.GetSessionQuery, dto.Selection](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) ResetSession(c *gin.Context) {
	h.reset(c, false)
}

func (h CalendarHandler) DeleteSession(c *gin.Context) {
	h.reset(c, true)
}

func (h CalendarHandler) reset(c *gin.Context, remove bool) {
	cmd := calendarapp.ResetSessionCommand{VenueID: c.Param("id"), SessionID: c.Param("session"), Delete: remove}
	result, err := commands.Dispatch[calendarapp.ResetSessionCommand, dto.Selection](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	if remove {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ CalendarHTTP = CalendarHandler{}
