package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/dto"
	calendarapp "holidaze/internal/app/handlers/calendar"
	"holidaze/internal/app/middleware"
	"holidaze/internal/app/outbox"
	"holidaze/internal/app/queries"
	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/venues"
	"holidaze/internal/infra/cache"
	"holidaze/internal/infra/clock"
	"holidaze/internal/infra/obs"
	"holidaze/internal/infra/storage/memory"
	"holidaze/internal/infra/validation"
)

type nopOutbox struct{}

func (nopOutbox) Add(ctx context.Context, rec outbox.EventRecord) error { return nil }
func (nopOutbox) Flush(ctx context.Context) error                       { return nil }

type fixedIDs struct{}

func (fixedIDs) NewID() string { return "sess-1" }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	now := time.Date(2024, time.August, 8, 12, 0, 0, 0, time.UTC)
	clk := clock.Fixed{At: now, Location: time.UTC}

	venueRepo := memory.NewVenueRepository(time.UTC)
	require.NoError(t, venueRepo.Save(context.Background(), venues.Venue{
		ID:   "v-1",
		Name: "Fjordside Cabin",
		Bookings: []venues.Booking{{
			DateFrom: time.Date(2024, time.August, 20, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2024, time.August, 22, 0, 0, 0, 0, time.UTC),
		}},
	}))
	sessionRepo := memory.NewSessionRepository(0)
	cached := cache.CachedSource{Source: venueRepo, Cache: memory.NewIntervalCache(), TTL: time.Hour}
	encoder := outbox.JSONEventEncoder{}

	cmdBus := commands.NewInMemoryBus()
	commands.RegisterHandler[calendarapp.SelectDayCommand, dto.Selection](cmdBus, &calendarapp.SelectDayHandler{
		Intervals: venueRepo, Sessions: sessionRepo, Clock: clk, Outbox: nopOutbox{}, Encoder: encoder,
	})
	commands.RegisterHandler[calendarapp.StartSessionCommand, dto.Selection](cmdBus, &calendarapp.StartSessionHandler{
		Intervals: venueRepo, Sessions: sessionRepo, Clock: clk, IDs: fixedIDs{},
	})
	commands.RegisterHandler[calendarapp.ResetSessionCommand, dto.Selection](cmdBus, &calendarapp.ResetSessionHandler{
		Sessions: sessionRepo, Clock: clk, Outbox: nopOutbox{}, Encoder: encoder,
	})
	commands.RegisterHandler[calendarapp.RefreshIntervalsCommand, dto.BookedIntervals](cmdBus, &calendarapp.RefreshIntervalsHandler{
		Cache: cached, Intervals: cached,
	})
	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler[calendarapp.GetMonthQuery, dto.CalendarMonth](queryBus, &calendarapp.GetMonthHandler{
		Intervals: venueRepo, Sessions: sessionRepo, Clock: clk,
	})
	queries.RegisterHandler[calendarapp.GetIntervalsQuery, dto.BookedIntervals](queryBus, &calendarapp.GetIntervalsHandler{Intervals: cached})
	queries.RegisterHandler[calendarapp.GetSessionQuery, dto.Selection](queryBus, &calendarapp.GetSessionHandler{Sessions: sessionRepo})
	queries.RegisterHandler[calendarapp.GetVenueQuery, dto.Venue](queryBus, &calendarapp.GetVenueHandler{Venues: venueRepo})

	v := validation.New()
	handler := CalendarHandler{
		Commands: middleware.ChainCommands(cmdBus, middleware.Validation(v), middleware.OutboxFlush(nopOutbox{})),
		Queries:  middleware.ChainQueries(queryBus, middleware.QueryValidation(v)),
		Now:      clk.Now,
	}
	return NewRouter("test", obs.Middleware{}, obs.HealthHandlers{}, Handlers{Calendar: handler})
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMonthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/venues/v-1/calendar?check_in=2024-08-10&check_out=2024-08-14", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var month dto.CalendarMonth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &month))
	assert.Equal(t, "August 2024", month.View.Title)
	assert.Len(t, month.View.Days, calendar.GridSize)
	assert.Equal(t, 4, month.View.Summary.Nights)
	assert.Equal(t, calendar.StateComplete, month.Selection.State)

	w = do(t, r, http.MethodGet, "/api/v1/venues/v-1/calendar?month=2024-13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/venues/missing/calendar", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIntervalsAndICSEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/venues/v-1/calendar/intervals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"venue_id":"v-1","intervals":[{"from":"2024-08-20","to":"2024-08-22"}]}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/v1/venues/v-1/calendar.ics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, w.Body.String(), "20240820")
	assert.Contains(t, w.Body.String(), "Fjordside Cabin")

	w = do(t, r, http.MethodGet, "/api/v1/venues/missing/calendar.ics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/intervals/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"venue_id":"v-1","intervals":[{"from":"2024-08-20","to":"2024-08-22"}]}`, w.Body.String())
}

func TestVenueEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/venues/v-1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var venue dto.Venue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &venue))
	assert.Equal(t, "Fjordside Cabin", venue.Name)
	assert.Equal(t, 1, venue.Bookings)

	w = do(t, r, http.MethodGet, "/api/v1/venues/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMonthEndpoint_RejectsMalformedSelection(t *testing.T) {
	r := newTestRouter(t)

	for _, query := range []string{
		"check_in=2024-08-15&check_out=2024-08-10",
		"check_out=2024-08-10",
	} {
		w := do(t, r, http.MethodGet, "/api/v1/venues/v-1/calendar?month=2024-08&"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Contains(t, w.Body.String(), "check-out", query)
	}

	w := do(t, r, http.MethodGet, "/api/v1/venues/v-1/calendar?month=2024-08&check_in=2024-08-10&check_out=2024-08-10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var month dto.CalendarMonth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &month))
	assert.Equal(t, calendar.StateComplete, month.Selection.State)
	assert.Equal(t, 0, month.Selection.Nights)
	assert.False(t, month.Selection.Bookable)
}

func TestSelectEndpoint_Stateless(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/select", gin.H{"date": "2024-08-15", "check_in": "2024-08-10"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sel dto.Selection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sel))
	assert.True(t, sel.Changed)
	assert.Equal(t, calendar.StateComplete, sel.State)
	assert.Equal(t, 5, sel.Nights)
	assert.True(t, sel.Bookable)

	w = do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/select", gin.H{"date": "2024-08-12", "check_in": "2024-08-15", "check_out": "2024-08-10"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/select", gin.H{"check_in": "2024-08-10"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/select", gin.H{"date": "08/15/2024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectEndpoint_SameDayTwice(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sel dto.Selection
	for range 2 {
		w = do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/select", gin.H{"session": "sess-1", "date": "2024-08-10"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sel))
	}
	assert.Equal(t, calendar.StateComplete, sel.State)
	assert.Equal(t, 0, sel.Nights)
	assert.False(t, sel.Bookable)
	assert.Equal(t, calendar.ErrZeroNights.Error(), sel.Problem)
}

func TestSessionLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, day := range []string{"2024-08-10", "2024-08-13"} {
		w = do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/select", gin.H{"session": "sess-1", "date": day})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/v1/venues/v-1/calendar/sessions/sess-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sel dto.Selection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sel))
	assert.Equal(t, "sess-1", sel.SessionID)
	assert.Equal(t, 3, sel.Nights)

	w = do(t, r, http.MethodGet, "/api/v1/venues/other/calendar/sessions/sess-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/venues/v-1/calendar/sessions/sess-1/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sel))
	assert.Equal(t, calendar.StateEmpty, sel.State)

	w = do(t, r, http.MethodDelete, "/api/v1/venues/v-1/calendar/sessions/sess-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, "/api/v1/venues/v-1/calendar/sessions/sess-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/livez", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/readyz", nil).Code)
}
