package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/sessions"
	"holidaze/internal/domain/venues"
	"holidaze/internal/infra/holidaze"
	"holidaze/internal/infra/validation"
)

func statusFor(err error) int {
	var apiErr *holidaze.APIError
	switch {
	case errors.Is(err, venues.ErrVenueNotFound),
		errors.Is(err, sessions.ErrSessionNotFound),
		errors.Is(err, sessions.ErrVenueMismatch):
		return http.StatusNotFound
	case errors.Is(err, sessions.ErrConcurrentClick):
		return http.StatusConflict
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, calendar.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.As(err, &apiErr) && (apiErr.IsUnauthorized() || apiErr.IsForbidden()):
		return http.StatusBadGateway
	case errors.Is(err, holidaze.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
