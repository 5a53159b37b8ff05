package holidaze

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrUpstream = errors.New("holidaze: upstream request failed")

type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError is a non-2xx answer from the Holidaze API.
type APIError struct {
	Status     int
	StatusText string
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	msg := "An error occurred"
	switch {
	case len(e.Errors) > 0 && e.Errors[0].Message != "":
		msg = e.Errors[0].Message
	case e.StatusText != "":
		msg = e.StatusText
	}
	return fmt.Sprintf("holidaze: %s (status=%d)", msg, e.Status)
}

func (e *APIError) Unwrap() error { return ErrUpstream }

func (e *APIError) IsUnauthorized() bool { return e.Status == http.StatusUnauthorized }
func (e *APIError) IsForbidden() bool    { return e.Status == http.StatusForbidden }
func (e *APIError) IsNotFound() bool     { return e.Status == http.StatusNotFound }
func (e *APIError) IsServerError() bool  { return e.Status >= http.StatusInternalServerError }

type errorBody struct {
	Errors     []ErrorDetail `json:"errors"`
	Status     string        `json:"status"`
	StatusCode int           `json:"statusCode"`
}
