package holidaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/venues"
)

const (
	venuesPath   = "/holidaze/venues"
	apiKeyHeader = "X-Noroff-API-Key"
	maxBodyBytes = 4 << 20
)

type Options struct {
	BaseURL  string
	APIKey   string
	Token    string
	Timeout  time.Duration
	Location *time.Location
}

// Client reads venues and their bookings from the Holidaze API.
type Client struct {
	hc   *http.Client
	opts Options
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Client{hc: &http.Client{Timeout: opts.Timeout}, opts: opts}
}

// Venue fetches a single venue including owner and bookings.
func (c *Client) Venue(ctx context.Context, id venues.VenueID) (venues.Venue, error) {
	if id == "" {
		return venues.Venue{}, venues.ErrVenueNotFound
	}
	q := url.Values{}
	q.Set("_owner", "true")
	q.Set("_bookings", "true")
	endpoint := c.opts.BaseURL + venuesPath + "/" + url.PathEscape(string(id)) + "?" + q.Encode()

	var out struct {
		Data venues.Venue `json:"data"`
	}
	if err := c.get(ctx, endpoint, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return venues.Venue{}, fmt.Errorf("%w: %s", venues.ErrVenueNotFound, id)
		}
		return venues.Venue{}, err
	}
	return out.Data, nil
}

func (c *Client) BookedIntervals(ctx context.Context, id venues.VenueID) ([]calendar.BookedInterval, error) {
	v, err := c.Venue(ctx, id)
	if err != nil {
		return nil, err
	}
	return v.BookedIntervals(c.opts.Location), nil
}

// Ping checks that the API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, c.opts.BaseURL+venuesPath+"?limit=1", nil)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set(apiKeyHeader, c.opts.APIKey)
	}
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
		var eb errorBody
		// The body may not be JSON at all.
		if json.Unmarshal(body, &eb) == nil {
			apiErr.Errors = eb.Errors
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return nil
}
