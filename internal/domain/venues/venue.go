package venues

import (
	"context"
	"errors"
	"sort"
	"time"

	"holidaze/internal/domain/calendar"
)

var ErrVenueNotFound = errors.New("venues: venue not found")

type VenueID string

type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Profile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Bio          string `json:"bio,omitempty"`
	Avatar       *Media `json:"avatar,omitempty"`
	Banner       *Media `json:"banner,omitempty"`
	VenueManager bool   `json:"venueManager"`
}

type Meta struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
	Pets      bool `json:"pets"`
}

type Location struct {
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	Zip       string  `json:"zip,omitempty"`
	Country   string  `json:"country,omitempty"`
	Continent string  `json:"continent,omitempty"`
	Lat       float64 `json:"lat,omitempty"`
	Lng       float64 `json:"lng,omitempty"`
}

type Booking struct {
	ID       string    `json:"id"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
	Customer *Profile  `json:"customer,omitempty"`
}

type Venue struct {
	ID          VenueID   `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Media       []Media   `json:"media"`
	Price       float64   `json:"price"`
	MaxGuests   int       `json:"maxGuests"`
	Rating      float64   `json:"rating"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
	Meta        Meta      `json:"meta"`
	Location    Location  `json:"location"`
	Owner       *Profile  `json:"owner,omitempty"`
	Bookings    []Booking `json:"bookings,omitempty"`
}

// IntervalSource yields the booked days of a venue.
type IntervalSource interface {
	BookedIntervals(ctx context.Context, id VenueID) ([]calendar.BookedInterval, error)
}

type Catalog interface {
	Venue(ctx context.Context, id VenueID) (Venue, error)
}

// BookedIntervals converts the venue's bookings into closed day ranges,
// taking each timestamp's calendar day in loc. The result is ordered by
// start day.
func (v Venue) BookedIntervals(loc *time.Location) []calendar.BookedInterval {
	return IntervalsFromBookings(v.Bookings, loc)
}

func IntervalsFromBookings(bookings []Booking, loc *time.Location) []calendar.BookedInterval {
	if loc == nil {
		loc = time.Local
	}
	out := make([]calendar.BookedInterval, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, calendar.BookedInterval{
			From: calendar.DateOf(b.DateFrom.In(loc)),
			To:   calendar.DateOf(b.DateTo.In(loc)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].From.Before(out[j].From)
	})
	return out
}
