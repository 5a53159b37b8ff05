package sessions

import (
	"time"

	"holidaze/internal/domain/calendar"
)

// SelectionChanged is raised once per accepted click or reset.
type SelectionChanged struct {
	SessionID string                  `json:"session_id"`
	VenueID   string                  `json:"venue_id"`
	Clicked   *calendar.Date          `json:"clicked,omitempty"`
	CheckIn   *calendar.Date          `json:"check_in"`
	CheckOut  *calendar.Date          `json:"check_out"`
	State     calendar.SelectionState `json:"state"`
	At        time.Time               `json:"at"`
}

func (e SelectionChanged) EventName() string     { return "calendar.selection_changed" }
func (e SelectionChanged) AggregateID() string   { return e.VenueID }
func (e SelectionChanged) OccurredAt() time.Time { return e.At }
