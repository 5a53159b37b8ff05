package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDisabled(t *testing.T) {
	today := day(2024, time.June, 15)
	july := []BookedInterval{{From: day(2024, time.July, 1), To: day(2024, time.July, 5)}}

	tests := []struct {
		name   string
		date   Date
		booked []BookedInterval
		want   bool
	}{
		{"yesterday", day(2024, time.June, 14), nil, true},
		{"today is selectable", day(2024, time.June, 15), nil, false},
		{"tomorrow", day(2024, time.June, 16), nil, false},
		{"interval start inclusive", day(2024, time.July, 1), july, true},
		{"interval end inclusive", day(2024, time.July, 5), july, true},
		{"inside interval", day(2024, time.July, 3), july, true},
		{"day after interval", day(2024, time.July, 6), july, false},
		{"day before interval", day(2024, time.June, 30), july, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDisabled(tt.date, today, tt.booked))
		})
	}
}

func TestIsDisabled_InvertedIntervalDoesNotPanic(t *testing.T) {
	today := day(2024, time.June, 1)
	inverted := []BookedInterval{{From: day(2024, time.July, 5), To: day(2024, time.July, 1)}}
	assert.NotPanics(t, func() {
		IsDisabled(day(2024, time.July, 3), today, inverted)
	})
}

func TestSelectDay(t *testing.T) {
	today := day(2024, time.August, 1)
	aug := func(d int) Date { return day(2024, time.August, d) }
	conflict := []BookedInterval{{From: aug(12), To: aug(13)}}

	tests := []struct {
		name        string
		clicked     Date
		current     Selection
		booked      []BookedInterval
		want        Selection
		wantChanged bool
	}{
		{
			name:        "fresh selection",
			clicked:     aug(10),
			want:        Pending(aug(10)),
			wantChanged: true,
		},
		{
			name:        "completing a range",
			clicked:     aug(15),
			current:     Pending(aug(10)),
			want:        Complete(aug(10), aug(15)),
			wantChanged: true,
		},
		{
			name:        "earlier click restarts",
			clicked:     aug(5),
			current:     Pending(aug(10)),
			want:        Pending(aug(5)),
			wantChanged: true,
		},
		{
			name:        "conflict forces restart",
			clicked:     aug(15),
			current:     Pending(aug(10)),
			booked:      conflict,
			want:        Pending(aug(15)),
			wantChanged: true,
		},
		{
			name:        "range ending right before a booking completes",
			clicked:     aug(11),
			current:     Pending(aug(10)),
			booked:      conflict,
			want:        Complete(aug(10), aug(11)),
			wantChanged: true,
		},
		{
			name:        "same day twice yields zero-night range",
			clicked:     aug(10),
			current:     Pending(aug(10)),
			want:        Complete(aug(10), aug(10)),
			wantChanged: true,
		},
		{
			name:        "click after complete restarts even inside range",
			clicked:     aug(12),
			current:     Complete(aug(10), aug(15)),
			want:        Pending(aug(12)),
			wantChanged: true,
		},
		{
			name:        "click after complete restarts before range",
			clicked:     aug(2),
			current:     Complete(aug(10), aug(15)),
			want:        Pending(aug(2)),
			wantChanged: true,
		},
		{
			name:    "past day ignored",
			clicked: day(2024, time.July, 31),
			current: Pending(aug(10)),
			want:    Pending(aug(10)),
		},
		{
			name:    "booked day ignored while complete",
			clicked: aug(12),
			current: Complete(aug(2), aug(4)),
			booked:  conflict,
			want:    Complete(aug(2), aug(4)),
		},
		{
			name:    "booked day ignored while empty",
			clicked: aug(13),
			booked:  conflict,
			want:    Selection{},
		},
		{
			name:        "check-out without check-in treated as empty",
			clicked:     aug(20),
			current:     Selection{CheckOut: ptr(aug(25))},
			want:        Pending(aug(20)),
			wantChanged: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := SelectDay(tt.clicked, tt.current, tt.booked, today)
			assert.Equal(t, tt.wantChanged, changed)
			assert.True(t, tt.want.Equal(got), "want %+v got %+v", describe(tt.want), describe(got))
		})
	}
}

func TestSelectDay_CompleteAlwaysRestarts(t *testing.T) {
	today := day(2024, time.January, 1)
	current := Complete(day(2024, time.March, 10), day(2024, time.March, 20))
	for d := day(2024, time.January, 1); d.Before(day(2024, time.June, 1)); d = d.AddDays(1) {
		got, changed := SelectDay(d, current, nil, today)
		require.True(t, changed, d.String())
		require.True(t, Pending(d).Equal(got), d.String())
	}
}

func TestHasConflict(t *testing.T) {
	booked := []BookedInterval{{From: day(2024, time.August, 12), To: day(2024, time.August, 13)}}
	assert.True(t, HasConflict(day(2024, time.August, 10), day(2024, time.August, 15), booked))
	// An interval whose bounds both sit outside the candidate range does not
	// count as a straddle.
	wide := []BookedInterval{{From: day(2024, time.August, 1), To: day(2024, time.August, 31)}}
	assert.False(t, HasConflict(day(2024, time.August, 10), day(2024, time.August, 15), wide))
	assert.False(t, HasConflict(day(2024, time.August, 10), day(2024, time.August, 12), booked))
}

func TestSelection_Nights(t *testing.T) {
	assert.Equal(t, 0, Selection{}.Nights())
	assert.Equal(t, 0, Pending(day(2024, time.March, 1)).Nights())
	assert.Equal(t, 5, Complete(day(2024, time.February, 27), day(2024, time.March, 3)).Nights())

	assert.ErrorIs(t, Pending(day(2024, time.March, 1)).Validate(), ErrIncompleteSelection)
	assert.ErrorIs(t, Complete(day(2024, time.March, 1), day(2024, time.March, 1)).Validate(), ErrZeroNights)
	assert.NoError(t, Complete(day(2024, time.March, 1), day(2024, time.March, 2)).Validate())
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     Selection
		wantErr  error
	}{
		{name: "empty", want: Selection{}},
		{name: "pending", checkIn: "2024-08-10", want: Pending(day(2024, time.August, 10))},
		{name: "complete", checkIn: "2024-08-10", checkOut: "2024-08-15", want: Complete(day(2024, time.August, 10), day(2024, time.August, 15))},
		{name: "same day", checkIn: "2024-08-10", checkOut: "2024-08-10", want: Complete(day(2024, time.August, 10), day(2024, time.August, 10))},
		{name: "check-out before check-in", checkIn: "2024-08-15", checkOut: "2024-08-10", wantErr: ErrInvalidSelection},
		{name: "check-out only", checkOut: "2024-08-10", wantErr: ErrInvalidSelection},
		{name: "bad date", checkIn: "2024-13-01", wantErr: ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %+v", got)
		})
	}
}

func TestClassifyMonth(t *testing.T) {
	today := day(2024, time.August, 8)
	booked := []BookedInterval{{From: day(2024, time.August, 20), To: day(2024, time.August, 22)}}
	sel := Complete(day(2024, time.August, 10), day(2024, time.August, 14))

	view := ClassifyMonth(MonthCursor{2024, time.August}, today, booked, sel)
	require.Len(t, view.Days, GridSize)
	assert.Equal(t, "August 2024", view.Title)
	assert.True(t, view.PrevDisabled)
	assert.Equal(t, []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}, view.Weekdays)

	byDate := map[Date]DayView{}
	for _, d := range view.Days {
		byDate[d.Date] = d
	}
	assert.True(t, byDate[day(2024, time.August, 7)].Disabled)
	assert.True(t, byDate[day(2024, time.August, 8)].Today)
	assert.False(t, byDate[day(2024, time.August, 8)].Disabled)
	assert.True(t, byDate[day(2024, time.August, 10)].Selected)
	assert.False(t, byDate[day(2024, time.August, 10)].InRange)
	assert.True(t, byDate[day(2024, time.August, 12)].InRange)
	assert.True(t, byDate[day(2024, time.August, 14)].Selected)
	assert.True(t, byDate[day(2024, time.August, 21)].Disabled)
	assert.True(t, byDate[day(2024, time.July, 28)].OutsideMonth)
	assert.Equal(t, "Aug 10, 2024", byDate[day(2024, time.August, 10)].Label)

	assert.Equal(t, Summary{Visible: true, CheckIn: "Aug 10, 2024", CheckOut: "Aug 14, 2024", Nights: 4}, view.Summary)
	assert.Equal(t, Summary{CheckIn: "Select date", CheckOut: "Select date"}, Summarize(Selection{}))
}

func ptr(d Date) *Date { return &d }

func describe(s Selection) string {
	out := "("
	if s.CheckIn != nil {
		out += s.CheckIn.String()
	} else {
		out += "nil"
	}
	out += ", "
	if s.CheckOut != nil {
		out += s.CheckOut.String()
	} else {
		out += "nil"
	}
	return out + ")"
}
