package domain

import (
	"fmt"
	"time"
)

// ClockTime is a time of day with minute precision and no calendar date.
// Trips are scheduled by clock time only — "the 08:00 run" — and the date
// filter projects them onto the current day. The zero value is midnight.
//
// Stored as minutes since midnight, always in [0, 1440).
type ClockTime int

const minutesPerDay = 24 * 60

// ParseClockTime parses a "HH:MM" string (24-hour clock).
// Returns a wrapped ErrValidation on malformed input.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time %q, want HH:MM", ErrValidation, s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// String formats the clock time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// AddMinutes returns the clock time n minutes later (n may be negative),
// rolling over midnight in either direction. 00:10 minus 30 minutes is 23:40.
func (c ClockTime) AddMinutes(n int) ClockTime {
	m := (int(c) + n) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return ClockTime(m)
}

// OnDay projects the clock time onto the calendar day of ref, in ref's
// location. Used by the date filter, which treats all trip times as
// same-day clock times relative to "now".
func (c ClockTime) OnDay(ref time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, int(c)/60, int(c)%60, 0, 0, ref.Location())
}

// MarshalJSON encodes the clock time as a "HH:MM" JSON string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes a "HH:MM" JSON string.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: clock time must be a JSON string", ErrValidation)
	}
	parsed, err := ParseClockTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
