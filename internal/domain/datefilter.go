package domain

import (
	"fmt"
	"time"
)

// Window names a supported date-filter window.
type Window string

const (
	WindowAll      Window = "all"
	WindowToday    Window = "today"
	WindowTomorrow Window = "tomorrow"
	WindowWeek     Window = "week"
	WindowCustom   Window = "custom"
)

// DateFilter selects the subset of trips visible for a time window.
// From and To are date-granularity bounds used only when Window is custom;
// To is inclusive through end of day.
//
// Trip start times are clock-only, so the filter projects each one onto the
// current day before comparing. This preserves the source behavior: "today"
// matches every trip, "tomorrow" matches none, and custom/week windows match
// exactly when they cover the current day. Do not "fix" this without first
// attaching real calendar dates to trips.
type DateFilter struct {
	Window Window
	From   time.Time
	To     time.Time
}

// NewDateFilter validates a window name and optional custom bounds.
// from and to are "2006-01-02" dates, required (and only read) for custom.
func NewDateFilter(window, from, to string) (DateFilter, error) {
	switch Window(window) {
	case WindowAll, WindowToday, WindowTomorrow, WindowWeek:
		return DateFilter{Window: Window(window)}, nil
	case WindowCustom:
		f, err := time.Parse("2006-01-02", from)
		if err != nil {
			return DateFilter{}, fmt.Errorf("%w: invalid from date %q", ErrValidation, from)
		}
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return DateFilter{}, fmt.Errorf("%w: invalid to date %q", ErrValidation, to)
		}
		if t.Before(f) {
			return DateFilter{}, fmt.Errorf("%w: to date precedes from date", ErrValidation)
		}
		return DateFilter{Window: WindowCustom, From: f, To: t}, nil
	case "":
		return DateFilter{Window: WindowAll}, nil
	default:
		return DateFilter{}, fmt.Errorf("%w: unknown window %q", ErrValidation, window)
	}
}

// Matches reports whether a trip starting at start is inside the window,
// evaluated relative to now.
func (f DateFilter) Matches(start ClockTime, now time.Time) bool {
	if f.Window == WindowAll {
		return true
	}

	at := start.OnDay(now)
	today := startOfDay(now)

	switch f.Window {
	case WindowToday:
		return !at.Before(today) && at.Before(today.AddDate(0, 0, 1))
	case WindowTomorrow:
		tomorrow := today.AddDate(0, 0, 1)
		return !at.Before(tomorrow) && at.Before(tomorrow.AddDate(0, 0, 1))
	case WindowWeek:
		// Today through seven days out, end of day inclusive.
		return !at.Before(today) && at.Before(today.AddDate(0, 0, 8))
	case WindowCustom:
		lo := startOfDay(f.From)
		hi := startOfDay(f.To).AddDate(0, 0, 1) // inclusive through 23:59:59
		return !at.Before(lo) && at.Before(hi)
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
