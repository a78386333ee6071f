package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fieldcrew/dispatch/internal/domain"
	"github.com/fieldcrew/dispatch/internal/repo"
)

// outboundLeadMinutes is how far before the booking's start an outbound trip
// departs by default, leaving time to collect the crew.
const outboundLeadMinutes = 30

// Selection names one booking and the directions chosen for it.
// A booking with both directions selected generates two trips.
type Selection struct {
	BookingID  string
	Outbound   bool
	Return     bool
	DistanceKm float64 // supplied by the caller, never computed
}

// CreateParams is the input to TripFactory.Create.
// StartOverride, when set, replaces the derived start time on every generated
// trip; Type is an optional label applied to every generated trip.
type CreateParams struct {
	Selections    []Selection
	StartOverride *domain.ClockTime
	Type          string
}

// TripFactory converts selected bookings and direction choices into trips.
// It is the only way trips enter the store, and it never mutates existing
// trips — creation only appends.
type TripFactory struct {
	roster *Roster
	store  *repo.TripStore
}

// NewTripFactory constructs a TripFactory.
func NewTripFactory(roster *Roster, store *repo.TripStore) *TripFactory {
	return &TripFactory{roster: roster, store: store}
}

// Create builds one trip per selected booking × direction and inserts them
// into the store. Returns the new trips in selection order (outbound before
// return for a booking with both).
//
// Returns domain.ErrValidation when no booking/direction pair is selected,
// domain.ErrNotFound for an unknown booking id; in either case zero trips
// are created.
func (f *TripFactory) Create(ctx context.Context, p CreateParams) ([]domain.Trip, error) {
	selected := 0
	for _, sel := range p.Selections {
		if sel.Outbound {
			selected++
		}
		if sel.Return {
			selected++
		}
	}
	if selected == 0 {
		return nil, fmt.Errorf("service.TripFactory.Create: %w: nothing selected", domain.ErrValidation)
	}

	now := time.Now()
	trips := make([]domain.Trip, 0, selected)
	for _, sel := range p.Selections {
		if !sel.Outbound && !sel.Return {
			continue
		}
		booking, err := f.roster.Booking(ctx, sel.BookingID)
		if err != nil {
			return nil, fmt.Errorf("service.TripFactory.Create: booking %s: %w", sel.BookingID, err)
		}
		if sel.Outbound {
			trips = append(trips, buildTrip(booking, domain.DirectionOutbound, sel, p, now))
		}
		if sel.Return {
			trips = append(trips, buildTrip(booking, domain.DirectionReturn, sel, p, now))
		}
	}

	f.store.InsertMany(ctx, trips)
	return trips, nil
}

// buildTrip assembles a single trip for one booking/direction pair.
func buildTrip(b domain.Booking, dir domain.Direction, sel Selection, p CreateParams, now time.Time) domain.Trip {
	start := defaultStart(b, dir)
	if p.StartOverride != nil {
		start = *p.StartOverride
	}

	return domain.Trip{
		ID:         uuid.New(),
		BookingIDs: []string{b.ID},
		Direction:  dir,
		Start:      start,
		Stops:      buildStops(b, dir),
		Status:     domain.TripUnassigned,
		DistanceKm: sel.DistanceKm,
		Type:       p.Type,
		Current:    domain.StatusScheduled,
		Timeline:   []domain.TripStatusEvent{domain.NewScheduledEvent(now)},
	}
}

// defaultStart derives a trip's start time from its booking.
// Outbound trips leave early enough to collect the crew before the booking
// starts; return trips leave when the booking ends.
func defaultStart(b domain.Booking, dir domain.Direction) domain.ClockTime {
	if dir == domain.DirectionOutbound {
		return b.Start.AddMinutes(-outboundLeadMinutes)
	}
	return b.End
}

// buildStops lays out the waypoints for one direction.
// Outbound: one home pickup per unique staff member, in booking order, then
// the job site carrying the full crew. Return is the mirror image: job site
// first, then one home drop per staff member.
func buildStops(b domain.Booking, dir domain.Direction) []domain.TripStop {
	homes := make([]domain.TripStop, 0, len(b.Staff))
	seen := make(map[string]bool, len(b.Staff))
	for _, name := range b.Staff {
		if seen[name] {
			continue
		}
		seen[name] = true
		homes = append(homes, domain.TripStop{
			Location: b.StaffAddresses[name],
			Staff:    []string{name},
		})
	}

	site := domain.TripStop{
		Location: b.Location,
		Lat:      b.Lat,
		Lng:      b.Lng,
		Staff:    append([]string(nil), b.Staff...),
	}

	if dir == domain.DirectionOutbound {
		return append(homes, site)
	}
	return append([]domain.TripStop{site}, homes...)
}
