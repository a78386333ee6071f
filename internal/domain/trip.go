package domain

import (
	"github.com/google/uuid"
)

// Direction says which way a trip runs relative to the job site.
type Direction string

const (
	// DirectionOutbound picks staff up at home and delivers them to the job site.
	DirectionOutbound Direction = "outbound"
	// DirectionReturn picks staff up at the job site and drops them home.
	DirectionReturn Direction = "return"
)

// TripStatus is the coarse assignment state shown on list views.
// The operational lifecycle lives in Trip.CurrentStatus / Trip.Timeline.
type TripStatus string

const (
	TripUnassigned TripStatus = "unassigned"
	TripActive     TripStatus = "active"
	TripUpcoming   TripStatus = "upcoming"
)

// TripStop is an ordered waypoint within a trip. Stop order is pickup order
// and is semantically meaningful; stops are never reordered after creation.
// Staff lists the staff members relevant at this stop — a single name for a
// home pickup, the booking's full crew for the job-site stop.
type TripStop struct {
	Location string   `json:"location"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Staff    []string `json:"staff"`
}

// Trip is a single vehicle movement generated from one booking/direction pair.
// Trips are created only by the trip factory and mutated only through the
// dispatch service; every trip has at least one stop at all times.
//
// DriverID and DriverName are both set or both empty — a trip never has a
// half-bound driver.
type Trip struct {
	ID         uuid.UUID         `json:"id"`
	BookingIDs []string          `json:"booking_ids"` // immutable after creation
	Direction  Direction         `json:"direction"`
	Start      ClockTime         `json:"start_time"`
	Stops      []TripStop        `json:"stops"`
	DriverID   string            `json:"driver_id,omitempty"`
	DriverName string            `json:"driver_name,omitempty"`
	Status     TripStatus        `json:"status"`
	DistanceKm float64           `json:"distance_km"`
	Type       string            `json:"type,omitempty"`
	Current    LifecycleStatus   `json:"current_status"`
	Timeline   []TripStatusEvent `json:"status_timeline"`
}

// Clone returns a deep copy of the trip. The repo hands out clones so no
// caller can mutate stored state behind the store's back.
func (t Trip) Clone() Trip {
	c := t
	c.BookingIDs = append([]string(nil), t.BookingIDs...)
	c.Stops = make([]TripStop, len(t.Stops))
	for i, s := range t.Stops {
		c.Stops[i] = s
		c.Stops[i].Staff = append([]string(nil), s.Staff...)
	}
	c.Timeline = make([]TripStatusEvent, len(t.Timeline))
	for i, e := range t.Timeline {
		c.Timeline[i] = e
		if e.Estimated != nil {
			est := *e.Estimated
			c.Timeline[i].Estimated = &est
		}
	}
	return c
}
