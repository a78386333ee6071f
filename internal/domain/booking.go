// Package domain contains the core data types for the Trip Dispatch Engine.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

// Priority is the urgency level attached to a booking by the booking service.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityNormal Priority = "normal"
)

// Booking is a customer service booking as supplied by the external booking
// service. Bookings are read-only from the dispatch engine's perspective:
// the factory consumes them to generate trips but never writes them back.
//
// StaffAddresses maps a staff member's name (as it appears in Staff) to their
// home address, used to build pickup stops for outbound trips.
type Booking struct {
	ID             string            `json:"id"`
	Customer       string            `json:"customer"`
	Service        string            `json:"service"`
	Location       string            `json:"location"`
	Lat            float64           `json:"lat"`
	Lng            float64           `json:"lng"`
	Start          ClockTime         `json:"start_time"`
	End            ClockTime         `json:"end_time"`
	Staff          []string          `json:"staff"`
	StaffAddresses map[string]string `json:"staff_addresses"`
	Priority       Priority          `json:"priority"`
}
