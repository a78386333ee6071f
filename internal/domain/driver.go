package domain

// DriverStatus is a driver's availability as reported by the roster.
type DriverStatus string

const (
	DriverAvailable DriverStatus = "available"
	DriverBusy      DriverStatus = "busy"
	DriverOnRoute   DriverStatus = "on-route"
)

// Driver is an entry from the external driver roster.
// Read-only: the dispatch engine binds drivers to trips but never mutates
// roster records (trip counts are maintained by the roster service).
type Driver struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Vehicle        string       `json:"vehicle"`
	Seats          int          `json:"seats"`
	Status         DriverStatus `json:"status"`
	CurrentTrips   int          `json:"current_trips"`
	CompletedTrips int          `json:"completed_trips"`
}
