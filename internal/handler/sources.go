package handler

import "net/http"

// handleListBookings exposes the external booking list read-only, through the
// same bounded-timeout path the trip factory uses.
func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.sources.Bookings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

// handleListDrivers exposes the driver roster read-only.
func (s *Server) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.sources.Drivers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, drivers)
}
