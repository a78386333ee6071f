package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fieldcrew/dispatch/internal/domain"
	"github.com/fieldcrew/dispatch/internal/service"
)

// tripResponse is a trip plus its schedule adherence rollup, which backs the
// performance banner on the dispatch board.
type tripResponse struct {
	domain.Trip
	Schedule  domain.ScheduleSummary `json:"schedule"`
	Variances []domain.EventVariance `json:"variances,omitempty"`
}

func toTripResponse(t domain.Trip) tripResponse {
	return tripResponse{
		Trip:      t,
		Schedule:  domain.Summarize(t.Timeline),
		Variances: domain.TimelineVariances(t.Timeline),
	}
}

func toTripResponses(trips []domain.Trip) []tripResponse {
	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = toTripResponse(t)
	}
	return out
}

// decodeBody decodes a JSON request body into dst, reporting a 422 itself on
// failure. The bool tells the caller whether to continue.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// tripIDParam parses the {tripID} path parameter, reporting a 422 itself on
// failure.
func tripIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		respondBadRequest(w, "invalid trip id")
		return uuid.Nil, false
	}
	return id, true
}

// parseTripIDs converts a request's id list, reporting a 422 on any bad id.
func parseTripIDs(w http.ResponseWriter, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			respondBadRequest(w, "invalid trip id "+s)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// --- POST /trips ------------------------------------------------------------

type createTripsRequest struct {
	Selections []struct {
		BookingID  string  `json:"booking_id"`
		Outbound   bool    `json:"outbound"`
		Return     bool    `json:"return"`
		DistanceKm float64 `json:"distance_km"`
	} `json:"selections"`
	StartTime *domain.ClockTime `json:"start_time"`
	Type      string            `json:"type"`
}

// handleCreateTrips converts selected bookings into trips.
func (s *Server) handleCreateTrips(w http.ResponseWriter, r *http.Request) {
	var req createTripsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	params := service.CreateParams{
		StartOverride: req.StartTime,
		Type:          req.Type,
	}
	for _, sel := range req.Selections {
		params.Selections = append(params.Selections, service.Selection{
			BookingID:  sel.BookingID,
			Outbound:   sel.Outbound,
			Return:     sel.Return,
			DistanceKm: sel.DistanceKm,
		})
	}

	trips, err := s.factory.Create(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTripResponses(trips))
}

// --- GET /trips -------------------------------------------------------------

// handleListTrips returns trips visible through the requested date window.
// Query params: window=all|today|tomorrow|week|custom, from/to (custom only).
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := domain.NewDateFilter(q.Get("window"), q.Get("from"), q.Get("to"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	trips, err := s.dispatch.ListTrips(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTripResponses(trips))
}

// --- GET /trips/{tripID} ----------------------------------------------------

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	trip, err := s.dispatch.GetTrip(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTripResponse(trip))
}

// --- POST /trips/{tripID}/driver --------------------------------------------

type assignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

func (s *Server) handleAssignDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var req assignDriverRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DriverID == "" {
		respondBadRequest(w, "driver_id is required")
		return
	}

	trip, err := s.dispatch.AssignDriver(r.Context(), id, req.DriverID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTripResponse(trip))
}

// --- POST /trips/reassign ---------------------------------------------------

type reassignDriverRequest struct {
	TripIDs  []string `json:"trip_ids"`
	DriverID string   `json:"driver_id"`
}

func (s *Server) handleReassignDriver(w http.ResponseWriter, r *http.Request) {
	var req reassignDriverRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DriverID == "" {
		respondBadRequest(w, "driver_id is required")
		return
	}
	ids, ok := parseTripIDs(w, req.TripIDs)
	if !ok {
		return
	}

	trips, err := s.dispatch.ReassignDriver(r.Context(), ids, req.DriverID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTripResponses(trips))
}

// --- POST /trips/{tripID}/status --------------------------------------------

type advanceStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var req advanceStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status == "" {
		respondBadRequest(w, "status is required")
		return
	}

	trip, err := s.dispatch.AdvanceStatus(r.Context(), id, domain.LifecycleStatus(req.Status))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTripResponse(trip))
}

// --- POST /trips/bulk-edit --------------------------------------------------

type bulkEditRequest struct {
	TripIDs   []string          `json:"trip_ids"`
	StartTime *domain.ClockTime `json:"start_time"`
	Type      *string           `json:"type"`
	Stops     []domain.TripStop `json:"stops"`
}

func (s *Server) handleBulkEdit(w http.ResponseWriter, r *http.Request) {
	var req bulkEditRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ids, ok := parseTripIDs(w, req.TripIDs)
	if !ok {
		return
	}

	trips, err := s.dispatch.BulkEdit(r.Context(), ids, service.BulkEditParams{
		Start: req.StartTime,
		Type:  req.Type,
		Stops: req.Stops,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTripResponses(trips))
}

// --- POST /trips/cancel -----------------------------------------------------

type cancelTripsRequest struct {
	TripIDs []string `json:"trip_ids"`
}

func (s *Server) handleCancelTrips(w http.ResponseWriter, r *http.Request) {
	var req cancelTripsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ids, ok := parseTripIDs(w, req.TripIDs)
	if !ok {
		return
	}

	if err := s.dispatch.CancelTrips(r.Context(), ids); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
