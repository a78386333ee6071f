// Package handler implements the HTTP surface of the Trip Dispatch Engine.
// All handlers are methods on Server. Methods are split into files by concern
// (trip.go, sources.go, manifest.go, health.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fieldcrew/dispatch/internal/domain"
	"github.com/fieldcrew/dispatch/internal/service"
)

// TripCreator defines the factory operation the handler depends on.
// Defining the interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the service layer or a database.
type TripCreator interface {
	Create(ctx context.Context, p service.CreateParams) ([]domain.Trip, error)
}

// Dispatcher defines the trip command and read operations the handler depends on.
type Dispatcher interface {
	GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListTrips(ctx context.Context, f domain.DateFilter) ([]domain.Trip, error)
	AssignDriver(ctx context.Context, tripID uuid.UUID, driverID string) (domain.Trip, error)
	ReassignDriver(ctx context.Context, tripIDs []uuid.UUID, driverID string) ([]domain.Trip, error)
	AdvanceStatus(ctx context.Context, tripID uuid.UUID, target domain.LifecycleStatus) (domain.Trip, error)
	BulkEdit(ctx context.Context, tripIDs []uuid.UUID, p service.BulkEditParams) ([]domain.Trip, error)
	CancelTrips(ctx context.Context, tripIDs []uuid.UUID) error
}

// ManifestServicer defines the run-sheet export operation.
type ManifestServicer interface {
	Rows(ctx context.Context) ([]service.ManifestRow, error)
}

// SourceReader defines the read-through views over the two external sources.
type SourceReader interface {
	Bookings(ctx context.Context) ([]domain.Booking, error)
	Drivers(ctx context.Context) ([]domain.Driver, error)
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in concern-specific files but all operate on this struct.
type Server struct {
	factory  TripCreator
	dispatch Dispatcher
	manifest ManifestServicer
	sources  SourceReader
}

// NewServer constructs the Server with all its dependencies.
func NewServer(factory TripCreator, dispatch Dispatcher, manifest ManifestServicer, sources SourceReader) *Server {
	return &Server{factory: factory, dispatch: dispatch, manifest: manifest, sources: sources}
}

// Routes builds the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.handleCreateTrips)
		r.Get("/", s.handleListTrips)
		r.Post("/reassign", s.handleReassignDriver)
		r.Post("/bulk-edit", s.handleBulkEdit)
		r.Post("/cancel", s.handleCancelTrips)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.handleGetTrip)
			r.Post("/driver", s.handleAssignDriver)
			r.Post("/status", s.handleAdvanceStatus)
		})
	})

	r.Get("/manifest", s.handleManifest)
	r.Get("/bookings", s.handleListBookings)
	r.Get("/drivers", s.handleListDrivers)

	return r
}
