package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fieldcrew/dispatch/internal/domain"
	"github.com/fieldcrew/dispatch/internal/repo"
)

// Dispatch implements driver assignment, status advancement, and the bulk
// operations over the trip store. Every batch operation is all-or-nothing:
// a single missing id or invalid trip rejects the whole batch and the store
// is left exactly as it was.
type Dispatch struct {
	store  *repo.TripStore
	roster *Roster
}

// NewDispatch constructs a Dispatch service.
func NewDispatch(store *repo.TripStore, roster *Roster) *Dispatch {
	return &Dispatch{store: store, roster: roster}
}

// GetTrip returns a single trip by id.
func (d *Dispatch) GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	t, err := d.store.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Dispatch.GetTrip: %w", err)
	}
	return t, nil
}

// ListTrips returns the trips visible through the given date filter, ordered
// by start time. Always returns a non-nil slice.
func (d *Dispatch) ListTrips(ctx context.Context, f domain.DateFilter) ([]domain.Trip, error) {
	now := time.Now()
	out := []domain.Trip{}
	for _, t := range d.store.Snapshot(ctx) {
		if f.Matches(t.Start, now) {
			out = append(out, t)
		}
	}
	return out, nil
}

// AssignDriver binds a driver to an unassigned trip and fires the assigned
// lifecycle transition. The coarse status flips to active and both driver
// fields are populated in the same replacement, so no reader ever sees a trip
// with a driver but an unassigned status.
//
// Returns domain.ErrNotFound for an unknown trip or driver,
// domain.ErrValidation if the trip already has a driver, and
// domain.ErrUpstreamUnavailable when the roster cannot be reached.
func (d *Dispatch) AssignDriver(ctx context.Context, tripID uuid.UUID, driverID string) (domain.Trip, error) {
	driver, err := d.roster.Driver(ctx, driverID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Dispatch.AssignDriver: %w", err)
	}

	now := time.Now()
	updated, err := d.store.Replace(ctx, []uuid.UUID{tripID}, func(t domain.Trip) (domain.Trip, error) {
		if t.Status != domain.TripUnassigned {
			return domain.Trip{}, fmt.Errorf("%w: trip already has driver %s", domain.ErrValidation, t.DriverName)
		}
		t.DriverID = driver.ID
		t.DriverName = driver.Name
		t.Status = domain.TripActive
		note := fmt.Sprintf("Driver %s assigned to trip", driver.Name)
		return domain.Advance(t, domain.StatusAssigned, now, note)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Dispatch.AssignDriver: %w", err)
	}
	return updated[0], nil
}

// ReassignDriver swaps the driver on one or many already-assigned trips.
// A driver swap is an administrative correction, not an operational event:
// the lifecycle status and timeline are left untouched. A singleton id set is
// the single-trip case; the batch is all-or-nothing.
func (d *Dispatch) ReassignDriver(ctx context.Context, tripIDs []uuid.UUID, driverID string) ([]domain.Trip, error) {
	if len(tripIDs) == 0 {
		return nil, fmt.Errorf("service.Dispatch.ReassignDriver: %w: no trips selected", domain.ErrValidation)
	}

	driver, err := d.roster.Driver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service.Dispatch.ReassignDriver: %w", err)
	}

	updated, err := d.store.Replace(ctx, tripIDs, func(t domain.Trip) (domain.Trip, error) {
		if t.DriverID == "" {
			return domain.Trip{}, fmt.Errorf("%w: trip %s has no driver to replace", domain.ErrValidation, t.ID)
		}
		t.DriverID = driver.ID
		t.DriverName = driver.Name
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.Dispatch.ReassignDriver: %w", err)
	}
	return updated, nil
}

// AdvanceStatus moves a trip one step along the lifecycle chain.
// target must be exactly the next state; skipping, moving backward, or
// advancing past completed returns domain.ErrIllegalTransition. The assigned
// state carries driver side effects and is reachable only through
// AssignDriver, never through AdvanceStatus.
func (d *Dispatch) AdvanceStatus(ctx context.Context, tripID uuid.UUID, target domain.LifecycleStatus) (domain.Trip, error) {
	if target == domain.StatusAssigned {
		return domain.Trip{}, fmt.Errorf("service.Dispatch.AdvanceStatus: %w: assign a driver to move a trip to assigned", domain.ErrValidation)
	}

	now := time.Now()
	updated, err := d.store.Replace(ctx, []uuid.UUID{tripID}, func(t domain.Trip) (domain.Trip, error) {
		return domain.Advance(t, target, now, "")
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Dispatch.AdvanceStatus: %w", err)
	}
	return updated[0], nil
}

// BulkEditParams carries the shared overrides for a bulk edit.
// Nil fields are left unchanged. Stops may only be supplied when editing a
// single trip — stop lists are independent per trip, so a shared stop edit
// across a multi-select is meaningless.
type BulkEditParams struct {
	Start *domain.ClockTime
	Type  *string
	Stops []domain.TripStop
}

// BulkEdit applies shared overrides to every selected trip, atomically.
func (d *Dispatch) BulkEdit(ctx context.Context, tripIDs []uuid.UUID, p BulkEditParams) ([]domain.Trip, error) {
	if len(tripIDs) == 0 {
		return nil, fmt.Errorf("service.Dispatch.BulkEdit: %w: no trips selected", domain.ErrValidation)
	}
	if p.Stops != nil && len(tripIDs) > 1 {
		return nil, fmt.Errorf("service.Dispatch.BulkEdit: %w: stops can only be edited one trip at a time", domain.ErrValidation)
	}
	if p.Stops != nil && len(p.Stops) == 0 {
		return nil, fmt.Errorf("service.Dispatch.BulkEdit: %w: a trip needs at least one stop", domain.ErrValidation)
	}

	updated, err := d.store.Replace(ctx, tripIDs, func(t domain.Trip) (domain.Trip, error) {
		if p.Start != nil {
			t.Start = *p.Start
		}
		if p.Type != nil {
			t.Type = *p.Type
		}
		if p.Stops != nil {
			t.Stops = append([]domain.TripStop(nil), p.Stops...)
		}
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.Dispatch.BulkEdit: %w", err)
	}
	return updated, nil
}

// CancelTrips removes every selected trip from the store, atomically.
// Cancellation is deletion: the trip and its timeline are gone afterwards,
// matching the booking screen's behavior of dropping cancelled runs.
func (d *Dispatch) CancelTrips(ctx context.Context, tripIDs []uuid.UUID) error {
	if len(tripIDs) == 0 {
		return fmt.Errorf("service.Dispatch.CancelTrips: %w: no trips selected", domain.ErrValidation)
	}
	if err := d.store.DeleteAll(ctx, tripIDs); err != nil {
		return fmt.Errorf("service.Dispatch.CancelTrips: %w", err)
	}
	return nil
}
