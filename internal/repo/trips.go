// Package repo contains the data access layer for the Trip Dispatch Engine.
// Bookings and drivers are read-only Postgres-backed sources; trips live in
// an in-memory store owned by this process. No business logic lives here.
package repo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fieldcrew/dispatch/internal/domain"
)

// TripStore is the authoritative collection of trips: a keyed store with a
// single logical writer. All mutations take the write lock for the full batch,
// so a bulk operation can never interleave with another caller's edit, and all
// writes are whole-record replacements — callers compute the complete next
// value and submit it atomically.
//
// Reads hand out deep copies; no caller can mutate stored state except through
// InsertMany, Replace, and DeleteAll.
type TripStore struct {
	mu    sync.RWMutex
	trips map[uuid.UUID]domain.Trip
}

// NewTripStore constructs an empty TripStore.
func NewTripStore() *TripStore {
	return &TripStore{trips: make(map[uuid.UUID]domain.Trip)}
}

// InsertMany adds freshly created trips to the store. It never touches
// existing records; the factory is the only caller and generates new ids.
func (s *TripStore) InsertMany(ctx context.Context, trips []domain.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range trips {
		s.trips[t.ID] = t.Clone()
	}
}

// Get returns a copy of a single trip.
// Returns domain.ErrNotFound if no trip with that id exists.
func (s *TripStore) Get(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.TripStore.Get: %w", domain.ErrNotFound)
	}
	return t.Clone(), nil
}

// Snapshot returns a copy of every trip, ordered by start time (ties broken
// by id for determinism). Readers may work on the snapshot concurrently with
// writers; it is never invalidated.
func (s *TripStore) Snapshot(ctx context.Context) []domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Replace applies fn to every trip in ids and commits the results as
// whole-record replacements — all of them or none. If any id is missing the
// store is left untouched and domain.ErrNotFound names the missing ids; if fn
// fails for any trip the store is left untouched and that error is returned.
//
// The write lock is held for the entire batch, so no partial state is ever
// visible to readers or interleaved with another writer.
func (s *TripStore) Replace(ctx context.Context, ids []uuid.UUID, fn func(domain.Trip) (domain.Trip, error)) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAll(ids); err != nil {
		return nil, fmt.Errorf("repo.TripStore.Replace: %w", err)
	}

	next := make([]domain.Trip, 0, len(ids))
	for _, id := range ids {
		updated, err := fn(s.trips[id].Clone())
		if err != nil {
			return nil, err
		}
		updated.ID = id // replacements may not change identity
		next = append(next, updated)
	}

	for _, t := range next {
		s.trips[t.ID] = t.Clone()
	}
	return next, nil
}

// DeleteAll removes every trip in ids — all of them or none.
// Returns domain.ErrNotFound naming the missing ids if any are absent.
func (s *TripStore) DeleteAll(ctx context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAll(ids); err != nil {
		return fmt.Errorf("repo.TripStore.DeleteAll: %w", err)
	}
	for _, id := range ids {
		delete(s.trips, id)
	}
	return nil
}

// requireAll verifies every id exists. Callers must hold at least the read lock.
func (s *TripStore) requireAll(ids []uuid.UUID) error {
	var missing []string
	for _, id := range ids {
		if _, ok := s.trips[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: trips %s", domain.ErrNotFound, strings.Join(missing, ", "))
	}
	return nil
}
