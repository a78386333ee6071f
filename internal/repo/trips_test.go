package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcrew/dispatch/internal/domain"
	"github.com/fieldcrew/dispatch/internal/repo"
)

func storedTrip(start string) domain.Trip {
	s, _ := domain.ParseClockTime(start)
	return domain.Trip{
		ID:         uuid.New(),
		BookingIDs: []string{"BK-1001"},
		Direction:  domain.DirectionOutbound,
		Start:      s,
		Stops:      []domain.TripStop{{Location: "12 Elm St", Staff: []string{"John Doe"}}},
		Status:     domain.TripUnassigned,
		Current:    domain.StatusScheduled,
		Timeline:   []domain.TripStatusEvent{domain.NewScheduledEvent(time.Now())},
	}
}

func TestTripStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := repo.NewTripStore()
	trip := storedTrip("08:00")

	store.InsertMany(ctx, []domain.Trip{trip})

	got, err := store.Get(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)
	assert.Equal(t, []string{"BK-1001"}, got.BookingIDs)
}

func TestTripStore_Get_NotFound(t *testing.T) {
	store := repo.NewTripStore()

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripStore_Get_ReturnsACopy(t *testing.T) {
	ctx := context.Background()
	store := repo.NewTripStore()
	trip := storedTrip("08:00")
	store.InsertMany(ctx, []domain.Trip{trip})

	got, err := store.Get(ctx, trip.ID)
	require.NoError(t, err)

	// Mutating the returned value must not leak into the store.
	got.Stops[0].Location = "tampered"
	got.Stops[0].Staff[0] = "tampered"

	fresh, err := store.Get(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "12 Elm St", fresh.Stops[0].Location)
	assert.Equal(t, "John Doe", fresh.Stops[0].Staff[0])
}

func TestTripStore_Snapshot_OrderedByStart(t *testing.T) {
	ctx := context.Background()
	store := repo.NewTripStore()
	late := storedTrip("14:00")
	early := storedTrip("06:30")
	store.InsertMany(ctx, []domain.Trip{late, early})

	got := store.Snapshot(ctx)

	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)
}

func TestTripStore_Replace_AppliesToAll(t *testing.T) {
	ctx := context.Background()
	store := repo.NewTripStore()
	a, b := storedTrip("08:00"), storedTrip("09:00")
	store.InsertMany(ctx, []domain.Trip{a, b})

	updated, err := store.Replace(ctx, []uuid.UUID{a.ID, b.ID}, func(t domain.Trip) (domain.Trip, error) {
		t.Type = "shuttle"
		return t, nil
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "shuttle", got.Type)
	}
}

func TestTripStore_Replace_MissingIDLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := repo.NewTripStore()
	a := storedTrip("08:00")
	store.InsertMany(ctx, []domain.Trip{a})

	_, err := store.Replace(ctx, []uuid.UUID{a.ID, uuid.New()}, func(t domain.Trip) (domain.Trip, error) {
		t.Type = "shuttle"
		return t, nil
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Type, "no partial application on batch failure")
}

func TestTripStore_Replace_MapperErrorAborts(t *testing.T) {
	ctx := context.Background()
	store := repo.NewTripStore()
	a, b := storedTrip("08:00"), storedTrip("09:00")
	store.InsertMany(ctx, []domain.Trip{a, b})

	boom := errors.New("boom")
	_, err := store.Replace(ctx, []uuid.UUID{a.ID, b.ID}, func(t domain.Trip) (domain.Trip, error) {
		if t.ID == b.ID {
			return domain.Trip{}, boom
		}
		t.Type = "shuttle"
		return t, nil
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Type, "first trip must not be committed when the second fails")
}

func TestTripStore_DeleteAll(t *testing.T) {
	ctx := context.Background()
	store := repo.NewTripStore()
	a, b := storedTrip("08:00"), storedTrip("09:00")
	store.InsertMany(ctx, []domain.Trip{a, b})

	require.NoError(t, store.DeleteAll(ctx, []uuid.UUID{a.ID, b.ID}))

	assert.Empty(t, store.Snapshot(ctx))
}

func TestTripStore_DeleteAll_MissingIDDeletesNothing(t *testing.T) {
	ctx := context.Background()
	store := repo.NewTripStore()
	a := storedTrip("08:00")
	store.InsertMany(ctx, []domain.Trip{a})

	err := store.DeleteAll(ctx, []uuid.UUID{a.ID, uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Get(ctx, a.ID)
	assert.NoError(t, err, "existing trip must survive a failed batch delete")
}
