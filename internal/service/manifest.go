package service

import (
	"context"

	"github.com/fieldcrew/dispatch/internal/repo"
)

// ManifestRow is a single row in the dispatcher run-sheet export.
// It is a flat, denormalized view: one row per stop, with trip fields
// repeated for every stop on that trip. Every trip has at least one stop,
// so every trip appears at least once.
//
// Staff is the list of names for the stop. Callers that need a joined
// string (e.g. CSV) should join with "|".
type ManifestRow struct {
	TripID     string   `json:"trip_id"`
	Direction  string   `json:"direction"`
	StartTime  string   `json:"start_time"` // "HH:MM"
	Driver     string   `json:"driver,omitempty"`
	Status     string   `json:"status"`
	StopOrder  int      `json:"stop_order"` // 1-based pickup order
	StopLoc    string   `json:"stop_location"`
	Staff      []string `json:"staff"`
	DistanceKm float64  `json:"distance_km"`
}

// ManifestService assembles the flat run-sheet view over the trip store.
type ManifestService struct {
	store *repo.TripStore
}

// NewManifestService constructs a ManifestService.
func NewManifestService(store *repo.TripStore) *ManifestService {
	return &ManifestService{store: store}
}

// Rows returns one ManifestRow per stop across all trips, in store order
// (start time, then id) with stops in pickup order.
// Always returns a non-nil slice.
func (s *ManifestService) Rows(ctx context.Context) ([]ManifestRow, error) {
	rows := []ManifestRow{}
	for _, t := range s.store.Snapshot(ctx) {
		for i, stop := range t.Stops {
			rows = append(rows, ManifestRow{
				TripID:     t.ID.String(),
				Direction:  string(t.Direction),
				StartTime:  t.Start.String(),
				Driver:     t.DriverName,
				Status:     string(t.Current),
				StopOrder:  i + 1,
				StopLoc:    stop.Location,
				Staff:      append([]string(nil), stop.Staff...),
				DistanceKm: t.DistanceKm,
			})
		}
	}
	return rows, nil
}
