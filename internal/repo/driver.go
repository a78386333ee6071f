package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fieldcrew/dispatch/internal/domain"
)

// DriverRepo defines read access to the external driver roster.
// Trip counts and availability are maintained by the roster service; the
// dispatch engine only reads them.
type DriverRepo interface {
	// List returns all drivers ordered by name.
	List(ctx context.Context) ([]domain.Driver, error)

	// GetByID retrieves a single driver.
	// Returns domain.ErrNotFound if no driver with that id exists.
	GetByID(ctx context.Context, id string) (domain.Driver, error)
}

// pgDriverRepo is the Postgres implementation of DriverRepo.
type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

const driverColumns = `id, name, vehicle, seats, status, current_trips, completed_trips`

// List returns all drivers ordered by name ascending.
func (r *pgDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM drivers ORDER BY name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: %w", err)
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DriverRepo.List: scan: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: rows: %w", err)
	}

	return drivers, nil
}

// GetByID retrieves a driver by primary key.
func (r *pgDriverRepo) GetByID(ctx context.Context, id string) (domain.Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM drivers WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	d, err := scanDriver(row)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", err)
	}
	return d, nil
}

// scanDriver maps a single database row into a domain.Driver.
func scanDriver(s scanner) (domain.Driver, error) {
	var d domain.Driver
	err := s.Scan(&d.ID, &d.Name, &d.Vehicle, &d.Seats, &d.Status,
		&d.CurrentTrips, &d.CompletedTrips)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Driver{}, domain.ErrNotFound
		}
		return domain.Driver{}, err
	}
	return d, nil
}
