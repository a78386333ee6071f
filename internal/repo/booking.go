package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fieldcrew/dispatch/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BookingRepo defines read access to the external booking source.
// The dispatch engine never writes bookings — the booking service owns them.
type BookingRepo interface {
	// List returns all bookings ordered by start time.
	List(ctx context.Context) ([]domain.Booking, error)

	// GetByID retrieves a single booking.
	// Returns domain.ErrNotFound if no booking with that id exists.
	GetByID(ctx context.Context, id string) (domain.Booking, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, customer, service, location, lat, lng, start_time, end_time, staff, staff_addresses, priority`

// List returns all bookings ordered by start time ascending.
func (r *pgBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY start_time, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.List: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.List: scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.List: rows: %w", err)
	}

	return bookings, nil
}

// GetByID retrieves a booking by primary key.
func (r *pgBookingRepo) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	b, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	return b, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanBooking maps a single database row into a domain.Booking.
// Clock times are stored as "HH:MM" text and parsed on the way out.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b          domain.Booking
		start, end string
	)

	err := s.Scan(&b.ID, &b.Customer, &b.Service, &b.Location, &b.Lat, &b.Lng,
		&start, &end, &b.Staff, &b.StaffAddresses, &b.Priority)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	if b.Start, err = domain.ParseClockTime(start); err != nil {
		return domain.Booking{}, fmt.Errorf("bad start_time %q: %w", start, err)
	}
	if b.End, err = domain.ParseClockTime(end); err != nil {
		return domain.Booking{}, fmt.Errorf("bad end_time %q: %w", end, err)
	}
	return b, nil
}
