// Package service contains the business logic for the Trip Dispatch Engine.
// Services validate inputs, enforce the trip lifecycle rules, and orchestrate
// store and repo calls. No SQL and no HTTP live here.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/fieldcrew/dispatch/internal/domain"
	"github.com/fieldcrew/dispatch/internal/repo"
)

// Roster provides bounded reads over the two external sources: the booking
// service and the driver roster. Every read carries a deadline and a short
// retry, so a slow upstream can never stall an assignment call indefinitely —
// on timeout or persistent failure the caller gets ErrUpstreamUnavailable
// instead of a hang.
type Roster struct {
	bookings repo.BookingRepo
	drivers  repo.DriverRepo
	timeout  time.Duration
}

// NewRoster constructs a Roster. timeout bounds each read including retries;
// zero or negative falls back to 3 seconds.
func NewRoster(bookings repo.BookingRepo, drivers repo.DriverRepo, timeout time.Duration) *Roster {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Roster{bookings: bookings, drivers: drivers, timeout: timeout}
}

// Booking fetches a single booking.
// Returns domain.ErrNotFound for an unknown id, domain.ErrUpstreamUnavailable
// when the booking source cannot be reached in time.
func (r *Roster) Booking(ctx context.Context, id string) (domain.Booking, error) {
	var b domain.Booking
	err := r.fetch(ctx, "Booking", func(ctx context.Context) error {
		var err error
		b, err = r.bookings.GetByID(ctx, id)
		return err
	})
	return b, err
}

// Bookings fetches the full booking list.
func (r *Roster) Bookings(ctx context.Context) ([]domain.Booking, error) {
	var bs []domain.Booking
	err := r.fetch(ctx, "Bookings", func(ctx context.Context) error {
		var err error
		bs, err = r.bookings.List(ctx)
		return err
	})
	return bs, err
}

// Driver fetches a single driver.
// Returns domain.ErrNotFound for an unknown id, domain.ErrUpstreamUnavailable
// when the roster cannot be reached in time.
func (r *Roster) Driver(ctx context.Context, id string) (domain.Driver, error) {
	var d domain.Driver
	err := r.fetch(ctx, "Driver", func(ctx context.Context) error {
		var err error
		d, err = r.drivers.GetByID(ctx, id)
		return err
	})
	return d, err
}

// Drivers fetches the full driver roster.
func (r *Roster) Drivers(ctx context.Context) ([]domain.Driver, error) {
	var ds []domain.Driver
	err := r.fetch(ctx, "Drivers", func(ctx context.Context) error {
		var err error
		ds, err = r.drivers.List(ctx)
		return err
	})
	return ds, err
}

// fetch runs fn under the roster deadline with a short constant-backoff retry.
// ErrNotFound is terminal and passes through untouched; any other failure is
// retried until the deadline and then reported as ErrUpstreamUnavailable.
func (r *Roster) fetch(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	backoff := retry.WithMaxRetries(2, retry.NewConstant(150*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return retry.RetryableError(err)
		}
		return err
	})

	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("service.Roster.%s: %w", op, err)
	}
	return fmt.Errorf("service.Roster.%s: %w: %v", op, domain.ErrUpstreamUnavailable, err)
}
