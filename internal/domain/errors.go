package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty selection, missing required stop).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrIllegalTransition is returned when a status advance is requested out of
// forward order, or after a trip has already reached completed.
// Handlers should map this to HTTP 409 Conflict.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrUpstreamUnavailable is returned when the booking source or driver roster
// cannot be reached within the configured timeout.
// Handlers should map this to HTTP 503 Service Unavailable.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")
