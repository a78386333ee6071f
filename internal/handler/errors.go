package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fieldcrew/dispatch/internal/domain"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("encode response", "error", err)
		}
	}
}

// respondError maps a service error onto an HTTP status and error body.
// The sentinel errors in domain carry the contract: validation 422, not
// found 404, illegal transition 409, upstream unavailable 503. Anything
// else is a 500 with the detail kept out of the response body.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{errorDetail{"validation_error", unwrapMessage(err)}})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{errorDetail{"not_found", unwrapMessage(err)}})
	case errors.Is(err, domain.ErrIllegalTransition):
		respondJSON(w, http.StatusConflict, errorBody{errorDetail{"illegal_transition", unwrapMessage(err)}})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		respondJSON(w, http.StatusServiceUnavailable, errorBody{errorDetail{"upstream_unavailable", "booking or driver source unavailable, try again"}})
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
		respondJSON(w, http.StatusInternalServerError, errorBody{errorDetail{"internal_error", "internal server error"}})
	}
}

// respondBadRequest rejects a request before it reaches the service layer
// (e.g. malformed body, bad id).
func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorBody{errorDetail{"validation_error", message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.Dispatch.BulkEdit: validation error: no trips selected"
// → "no trips selected". Falls back to the full message.
func unwrapMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrNotFound.Error() + ": ",
		domain.ErrIllegalTransition.Error() + ": ",
	} {
		if i := strings.LastIndex(msg, sentinel); i >= 0 {
			return msg[i+len(sentinel):]
		}
	}
	// "repo.TripStore.Get: not found" — no detail after the sentinel.
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
