package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fieldlog/fieldlog/internal/domain"
)

// ErrorResponse is the flat error body used on every failure path.
// Message is only set on the 404 fallback for unmatched routes.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes a flat {"error": msg} body with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// respondServiceError maps a service error onto the HTTP response. All
// handlers route their service errors through here so the sentinel→status
// mapping cannot drift between resources. notFoundMsg is supplied by the
// caller because the handler is the layer that knows what was looked up.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, unwrapMessage(err))
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusBadRequest, "Email already in use")
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped validation
// error, e.g. "validation error: location is required" → "location is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if _, after, found := strings.Cut(msg, domain.ErrValidation.Error()+": "); found {
		return after
	}
	return msg
}
