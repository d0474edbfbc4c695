package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fieldlog/fieldlog/internal/authz"
	"github.com/fieldlog/fieldlog/internal/middleware"
)

// dateLayout is the wire format for trip dates.
const dateLayout = "2006-01-02"

// decodeJSON decodes the request body into dst, rejecting unknown fields.
// Unknown-field rejection is what keeps forbidden fields (like role on a
// self-update) from silently riding along in an update payload.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("Invalid request body")
	}
	return nil
}

// requester extracts the authenticated requester placed in the context by the
// auth middleware. The false case only fires if a route was wired without the
// middleware — a programming error surfaced as 401 rather than a panic.
func requester(r *http.Request) (authz.Requester, bool) {
	return middleware.RequesterFrom(r.Context())
}

// pathID parses the {id} URL parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// parseDate parses a YYYY-MM-DD wire date into a midnight-UTC time.Time.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
