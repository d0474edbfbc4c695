package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, unknown trip type, or a
// referenced parent resource that does not exist).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write violates a uniqueness rule,
// currently only duplicate user emails.
// Handlers should map this to HTTP 400 ("Email already in use").
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when an authenticated requester fails the
// ownership/role rule for a resource that does exist.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthenticated is returned when no valid identity is present.
// Handlers and the auth middleware map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrInvalidCredentials is returned by login when the email is unknown or the
// password does not match. Distinct from ErrUnauthenticated so the handler can
// return the login-specific message, but it also maps to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")
