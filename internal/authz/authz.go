// Package authz implements the ownership/role authorization model.
//
// Every decision is a pure function of the requester and the owning user of
// the target resource — there is no cached authorization state, so all
// functions are safe to call concurrently. Services consult this package for
// every single-resource read/update/delete and for the visibility scope of
// every collection query; the ownership comparison must never be
// re-implemented inline in a handler or service.
package authz

import (
	"github.com/google/uuid"

	"github.com/fieldlog/fieldlog/internal/domain"
)

// Requester is the authenticated identity attached to a request by the auth
// middleware. Role is loaded fresh from the store on every request rather
// than trusted from the token, so revoking admin takes effect immediately.
type Requester struct {
	UserID uuid.UUID
	Role   domain.Role
}

// IsAdmin reports whether the requester holds the admin role.
func (r Requester) IsAdmin() bool {
	return r.Role == domain.RoleAdmin
}

// CanAccess decides ALLOW/DENY for read, update, and delete of a single
// resource owned by ownerID:
//
//	allow := requester.role == admin OR requester.id == ownerID
//
// For a Trip, ownerID is the trip's user id; for a Species record it is the
// owning user of the record's parent trip. Callers must resolve the resource
// first (NotFound before Forbidden) and only then apply this rule.
func CanAccess(r Requester, ownerID uuid.UUID) bool {
	return r.IsAdmin() || r.UserID == ownerID
}

// Scope is the visibility predicate for collection queries. Rather than
// filtering rows after the fact, repos push the scope into the SQL WHERE
// clause: trips filter on user_id directly, species through the joined trip.
type Scope struct {
	// All is true for admin requesters: no ownership filter at all.
	All bool
	// OwnerID restricts rows to this owning user when All is false.
	OwnerID uuid.UUID
}

// ScopeFor computes the visibility scope for list and search operations.
// Search criteria are AND'd with this scope, never OR'd — criteria can narrow
// what the requester sees but can never widen it past their own rows.
func ScopeFor(r Requester) Scope {
	if r.IsAdmin() {
		return Scope{All: true}
	}
	return Scope{OwnerID: r.UserID}
}
