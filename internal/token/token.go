// Package token issues and verifies the signed bearer tokens that prove a
// user's identity. Tokens are HS256 JWTs carrying the user id as the subject
// claim plus issued-at and expiry timestamps. The package is stateless: there
// is no revocation list, so logout is purely client-side and a token stays
// valid until it expires.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Verify for any token that cannot be trusted:
// bad signature, expired, malformed, or carrying an unusable subject.
// Callers map this to HTTP 401 without exposing which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Issuer signs and verifies tokens with a single process-wide HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// New constructs an Issuer. The secret must be non-empty; ttl is the validity
// window stamped into every issued token.
func New(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token: secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue returns a signed token identifying userID, valid for the Issuer's ttl.
func (i *Issuer) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token.Issuer.Issue: %w", err)
	}
	return signed, nil
}

// Verify parses and validates raw, returning the user id it identifies.
// Any failure — signature, expiry, malformed input, non-UUID subject —
// collapses into ErrInvalidToken.
func (i *Issuer) Verify(raw string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
