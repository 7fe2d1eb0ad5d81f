package jwtmanager

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenClaims are the claims of a backend bearer token that the service reads.
// The signature is never checked here; the backend does that on every call.
type TokenClaims struct {
	Subject   string
	ExpiresAt *time.Time
}

var ErrMalformedToken = errors.New("malformed bearer token")

// Inspect decodes the token payload without verifying it.
func Inspect(token string) (*TokenClaims, error) {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}

	result := &TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		result.ExpiresAt = &expiresAt
	}
	return result, nil
}

// Expired reports whether token carries an exp claim at or before now.
// Opaque tokens that are not JWTs never expire on this side.
func Expired(token string, now time.Time) bool {
	claims, err := Inspect(token)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(*claims.ExpiresAt)
}
