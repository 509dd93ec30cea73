package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrCredentialNotJWT is returned by [ParseClaims] for credentials that are
// not compact JWS tokens. Such credentials are still valid bearer tokens; the
// backend is free to issue opaque strings.
var ErrCredentialNotJWT = errors.New("credential is not a JWT")

// Claims is the informational view of a credential.
//
// The claims are parsed WITHOUT signature verification and must only be used
// for logging and display, never to decide whether the user is signed in.
type Claims struct {
	// Subject is the "sub" claim.
	Subject string

	// ExpiresAt is the "exp" claim, zero when absent.
	ExpiresAt time.Time
}

// ParseClaims extracts [Claims] from a JWT credential.
func ParseClaims(credential string) (Claims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrCredentialNotJWT, err)
	}

	var c Claims
	if c.Subject, err = token.Claims.GetSubject(); err != nil {
		return Claims{}, fmt.Errorf("error extracting subject from credential: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("error extracting expiry from credential: %w", err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}

	return c, nil
}

// Expired reports whether the credential carries an expiry that has passed
// relative to now. Credentials without an expiry never report expired.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
