package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claim struct {
	UserID    string
	FullName  string
	ExpiresAt time.Time
}

// ExtractClaims parses the auth token without verifying its signature.
// The backend is the source of truth; the client only reads expiry and
// identity hints out of the opaque token it was handed.
func ExtractClaims(raw string) (*Claim, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}

	claim := &Claim{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claim.UserID = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claim.ExpiresAt = exp.Time
	}
	if mc, ok := parsed.Claims.(jwt.MapClaims); ok {
		if name, ok := mc["name"].(string); ok {
			claim.FullName = name
		}
	}
	return claim, nil
}

// Expired reports whether raw is a JWT with an expiry in the past.
// Opaque (non-JWT) tokens and tokens without exp are never expired here;
// the backend rejects them on first use instead.
func Expired(raw string, now time.Time) bool {
	claim, err := ExtractClaims(raw)
	if err != nil {
		return false
	}
	if claim.ExpiresAt.IsZero() {
		return false
	}
	return now.After(claim.ExpiresAt)
}
