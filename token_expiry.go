package goAuthClient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired peeks at a JWT-shaped token's exp claim without verifying the
// signature. Verification is the server's job; this only avoids a doomed
// round trip. Opaque tokens and tokens without exp always pass.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
