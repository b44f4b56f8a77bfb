package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway is how close to expiry a token may get before the client
// refreshes it ahead of an upload.
const expiryLeeway = 30 * time.Second

// tokenExpiresSoon peeks at the JWT exp claim without verifying the
// signature (verification is the server's job; the client only schedules
// refreshes). Opaque non-JWT tokens report false: the regular 401 path
// handles them.
func tokenExpiresSoon(token string) (bool, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, err
	}
	return time.Until(exp.Time) < expiryLeeway, nil
}
