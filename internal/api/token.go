package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry decodes the installed admin token's expiry claim without
// verifying the signature. Verification is the server's job; the client
// only needs to know when to prompt for a fresh login.
func (c *Client) TokenExpiry() (time.Time, error) {
	if c.token == "" {
		return time.Time{}, fmt.Errorf("no admin token installed")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err != nil {
		return time.Time{}, fmt.Errorf("decode admin token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("admin token has no expiry claim")
	}
	return exp.Time, nil
}

// TokenExpired reports whether the installed admin token is past its
// expiry. A token without a readable expiry counts as expired.
func (c *Client) TokenExpired(now time.Time) bool {
	exp, err := c.TokenExpiry()
	if err != nil {
		return true
	}
	return now.After(exp)
}
