package stub

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/udusdev/biovote/internal/response"
)

// Authenticator issues and verifies the stub's admin session tokens.
type Authenticator struct {
	username     string
	passwordHash []byte
	secret       []byte
	tokenTTL     time.Duration
}

// NewAuthenticator hashes the configured admin password once at startup.
func NewAuthenticator(username, password, secret string, tokenTTL time.Duration) (*Authenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Authenticator{
		username:     username,
		passwordHash: hash,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}, nil
}

// Login verifies the credentials and returns a signed admin token.
func (a *Authenticator) Login(username, password string) (string, error) {
	if username != a.username {
		return "", fmt.Errorf("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", fmt.Errorf("invalid username or password")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(a.tokenTTL).Unix(),
	})
	return token.SignedString(a.secret)
}

// Verify checks a bearer token's signature and expiry.
func (a *Authenticator) Verify(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// RequireAdmin guards the catalog-mutation and session routes.
func RequireAdmin(auth *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.UnauthorizedError(c, "admin token required")
			c.Abort()
			return
		}
		if err := auth.Verify(token); err != nil {
			response.UnauthorizedError(c, "invalid or expired admin token")
			c.Abort()
			return
		}
		c.Next()
	}
}
