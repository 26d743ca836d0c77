// Package session carries the caller's backend credentials explicitly through
// the service layer instead of reading them from ambient request state.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingToken = errors.New("session token is missing")
	ErrExpired      = errors.New("session token has expired")
)

// Session is an authenticated backend session. Claims are read from the token
// when it is a JWT; the backend remains the only party that verifies it.
type Session struct {
	Token     string
	Subject   string
	Username  string
	Role      string
	ExpiresAt time.Time
}

// New builds a session from a raw token or an "Authorization: Bearer" value.
// Opaque (non-JWT) tokens are accepted without claims.
func New(token string) (*Session, error) {
	return newAt(token, time.Now())
}

func newAt(token string, now time.Time) (*Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), bearerPrefix))
	if token == "" {
		return nil, ErrMissingToken
	}

	s := &Session{Token: token}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s, nil
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
		if !now.Before(exp.Time) {
			return nil, ErrExpired
		}
	}
	if sub, err := claims.GetSubject(); err == nil {
		s.Subject = sub
	}
	if s.Subject == "" {
		if id, ok := claims["id"].(string); ok {
			s.Subject = id
		}
	}
	if username, ok := claims["username"].(string); ok {
		s.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		s.Role = role
	}
	return s, nil
}

// AuthorizationHeader returns the value sent to the backend.
func (s *Session) AuthorizationHeader() string {
	return bearerPrefix + s.Token
}

// Key identifies the session in in-memory caches without keeping the raw token as a key.
func (s *Session) Key() string {
	sum := sha256.Sum256([]byte(s.Token))
	return hex.EncodeToString(sum[:])
}

// TTL returns how long session-scoped state may live, bounded by max.
func (s *Session) TTL(max time.Duration) time.Duration {
	if s.ExpiresAt.IsZero() {
		return max
	}
	remaining := time.Until(s.ExpiresAt)
	if remaining < max {
		return remaining
	}
	return max
}

func (s *Session) IsAdmin() bool {
	return s.Role == "admin"
}
