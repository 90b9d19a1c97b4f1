package output

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a key is absent or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is a keyed store with per-key expiry, used for login sessions
// and password reset tokens.
type SessionStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	// Take returns the value and removes the key in one step, so only one
	// caller can consume it.
	Take(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// TokenClaims is what an access token carries.
type TokenClaims struct {
	SessionID string
	UserID    uint
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
	Parse(token string) (TokenClaims, error)
}
