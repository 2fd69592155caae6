package repository

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the interface for login sessions.
type SessionRepository interface {
	// Create binds a session token to a user ID with a specific expiry time.
	Create(ctx context.Context, token, userID string, expiry time.Duration) error
	// Lookup returns the user ID of a live session, or ErrSessionNotFound.
	Lookup(ctx context.Context, token string) (string, error)
	// Delete removes a session, used for logout.
	Delete(ctx context.Context, token string) error
}
