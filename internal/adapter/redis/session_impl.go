package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/recipe-service/internal/repository"
	"github.com/user/recipe-service/pkg/utils"
)

const sessionPrefix = "session:"

// SessionRepoImpl provides a concrete implementation for the SessionRepository interface using Redis.
type SessionRepoImpl struct {
	client *redis.Client
}

// NewSessionRepo creates a new instance of SessionRepoImpl.
func NewSessionRepo(client *redis.Client) *SessionRepoImpl {
	return &SessionRepoImpl{client: client}
}

// generateKey hashes the token so raw session tokens never sit in Redis.
func (r *SessionRepoImpl) generateKey(token string) string {
	return fmt.Sprintf("%s%s", sessionPrefix, utils.HashToken(token))
}

// Create stores the session with an expiry.
func (r *SessionRepoImpl) Create(ctx context.Context, token, userID string, expiry time.Duration) error {
	return r.client.Set(ctx, r.generateKey(token), userID, expiry).Err()
}

// Lookup returns the user ID bound to token.
func (r *SessionRepoImpl) Lookup(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, r.generateKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Delete removes a session, used for logout.
func (r *SessionRepoImpl) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.generateKey(token)).Err()
}

// Ping checks the Redis connection for the health endpoint.
func (r *SessionRepoImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
