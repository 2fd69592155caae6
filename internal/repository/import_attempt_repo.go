package repository

import (
	"context"

	"github.com/user/recipe-service/internal/entity"
)

// ImportAttemptRepository defines the interface for the recipe import audit log.
type ImportAttemptRepository interface {
	// Save appends one attempt record.
	Save(ctx context.Context, attempt *entity.ImportAttempt) error
	// FindRecentByUser returns a user's latest attempts, newest first.
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.ImportAttempt, error)
}
