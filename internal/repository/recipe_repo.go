package repository

import (
	"context"
	"errors"

	"github.com/user/recipe-service/internal/entity"
)

var ErrNotFound = errors.New("not found")

// RecipeRepository defines the interface for storing and retrieving recipes.
type RecipeRepository interface {
	// Create stores a new recipe and fills in its ID and CreatedAt.
	Create(ctx context.Context, recipe *entity.Recipe) error
	// FindByID returns ErrNotFound when no recipe has the given ID.
	FindByID(ctx context.Context, id string) (*entity.Recipe, error)
	// ListRecent returns recipes newest first; limit <= 0 means all.
	ListRecent(ctx context.Context, limit int) ([]*entity.Recipe, error)
	// Delete returns ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
