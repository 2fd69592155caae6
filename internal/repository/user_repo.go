package repository

import (
	"context"
	"errors"

	"github.com/user/recipe-service/internal/entity"
)

var ErrUsernameTaken = errors.New("username already taken")

// UserRepository defines the interface for user accounts.
type UserRepository interface {
	// Create returns ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
