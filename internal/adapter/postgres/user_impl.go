package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipe-service/internal/entity"
	"github.com/user/recipe-service/internal/repository"
)

const uniqueViolation = "23505"

// UserRepoImpl provides a concrete implementation for the UserRepository interface using PostgreSQL.
type UserRepoImpl struct {
	db *pgxpool.Pool
}

// NewUserRepo creates a new instance of UserRepoImpl.
func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

// Create inserts a new account, assigning a fresh ID.
func (r *UserRepoImpl) Create(ctx context.Context, user *entity.User) error {
	user.ID = uuid.NewString()
	query := `
		INSERT INTO users (id, username, display_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at;
	`
	err := r.db.QueryRow(ctx, query, user.ID, user.Username, user.DisplayName, user.PasswordHash).Scan(&user.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrUsernameTaken
	}
	return err
}

// FindByUsername retrieves an account by its login name.
func (r *UserRepoImpl) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE username = $1`, username)
}

// FindByID retrieves an account by ID.
func (r *UserRepoImpl) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepoImpl) findOne(ctx context.Context, where string, arg string) (*entity.User, error) {
	query := `SELECT id, username, display_name, password_hash, created_at FROM users ` + where + `;`

	var user entity.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
