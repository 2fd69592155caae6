package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/recipe-service/internal/entity"
	"github.com/user/recipe-service/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Authenticator defines the interface for account and session management.
type Authenticator interface {
	Signup(ctx context.Context, username, password string, displayName *string) (*entity.SessionUser, string, error)
	Login(ctx context.Context, username, password string) (*entity.SessionUser, string, error)
	Logout(ctx context.Context, token string) error
	// Resolve maps a session token to its user, or ErrNotAuthenticated.
	Resolve(ctx context.Context, token string) (*entity.SessionUser, error)
}

type authUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	sessionTTL  time.Duration
	bcryptCost  int
	logger      *zap.Logger
}

// NewAuthenticator creates a new Authenticator use case.
func NewAuthenticator(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	sessionTTL time.Duration,
	logger *zap.Logger,
) Authenticator {
	return &authUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		bcryptCost:  bcrypt.DefaultCost,
		logger:      logger,
	}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (uc *authUseCase) Signup(ctx context.Context, username, password string, displayName *string) (*entity.SessionUser, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     normalizeUsername(username),
		DisplayName:  trimOptional(displayName),
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	return uc.startSession(ctx, user)
}

func (uc *authUseCase) Login(ctx context.Context, username, password string) (*entity.SessionUser, string, error) {
	user, err := uc.userRepo.FindByUsername(ctx, normalizeUsername(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	return uc.startSession(ctx, user)
}

func (uc *authUseCase) startSession(ctx context.Context, user *entity.User) (*entity.SessionUser, string, error) {
	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	if err := uc.sessionRepo.Create(ctx, token, user.ID, uc.sessionTTL); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}
	return toSessionUser(user), token, nil
}

func (uc *authUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.sessionRepo.Delete(ctx, token)
}

func (uc *authUseCase) Resolve(ctx context.Context, token string) (*entity.SessionUser, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	userID, err := uc.sessionRepo.Lookup(ctx, token)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		// Account removed while the session was alive.
		uc.logger.Warn("session points at a missing user", zap.String("user_id", userID))
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	return toSessionUser(user), nil
}

func toSessionUser(user *entity.User) *entity.SessionUser {
	return &entity.SessionUser{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}
