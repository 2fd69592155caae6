package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/user/recipe-service/internal/entity"
	"github.com/user/recipe-service/internal/repository"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("only the author can delete this recipe")
)

const recentRecipesLimit = 20

// RecipeManager defines the interface for creating, browsing and deleting recipes.
type RecipeManager interface {
	Create(ctx context.Context, recipe *entity.Recipe, owner *entity.SessionUser) (*entity.Recipe, error)
	Get(ctx context.Context, id string) (*entity.Recipe, error)
	List(ctx context.Context) ([]*entity.Recipe, error)
	ListRecent(ctx context.Context) ([]*entity.Recipe, error)
	Delete(ctx context.Context, id string, caller *entity.SessionUser) error
}

type recipeManagerUseCase struct {
	recipeRepo repository.RecipeRepository
}

// NewRecipeManager creates a new RecipeManager use case.
func NewRecipeManager(recipeRepo repository.RecipeRepository) RecipeManager {
	return &recipeManagerUseCase{recipeRepo: recipeRepo}
}

func (uc *recipeManagerUseCase) Create(ctx context.Context, recipe *entity.Recipe, owner *entity.SessionUser) (*entity.Recipe, error) {
	recipe.Title = strings.TrimSpace(recipe.Title)
	recipe.Description = trimOptional(recipe.Description)
	recipe.ImageURL = trimOptional(recipe.ImageURL)
	recipe.Tags = trimAll(recipe.Tags)
	recipe.Ingredients = trimAll(recipe.Ingredients)
	recipe.Steps = trimAll(recipe.Steps)
	if owner != nil {
		ownerID := owner.ID
		recipe.CreatedByUserID = &ownerID
		username := owner.Username
		recipe.AuthorUsername = &username
	}

	if err := uc.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (uc *recipeManagerUseCase) Get(ctx context.Context, id string) (*entity.Recipe, error) {
	recipe, err := uc.recipeRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	return recipe, err
}

func (uc *recipeManagerUseCase) List(ctx context.Context) ([]*entity.Recipe, error) {
	return uc.recipeRepo.ListRecent(ctx, 0)
}

func (uc *recipeManagerUseCase) ListRecent(ctx context.Context) ([]*entity.Recipe, error) {
	return uc.recipeRepo.ListRecent(ctx, recentRecipesLimit)
}

func (uc *recipeManagerUseCase) Delete(ctx context.Context, id string, caller *entity.SessionUser) error {
	recipe, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if caller == nil || recipe.CreatedByUserID == nil || *recipe.CreatedByUserID != caller.ID {
		return ErrNotRecipeOwner
	}

	err = uc.recipeRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRecipeNotFound
	}
	return err
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// trimAll trims each entry and drops the blank ones.
func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
