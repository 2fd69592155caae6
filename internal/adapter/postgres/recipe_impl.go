package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipe-service/internal/entity"
	"github.com/user/recipe-service/internal/repository"
)

const recipeColumns = `
	r.id, r.title, r.description, r.image_url, r.tags, r.ingredients, r.steps,
	r.created_at, r.created_by_user_id, u.username`

// RecipeRepoImpl provides a concrete implementation for the RecipeRepository interface using PostgreSQL.
type RecipeRepoImpl struct {
	db *pgxpool.Pool
}

// NewRecipeRepo creates a new instance of RecipeRepoImpl.
func NewRecipeRepo(db *pgxpool.Pool) *RecipeRepoImpl {
	return &RecipeRepoImpl{db: db}
}

// Create inserts the recipe, assigning a fresh ID.
func (r *RecipeRepoImpl) Create(ctx context.Context, recipe *entity.Recipe) error {
	recipe.ID = uuid.NewString()
	query := `
		INSERT INTO recipes (id, title, description, image_url, tags, ingredients, steps, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at;
	`
	return r.db.QueryRow(ctx, query,
		recipe.ID,
		recipe.Title,
		recipe.Description,
		recipe.ImageURL,
		nonNil(recipe.Tags),
		nonNil(recipe.Ingredients),
		nonNil(recipe.Steps),
		recipe.CreatedByUserID,
	).Scan(&recipe.CreatedAt)
}

// FindByID retrieves one recipe with its author's username.
func (r *RecipeRepoImpl) FindByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `SELECT` + recipeColumns + `
		FROM recipes r
		LEFT JOIN users u ON u.id = r.created_by_user_id
		WHERE r.id = $1;
	`
	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return recipe, err
}

// ListRecent returns recipes newest first. A non-positive limit returns every row.
func (r *RecipeRepoImpl) ListRecent(ctx context.Context, limit int) ([]*entity.Recipe, error) {
	query := `SELECT` + recipeColumns + `
		FROM recipes r
		LEFT JOIN users u ON u.id = r.created_by_user_id
		ORDER BY r.created_at DESC
		LIMIT $1;
	`
	var limitArg any // LIMIT NULL means no limit
	if limit > 0 {
		limitArg = limit
	}

	rows, err := r.db.Query(ctx, query, limitArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []*entity.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// Delete removes a recipe by ID.
func (r *RecipeRepoImpl) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := row.Scan(
		&recipe.ID,
		&recipe.Title,
		&recipe.Description,
		&recipe.ImageURL,
		&recipe.Tags,
		&recipe.Ingredients,
		&recipe.Steps,
		&recipe.CreatedAt,
		&recipe.CreatedByUserID,
		&recipe.AuthorUsername,
	)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
