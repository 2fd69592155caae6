package entity

import "time"

// Recipe mirrors the `recipes` PostgreSQL table schema.
type Recipe struct {
	ID              string
	Title           string
	Description     *string
	ImageURL        *string
	Tags            []string // Stored as text[]
	Ingredients     []string
	Steps           []string
	CreatedAt       time.Time
	CreatedByUserID *string
	AuthorUsername  *string // joined from users on read
}

// ImportedRecipe is the validated suggestion produced by a recipe import.
// It is never stored directly; the caller saves it later as a Recipe.
type ImportedRecipe struct {
	Title       string
	Description *string
	ImageURL    *string
	Tags        []string
	Ingredients []string
	Steps       []string
}

// Complete reports whether the recipe has a title, at least one ingredient and at least one step.
func (r *ImportedRecipe) Complete() bool {
	return r.Title != "" && len(r.Ingredients) > 0 && len(r.Steps) > 0
}
