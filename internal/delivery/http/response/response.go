package response

import (
	"time"

	"github.com/user/recipe-service/internal/entity"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ImportedRecipeResponse is the body of a successful import.
type ImportedRecipeResponse struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

func NewImportedRecipeResponse(r *entity.ImportedRecipe) ImportedRecipeResponse {
	return ImportedRecipeResponse{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Tags:        orEmpty(r.Tags),
		Ingredients: orEmpty(r.Ingredients),
		Steps:       orEmpty(r.Steps),
	}
}

// RecipeResponse is a DTO for a stored recipe, mirroring entity.Recipe
type RecipeResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	ImageURL        *string   `json:"imageUrl"`
	Tags            []string  `json:"tags"`
	Ingredients     []string  `json:"ingredients"`
	Steps           []string  `json:"steps"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedByUserID *string   `json:"createdByUserId"`
	AuthorUsername  *string   `json:"authorUsername,omitempty"`
}

func NewRecipeResponse(r *entity.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		Tags:            orEmpty(r.Tags),
		Ingredients:     orEmpty(r.Ingredients),
		Steps:           orEmpty(r.Steps),
		CreatedAt:       r.CreatedAt,
		CreatedByUserID: r.CreatedByUserID,
		AuthorUsername:  r.AuthorUsername,
	}
}

func NewRecipeListResponse(recipes []*entity.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, NewRecipeResponse(r))
	}
	return out
}

type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"displayName"`
}

func NewUserResponse(u *entity.SessionUser) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName}
}

// ImportAttemptResponse is one entry of the caller's import history.
type ImportAttemptResponse struct {
	URL            string    `json:"url"`
	Outcome        string    `json:"outcome"`
	FailureReason  string    `json:"failureReason,omitempty"`
	HTTPStatusCode int       `json:"httpStatusCode"`
	DurationMS     int       `json:"durationMs"`
	AttemptedAt    time.Time `json:"attemptedAt"`
}

func NewImportHistoryResponse(attempts []*entity.ImportAttempt) []ImportAttemptResponse {
	out := make([]ImportAttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, ImportAttemptResponse{
			URL:            a.URL,
			Outcome:        a.Outcome,
			FailureReason:  a.FailureReason,
			HTTPStatusCode: a.HTTPStatusCode,
			DurationMS:     a.DurationMS,
			AttemptedAt:    a.AttemptedAt,
		})
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
