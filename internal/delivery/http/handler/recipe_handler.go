package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/recipe-service/internal/delivery/http/middleware"
	"github.com/user/recipe-service/internal/delivery/http/request"
	"github.com/user/recipe-service/internal/delivery/http/response"
	"github.com/user/recipe-service/internal/entity"
	"github.com/user/recipe-service/internal/usecase"
)

func (h *Handler) HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.List(r.Context())
	if err != nil {
		h.writeInternalError(w, "Failed to list recipes", err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.NewRecipeListResponse(recipes))
}

func (h *Handler) HandleRecentRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.ListRecent(r.Context())
	if err != nil {
		h.writeInternalError(w, "Failed to list recent recipes", err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.NewRecipeListResponse(recipes))
}

func (h *Handler) HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.recipes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrRecipeNotFound) {
			h.writeJSONError(w, "Recipe not found", http.StatusNotFound)
			return
		}
		h.writeInternalError(w, "Failed to get recipe", err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.NewRecipeResponse(recipe))
}

func (h *Handler) HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRecipeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	req.Normalize()
	if err := request.Validate(&req); err != nil {
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	recipe, err := h.recipes.Create(r.Context(), &entity.Recipe{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	}, middleware.UserFromContext(r.Context()))
	if err != nil {
		h.writeInternalError(w, "Failed to create recipe", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, response.NewRecipeResponse(recipe))
}

func (h *Handler) HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	err := h.recipes.Delete(r.Context(), chi.URLParam(r, "id"), middleware.UserFromContext(r.Context()))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, usecase.ErrRecipeNotFound):
		h.writeJSONError(w, "Recipe not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotRecipeOwner):
		h.writeJSONError(w, err.Error(), http.StatusForbidden)
	default:
		h.writeInternalError(w, "Failed to delete recipe", err)
	}
}
