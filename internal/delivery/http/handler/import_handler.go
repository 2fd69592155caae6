package handler

import (
	"errors"
	"net/http"

	"github.com/user/recipe-service/internal/delivery/http/middleware"
	"github.com/user/recipe-service/internal/delivery/http/request"
	"github.com/user/recipe-service/internal/delivery/http/response"
	"github.com/user/recipe-service/internal/usecase"
)

// HandleImportRecipe runs the import pipeline for the authenticated caller.
func (h *Handler) HandleImportRecipe(w http.ResponseWriter, r *http.Request) {
	var req request.ImportRecipeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	// A non-string url goes through the pipeline as "" so it is reported
	// and audited like any other missing URL.
	rawURL, _ := req.URLString()

	recipe, err := h.importer.Import(r.Context(), rawURL, middleware.UserFromContext(r.Context()))
	if err != nil {
		var importErr *usecase.ImportError
		if errors.As(err, &importErr) {
			h.writeJSONError(w, importErr.Message, importErr.Status)
			return
		}
		h.writeInternalError(w, "Recipe import failed", err)
		return
	}

	h.writeJSON(w, http.StatusOK, response.NewImportedRecipeResponse(recipe))
}

// HandleImportHistory lists the caller's recent import attempts.
func (h *Handler) HandleImportHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	attempts, err := h.importer.History(r.Context(), user.ID)
	if err != nil {
		h.writeInternalError(w, "Failed to load import history", err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.NewImportHistoryResponse(attempts))
}
