package handler

import (
	"errors"
	"net/http"

	"github.com/user/recipe-service/internal/delivery/http/middleware"
	"github.com/user/recipe-service/internal/delivery/http/request"
	"github.com/user/recipe-service/internal/delivery/http/response"
	"github.com/user/recipe-service/internal/usecase"
)

func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := request.Validate(&req); err != nil {
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.auth.Signup(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameTaken) {
			h.writeJSONError(w, "Username is already taken", http.StatusConflict)
			return
		}
		h.writeInternalError(w, "Signup failed", err)
		return
	}

	h.setSessionCookie(w, token)
	h.writeJSON(w, http.StatusCreated, response.NewUserResponse(user))
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := request.Validate(&req); err != nil {
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			h.writeJSONError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		h.writeInternalError(w, "Login failed", err)
		return
	}

	h.setSessionCookie(w, token)
	h.writeJSON(w, http.StatusOK, response.NewUserResponse(user))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
		h.writeInternalError(w, "Logout failed", err)
		return
	}
	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.NewUserResponse(middleware.UserFromContext(r.Context())))
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
