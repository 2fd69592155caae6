package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/recipe-service/internal/delivery/http/response"
	"github.com/user/recipe-service/internal/usecase"
)

const maxBodyBytes = 1 << 20

// Pinger is a dependency the health endpoint can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options holds session cookie settings.
type Options struct {
	SessionTTL   time.Duration
	CookieSecure bool
}

type Handler struct {
	importer usecase.RecipeImporter
	recipes  usecase.RecipeManager
	auth     usecase.Authenticator
	checks   map[string]Pinger
	opts     Options
	logger   *zap.Logger
}

func NewHandler(
	importer usecase.RecipeImporter,
	recipes usecase.RecipeManager,
	auth usecase.Authenticator,
	checks map[string]Pinger,
	opts Options,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		importer: importer,
		recipes:  recipes,
		auth:     auth,
		checks:   checks,
		opts:     opts,
		logger:   logger,
	}
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthStatus := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			healthStatus[name] = "unhealthy"
			healthy = false
			h.logger.Error("health check failed", zap.String("dependency", name), zap.Error(err))
			continue
		}
		healthStatus[name] = "healthy"
	}

	if !healthy {
		h.writeJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}
	h.writeJSON(w, http.StatusOK, healthStatus)
}

// decodeJSON reads a bounded JSON body into dst.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Message: message})
}

func (h *Handler) writeInternalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
}
