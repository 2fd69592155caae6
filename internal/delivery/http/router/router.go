package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user/recipe-service/internal/delivery/http/handler"
	"github.com/user/recipe-service/internal/delivery/http/middleware"
	"github.com/user/recipe-service/internal/usecase"
)

// Options configures the cross-cutting middleware.
type Options struct {
	ImportRateLimitPerMinute int
	CORSAllowedOrigins       []string
}

func New(h *handler.Handler, auth usecase.Authenticator, opts Options, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(middleware.Authenticate(auth, logger))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.HandleSignup)
			r.Post("/login", h.HandleLogin)
			r.Post("/logout", h.HandleLogout)
			r.With(middleware.RequireAuth).Get("/me", h.HandleMe)
		})

		r.Get("/recipes", h.HandleListRecipes)
		r.Get("/recipes/recent", h.HandleRecentRecipes)
		r.Get("/recipes/{id}", h.HandleGetRecipe)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/recipes", h.HandleCreateRecipe)
			r.Delete("/recipes/{id}", h.HandleDeleteRecipe)
			r.Get("/imports", h.HandleImportHistory)
			r.With(importRateLimit(opts.ImportRateLimitPerMinute)).Post("/import-recipe", h.HandleImportRecipe)
		})
	})

	return r
}

// importRateLimit throttles imports per signed-in user, falling back to the client IP.
func importRateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			if user := middleware.UserFromContext(r.Context()); user != nil {
				return "user:" + user.ID, nil
			}
			return httprate.KeyByIP(r)
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Too many imports. Please wait a minute and try again."})
		}),
	)
}
