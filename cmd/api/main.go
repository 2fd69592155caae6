package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/user/recipe-service/internal/adapter/httpfetch"
	"github.com/user/recipe-service/internal/adapter/llm"
	"github.com/user/recipe-service/internal/adapter/postgres"
	redis_adapter "github.com/user/recipe-service/internal/adapter/redis"
	"github.com/user/recipe-service/internal/delivery/http/handler"
	"github.com/user/recipe-service/internal/delivery/http/router"
	"github.com/user/recipe-service/internal/usecase"
	"github.com/user/recipe-service/pkg/config"
	"github.com/user/recipe-service/pkg/logger"
	"github.com/user/recipe-service/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// --- Metrics ---
	metrics.Init()

	// --- Database Connections ---
	ctx := context.Background()

	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal("unable to create postgres pool", zap.Error(err))
	}
	defer dbpool.Close()
	if err := dbpool.Ping(ctx); err != nil {
		log.Fatal("unable to reach postgres", zap.Error(err))
	}
	if err := postgres.EnsureSchema(ctx, dbpool); err != nil {
		log.Fatal("unable to prepare schema", zap.Error(err))
	}
	log.Info("postgres connection pool established")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("unable to connect to redis", zap.Error(err))
	}
	log.Info("redis connection established")

	// --- Repositories ---
	recipeRepo := postgres.NewRecipeRepo(dbpool)
	userRepo := postgres.NewUserRepo(dbpool)
	attemptRepo := postgres.NewImportAttemptRepo(dbpool)
	sessionRepo := redis_adapter.NewSessionRepo(rdb)

	// --- Import pipeline collaborators ---
	fetcher := httpfetch.NewFetcher(cfg.FetchTimeout(), cfg.FetchMaxBytes, httpfetch.NewProxyRotator(cfg.FetchProxies), log)
	completion := llm.NewClient(llm.Options{
		APIKey:      cfg.LLMAPIKey,
		BaseURL:     cfg.LLMBaseURL,
		Models:      cfg.LLMModels,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout(),
	}, log)
	if !completion.Configured() {
		log.Warn("LLM_API_KEY is not set; recipe imports will fail until it is configured")
	}

	// --- Use Cases ---
	importer := usecase.NewRecipeImporter(fetcher, completion, attemptRepo, log)
	recipeManager := usecase.NewRecipeManager(recipeRepo)
	authenticator := usecase.NewAuthenticator(userRepo, sessionRepo, cfg.SessionTTL(), log)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(importer, recipeManager, authenticator,
		map[string]handler.Pinger{"postgres": dbpool, "redis": sessionRepo},
		handler.Options{SessionTTL: cfg.SessionTTL(), CookieSecure: cfg.SessionCookieSecure},
		log,
	)
	httpRouter := router.New(apiHandler, authenticator, router.Options{
		ImportRateLimitPerMinute: cfg.ImportRateLimitPerMinute,
		CORSAllowedOrigins:       cfg.CORSAllowedOrigins,
	}, log)

	// An import may wait on the fetch plus every model candidate.
	writeTimeout := cfg.FetchTimeout() + time.Duration(len(cfg.LLMModels))*cfg.LLMTimeout() + 10*time.Second

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.ServerPort), zap.Strings("models", cfg.LLMModels))

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}
