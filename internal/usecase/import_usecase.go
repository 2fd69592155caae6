package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/recipe-service/internal/entity"
	"github.com/user/recipe-service/internal/recipeimport"
	"github.com/user/recipe-service/internal/repository"
	"github.com/user/recipe-service/pkg/metrics"
)

const (
	importHistoryLimit = 20
	auditWriteTimeout  = 2 * time.Second
	outcomeSuccess     = "success"
)

// RecipeImporter defines the interface for turning a web page into a recipe suggestion.
type RecipeImporter interface {
	// Import runs the whole pipeline. Every failure is an *ImportError.
	Import(ctx context.Context, rawURL string, caller *entity.SessionUser) (*entity.ImportedRecipe, error)
	// History returns the caller's most recent import attempts.
	History(ctx context.Context, userID string) ([]*entity.ImportAttempt, error)
}

type recipeImportUseCase struct {
	fetcher  repository.PageFetcher
	model    repository.CompletionClient
	attempts repository.ImportAttemptRepository
	logger   *zap.Logger
}

// NewRecipeImporter creates a new RecipeImporter use case. attempts may be nil,
// in which case no audit log is kept.
func NewRecipeImporter(
	fetcher repository.PageFetcher,
	model repository.CompletionClient,
	attempts repository.ImportAttemptRepository,
	logger *zap.Logger,
) RecipeImporter {
	return &recipeImportUseCase{
		fetcher:  fetcher,
		model:    model,
		attempts: attempts,
		logger:   logger.With(zap.String("component", "import")),
	}
}

func (uc *recipeImportUseCase) Import(ctx context.Context, rawURL string, caller *entity.SessionUser) (*entity.ImportedRecipe, error) {
	start := time.Now()
	recipe, importErr := uc.run(ctx, rawURL)
	elapsed := time.Since(start)

	if importErr != nil {
		uc.logger.Warn("recipe import failed",
			zap.String("url", rawURL),
			zap.String("kind", string(importErr.Kind)),
			zap.Int("status", importErr.Status),
			zap.Error(importErr.Err),
		)
		metrics.ImportsTotal.WithLabelValues(string(importErr.Kind)).Inc()
		uc.recordAttempt(ctx, rawURL, caller, importErr, elapsed)
		return nil, importErr
	}

	uc.logger.Info("recipe imported",
		zap.String("url", rawURL),
		zap.Int("ingredients", len(recipe.Ingredients)),
		zap.Int("steps", len(recipe.Steps)),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	)
	metrics.ImportsTotal.WithLabelValues(outcomeSuccess).Inc()
	uc.recordAttempt(ctx, rawURL, caller, nil, elapsed)
	return recipe, nil
}

// run is the linear pipeline. Each stage failure short-circuits the rest.
func (uc *recipeImportUseCase) run(ctx context.Context, rawURL string) (*entity.ImportedRecipe, *ImportError) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, newImportError(KindMissingURL, nil)
	}

	pageURL, err := recipeimport.ValidateURL(rawURL)
	if err != nil {
		switch {
		case errors.Is(err, recipeimport.ErrDisallowedScheme):
			return nil, newImportError(KindDisallowedScheme, err)
		case errors.Is(err, recipeimport.ErrDisallowedHost):
			return nil, newImportError(KindDisallowedHost, err)
		default:
			return nil, newImportError(KindInvalidURL, err)
		}
	}

	if !uc.model.Configured() {
		return nil, newImportError(KindMissingCredential, errors.New("no model provider API key configured"))
	}

	fetchStart := time.Now()
	html, err := uc.fetcher.Fetch(ctx, pageURL)
	metrics.FetchDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		var statusErr *repository.FetchStatusError
		switch {
		case errors.As(err, &statusErr):
			return nil, fetchFailedWithStatus(statusErr.StatusCode, err)
		case errors.Is(err, repository.ErrFetchTimeout):
			return nil, newImportError(KindFetchTimeout, err)
		case errors.Is(err, repository.ErrFetchFailed):
			return nil, newImportError(KindFetchFailed, err)
		default:
			return nil, newImportError(KindUnexpected, err)
		}
	}

	extraction := recipeimport.Extract(html, pageURL)
	prompt := recipeimport.BuildPrompt(extraction.Hint, extraction.CleanedText)

	raw, err := uc.model.Complete(ctx, recipeimport.SystemPrompt, prompt)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAllModelsExhausted):
			return nil, newImportError(KindAllModelsExhausted, err)
		case errors.Is(err, repository.ErrModelAuth):
			return nil, newImportError(KindModelAuth, err)
		default:
			return nil, newImportError(KindUnexpected, err)
		}
	}

	recipe, err := recipeimport.Normalize(raw, extraction.Hint.OGImageURL)
	if err != nil {
		switch {
		case errors.Is(err, recipeimport.ErrUnparsableOutput):
			return nil, newImportError(KindUnparsableOutput, err)
		case errors.Is(err, recipeimport.ErrIncompleteRecipe):
			return nil, newImportError(KindIncompleteRecipe, err)
		default:
			return nil, newImportError(KindUnexpected, err)
		}
	}
	return recipe, nil
}

// recordAttempt writes the audit record once the pipeline is done. Failures are only logged.
func (uc *recipeImportUseCase) recordAttempt(ctx context.Context, rawURL string, caller *entity.SessionUser, importErr *ImportError, elapsed time.Duration) {
	if uc.attempts == nil || caller == nil {
		return
	}

	attempt := &entity.ImportAttempt{
		URL:            rawURL,
		UserID:         caller.ID,
		Outcome:        outcomeSuccess,
		HTTPStatusCode: 200,
		DurationMS:     int(elapsed.Milliseconds()),
		AttemptedAt:    time.Now().UTC(),
	}
	if importErr != nil {
		attempt.Outcome = string(importErr.Kind)
		attempt.FailureReason = importErr.Message
		attempt.HTTPStatusCode = importErr.Status
	}

	// The caller may already be gone; the record is still worth keeping.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()
	if err := uc.attempts.Save(saveCtx, attempt); err != nil {
		uc.logger.Error("failed to record import attempt", zap.String("url", rawURL), zap.Error(err))
	}
}

func (uc *recipeImportUseCase) History(ctx context.Context, userID string) ([]*entity.ImportAttempt, error) {
	if uc.attempts == nil {
		return []*entity.ImportAttempt{}, nil
	}
	return uc.attempts.FindRecentByUser(ctx, userID, importHistoryLimit)
}
