package repository

import (
	"context"
	"errors"
)

var (
	// ErrRateLimited is returned for a single model that answered with a rate-limit response.
	ErrRateLimited = errors.New("model rate limited")
	// ErrAllModelsExhausted means every configured model was rate limited.
	ErrAllModelsExhausted = errors.New("all models exhausted")
	// ErrModelAuth means the provider rejected the credential.
	ErrModelAuth = errors.New("model provider rejected credentials")
	// ErrModelUnavailable covers any other provider failure.
	ErrModelUnavailable = errors.New("model unavailable")
)

// CompletionClient defines the contract for a chat-completion language model.
type CompletionClient interface {
	// Complete sends a system and user message and returns the raw text answer.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Configured reports whether a provider credential is present.
	Configured() bool
}
