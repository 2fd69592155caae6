package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/user/recipe-service/internal/repository"
	"github.com/user/recipe-service/pkg/metrics"
)

// Options configures the chat-completion client.
type Options struct {
	APIKey      string
	BaseURL     string
	Models      []string // tried in order
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration // per model attempt
}

// Client talks to an OpenAI-compatible chat-completion endpoint and falls
// back to the next model only when the current one is rate limited.
type Client struct {
	api         openai.Client
	configured  bool
	models      []string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewClient creates a new completion client.
func NewClient(opts Options, logger *zap.Logger) *Client {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		// A rate-limited model must hand over to the next candidate immediately.
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &Client{
		api:         openai.NewClient(reqOpts...),
		configured:  strings.TrimSpace(opts.APIKey) != "",
		models:      opts.Models,
		maxTokens:   int64(opts.MaxTokens),
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		logger:      logger.With(zap.String("component", "llm")),
	}
}

var _ repository.CompletionClient = (*Client)(nil)

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool {
	return c.configured
}

// Complete sends one system and one user message to each model in turn.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if len(c.models) == 0 {
		return "", fmt.Errorf("%w: no models configured", repository.ErrModelUnavailable)
	}

	for _, model := range c.models {
		text, err := c.completeWith(ctx, model, systemPrompt, userPrompt)
		if err == nil {
			metrics.ModelAttemptsTotal.WithLabelValues(model, "success").Inc()
			return text, nil
		}

		if ShouldFallback(err) {
			metrics.ModelAttemptsTotal.WithLabelValues(model, "rate_limited").Inc()
			c.logger.Warn("model rate limited, trying next candidate", zap.String("model", model))
			continue
		}

		if IsAuthError(err) {
			metrics.ModelAttemptsTotal.WithLabelValues(model, "auth").Inc()
			return "", fmt.Errorf("%w: %v", repository.ErrModelAuth, err)
		}

		metrics.ModelAttemptsTotal.WithLabelValues(model, "error").Inc()
		c.logger.Error("model call failed", zap.String("model", model), zap.Error(err))
		return "", fmt.Errorf("%w: %s: %v", repository.ErrModelUnavailable, model, err)
	}

	return "", repository.ErrAllModelsExhausted
}

func (c *Client) completeWith(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(c.maxTokens)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ShouldFallback reports whether err is a rate-limit answer from the provider.
func ShouldFallback(err error) bool {
	if errors.Is(err, repository.ErrRateLimited) {
		return true
	}
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests || strings.EqualFold(apiErr.Code, "rate_limit_exceeded")
}

// IsAuthError reports whether the provider rejected the credential.
func IsAuthError(err error) bool {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
