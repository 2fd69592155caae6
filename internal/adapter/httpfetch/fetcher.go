package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/user/recipe-service/internal/repository"
)

const (
	UserAgent    = "Mozilla/5.0 (compatible; RecipeImporter/1.0; +https://github.com/user/recipe-service)"
	AcceptHeader = "text/html,application/xhtml+xml"

	DefaultTimeout  = 15 * time.Second
	DefaultMaxBytes = 5 << 20
)

// Fetcher retrieves recipe pages with a plain HTTP GET.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
	logger   *zap.Logger
}

// NewFetcher creates a new page fetcher. A nil or empty rotator means direct connections.
func NewFetcher(timeout time.Duration, maxBytes int64, proxies *ProxyRotator, logger *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxies != nil && proxies.Len() > 0 {
		transport.Proxy = proxies.Proxy
	}

	return &Fetcher{
		client:   &http.Client{Transport: transport},
		timeout:  timeout,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

var _ repository.PageFetcher = (*Fetcher)(nil)

// Fetch performs a single GET. Non-2xx responses become *repository.FetchStatusError.
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", repository.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", AcceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", f.classify(ctx, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		f.logger.Debug("page fetch returned non-2xx", zap.String("url", u.String()), zap.Int("status", resp.StatusCode))
		return "", &repository.FetchStatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", f.classify(ctx, u, err)
	}
	return string(body), nil
}

func (f *Fetcher) classify(ctx context.Context, u *url.URL, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || isNetTimeout(err) {
		f.logger.Debug("page fetch timed out", zap.String("url", u.String()), zap.Duration("timeout", f.timeout))
		return repository.ErrFetchTimeout
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", repository.ErrFetchFailed, err)
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
