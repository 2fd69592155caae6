package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrFetchTimeout = errors.New("page fetch timed out")
	ErrFetchFailed  = errors.New("page fetch failed")
)

// FetchStatusError carries the status of a non-2xx response from the target site.
type FetchStatusError struct {
	StatusCode int
}

func (e *FetchStatusError) Error() string {
	return fmt.Sprintf("page fetch failed: received status code %d", e.StatusCode)
}

func (e *FetchStatusError) Is(target error) bool {
	return target == ErrFetchFailed
}

// PageFetcher defines the contract for retrieving the HTML of a recipe page.
type PageFetcher interface {
	// Fetch performs a single bounded GET and returns the response body.
	Fetch(ctx context.Context, u *url.URL) (string, error)
}
