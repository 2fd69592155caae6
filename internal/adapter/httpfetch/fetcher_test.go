package httpfetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/recipe-service/internal/repository"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestFetch_Success(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>Soup</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(time.Second, 0, nil, zap.NewNop())
	body, err := f.Fetch(t.Context(), mustParse(t, server.URL))

	require.NoError(t, err)
	assert.Equal(t, "<html><body>Soup</body></html>", body)
	assert.Equal(t, UserAgent, gotUA)
	assert.Equal(t, AcceptHeader, gotAccept)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewFetcher(time.Second, 0, nil, zap.NewNop())
	_, err := f.Fetch(t.Context(), mustParse(t, server.URL))

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrFetchFailed)
	assert.NotErrorIs(t, err, repository.ErrFetchTimeout)

	var statusErr *repository.FetchStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	f := NewFetcher(50*time.Millisecond, 0, nil, zap.NewNop())
	_, err := f.Fetch(t.Context(), mustParse(t, server.URL))

	assert.ErrorIs(t, err, repository.ErrFetchTimeout)
	assert.NotErrorIs(t, err, repository.ErrFetchFailed)
}

func TestFetch_BodyIsCapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer server.Close()

	f := NewFetcher(time.Second, 1024, nil, zap.NewNop())
	body, err := f.Fetch(t.Context(), mustParse(t, server.URL))

	require.NoError(t, err)
	assert.Len(t, body, 1024)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	f := NewFetcher(time.Second, 0, nil, zap.NewNop())
	_, err := f.Fetch(t.Context(), mustParse(t, target))

	assert.ErrorIs(t, err, repository.ErrFetchFailed)
	var statusErr *repository.FetchStatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestProxyRotator_RoundRobin(t *testing.T) {
	r := NewProxyRotator([]string{"http://proxy-a:8080", "::bad::", "http://proxy-b:8080"})
	require.Equal(t, 2, r.Len())

	assert.Equal(t, "proxy-a:8080", r.Next().Host)
	assert.Equal(t, "proxy-b:8080", r.Next().Host)
	assert.Equal(t, "proxy-a:8080", r.Next().Host)
}

func TestProxyRotator_Empty(t *testing.T) {
	r := NewProxyRotator(nil)
	p, err := r.Proxy(nil)
	assert.NoError(t, err)
	assert.Nil(t, p)
}
