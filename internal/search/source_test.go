package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonathan/skillscout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *GitHubSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	source, err := NewGitHubSource(&Options{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		Topic:   "llm",
		PerPage: 5,
	})
	require.NoError(t, err)
	return source
}

func TestGitHubSource_ParsesCandidates(t *testing.T) {
	var gotQuery string
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"full_name": "langchain-ai/langchain", "html_url": "https://github.com/langchain-ai/langchain",
				 "stargazers_count": 110000, "description": "Build context-aware reasoning applications"},
				{"full_name": "tiny/repo", "stargazers_count": 42, "description": ""}
			]
		}`))
	})

	candidates, err := source.Search(context.Background(), "rag tutorial", 500)
	require.NoError(t, err)
	assert.Equal(t, "rag tutorial topic:llm stars:>500", gotQuery)

	require.Len(t, candidates, 2)
	assert.Equal(t, "langchain-ai/langchain", candidates[0].Key)
	assert.Equal(t, 110000, candidates[0].StarCount)
	assert.Equal(t, "rag tutorial", candidates[0].OriginQuery)
	// Missing html_url falls back to the canonical repo URL.
	assert.Equal(t, "https://github.com/tiny/repo", candidates[1].URL)
}

func TestGitHubSource_SendsToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(server.Close)

	source, err := NewGitHubSource(&Options{BaseURL: server.URL, Token: "ghp_test"})
	require.NoError(t, err)

	_, err = source.Search(context.Background(), "q", 500)
	require.NoError(t, err)
	assert.Equal(t, "token ghp_test", gotAuth)
}

func TestGitHubSource_UnauthorizedIsConfiguration(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := source.Search(context.Background(), "q", 500)
	require.Error(t, err)
	assert.True(t, types.IsConfiguration(err))
}

func TestGitHubSource_ForbiddenWithoutRateLimitIsConfiguration(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := source.Search(context.Background(), "q", 500)
	require.Error(t, err)
	assert.True(t, types.IsConfiguration(err))
}

func TestGitHubSource_RateLimitIsRetryable(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := source.Search(context.Background(), "q", 500)
	require.Error(t, err)

	var searchErr *Error
	require.True(t, errors.As(err, &searchErr))
	assert.True(t, searchErr.Retryable)
	assert.False(t, types.IsConfiguration(err))
}

func TestGitHubSource_ServerErrorIsRetryable(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := source.Search(context.Background(), "q", 500)
	require.Error(t, err)

	var searchErr *Error
	require.True(t, errors.As(err, &searchErr))
	assert.True(t, searchErr.Retryable)
}

func TestGitHubSource_TimeoutIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(server.Close)

	source, err := NewGitHubSource(&Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = source.Search(context.Background(), "q", 500)
	require.Error(t, err)

	var searchErr *Error
	require.True(t, errors.As(err, &searchErr))
	assert.True(t, searchErr.Retryable)
}

func TestNewGitHubSource_InvalidProxy(t *testing.T) {
	_, err := NewGitHubSource(&Options{ProxyURL: "://bad"})
	require.Error(t, err)
	assert.True(t, types.IsConfiguration(err))
}
