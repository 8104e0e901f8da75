package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonathan/skillscout/internal/types"
)

// Source returns candidate projects for one query at a star threshold.
// Implementations report transient trouble with *Error (Retryable true) and
// credential problems with *types.ConfigurationError.
type Source interface {
	Search(ctx context.Context, query string, starThreshold int) ([]types.Candidate, error)
}

// Request defaults for the GitHub search API.
const (
	DefaultTimeout   = 8 * time.Second
	DefaultPerPage   = 5
	defaultAPIBase   = "https://api.github.com"
	defaultUserAgent = "skillscout/1.0"
)

// Options configures the GitHub source.
type Options struct {
	// Token is the optional GitHub API token. Unauthenticated search works
	// but rate-limits aggressively.
	Token string
	// BaseURL overrides the API endpoint (tests).
	BaseURL string
	// Timeout bounds each search request.
	Timeout time.Duration
	// ProxyURL routes requests through an explicit proxy. When empty the
	// standard HTTPS_PROXY/HTTP_PROXY environment variables apply.
	ProxyURL string
	// Topic narrows every query to one GitHub topic.
	Topic string
	// PerPage caps results per query.
	PerPage int
}

// DefaultOptions returns the production defaults: llm-topic search, five
// results per query, eight-second timeout.
func DefaultOptions() *Options {
	return &Options{
		Timeout: DefaultTimeout,
		Topic:   "llm",
		PerPage: DefaultPerPage,
	}
}

// GitHubSource searches the GitHub repository search API.
type GitHubSource struct {
	opts   *Options
	client *http.Client
}

// NewGitHubSource creates a source with the given options.
func NewGitHubSource(opts *Options) (*GitHubSource, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.PerPage == 0 {
		opts.PerPage = DefaultPerPage
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.ProxyURL != "" {
		proxyURL, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, &types.ConfigurationError{Op: "search", Message: "invalid proxy URL", Cause: err}
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &GitHubSource{
		opts: opts,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
	}, nil
}

// searchResponse mirrors the fields of the GitHub search API this source
// consumes.
type searchResponse struct {
	Items []struct {
		FullName        string `json:"full_name"`
		HTMLURL         string `json:"html_url"`
		StargazersCount int    `json:"stargazers_count"`
		Description     string `json:"description"`
	} `json:"items"`
}

// Search runs one repository search. Network failures, timeouts, and rate
// limits come back as retryable *Error; rejected credentials come back as
// *types.ConfigurationError.
func (s *GitHubSource) Search(ctx context.Context, query string, starThreshold int) ([]types.Candidate, error) {
	base := s.opts.BaseURL
	if base == "" {
		base = defaultAPIBase
	}

	q := query
	if s.opts.Topic != "" {
		q += " topic:" + s.opts.Topic
	}
	q += fmt.Sprintf(" stars:>%d", starThreshold)

	params := url.Values{}
	params.Set("q", q)
	params.Set("sort", "stars")
	params.Set("per_page", strconv.Itoa(s.opts.PerPage))

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/search/repositories?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Query: query, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", defaultUserAgent)
	if s.opts.Token != "" {
		req.Header.Set("Authorization", "token "+s.opts.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		// Timeouts and connectivity failures are worth retrying with a
		// different query; the plan continues without this contribution.
		return nil, &Error{Query: query, Message: "request failed", Retryable: true, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(resp, query); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Query: query, Message: "failed to read response", Retryable: true, Cause: err}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Query: query, Message: "failed to parse response", Retryable: true, Cause: err}
	}

	candidates := make([]types.Candidate, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.FullName == "" {
			continue
		}
		u := item.HTMLURL
		if u == "" {
			u = "https://github.com/" + item.FullName
		}
		candidates = append(candidates, types.Candidate{
			Key:         item.FullName,
			URL:         u,
			StarCount:   item.StargazersCount,
			Description: item.Description,
			OriginQuery: query,
		})
	}
	return candidates, nil
}

// classifyStatus maps non-200 responses onto the error taxonomy. A rejected
// token is fatal; an exhausted rate limit is not.
func classifyStatus(resp *http.Response, query string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return &types.ConfigurationError{
			Op:      "search",
			Message: "GitHub API rejected the token (HTTP 401)",
		}
	case resp.StatusCode == http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return &Error{Query: query, Message: "GitHub API rate limit exhausted", Retryable: true}
		}
		return &types.ConfigurationError{
			Op:      "search",
			Message: "GitHub API refused the request (HTTP 403)",
		}
	default:
		return &Error{
			Query:     query,
			Message:   fmt.Sprintf("GitHub API returned HTTP %d", resp.StatusCode),
			Retryable: true,
		}
	}
}
