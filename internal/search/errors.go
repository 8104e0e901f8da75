// Package search wraps the external repository-search service behind a
// Source interface with a TTL cache and an explicit retryable/fatal error
// split.
package search

import "fmt"

// Error represents a failed search for one query. Retryable distinguishes
// transient trouble (timeouts, connectivity, rate limits) from failures that
// repeating cannot fix; credential problems are reported as
// *types.ConfigurationError instead.
type Error struct {
	Query     string
	Message   string
	Retryable bool
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search error for %q: %s: %v", e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("search error for %q: %s", e.Query, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
