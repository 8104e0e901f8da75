package types

import (
	"errors"
	"fmt"
)

// ConfigurationError marks a failure that retrying cannot help: missing or
// invalid credentials, malformed setup. Collaborators return it so the
// coordinator can abort instead of masking the problem with the fallback
// catalog.
type ConfigurationError struct {
	Op      string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error in %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Op, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// IsConfiguration reports whether err wraps a ConfigurationError.
func IsConfiguration(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
