// Package planning turns skill gaps and user context into an ordered search
// plan, and replans new angles after a rejected attempt.
package planning

import "fmt"

// ParseError marks planner output that could not be parsed or failed schema
// validation. It is soft: the coordinator treats it as an empty plan and
// degrades to the legacy query path.
type ParseError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s parse error: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s parse error: %s", e.Stage, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
