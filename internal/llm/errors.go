package llm

import "fmt"

// UpstreamError represents a failure of the completion service.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("completion service error: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
