package fetch

import "fmt"

// Error represents a network failure while fetching a URL, carrying the
// last underlying cause. Retryable reports whether a later fetch of the
// same URL could plausibly succeed: true after exhausted attempts on a
// transient failure, false for an invalid URL or a cancelled context.
type Error struct {
	URL       string
	Message   string
	Retryable bool
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
