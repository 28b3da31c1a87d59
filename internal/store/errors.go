package store

import "fmt"

// ValidationError rejects a posting that is missing required fields. During
// batch saves it is counted per-item rather than aborting the batch.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports a lookup that matched no posting.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("posting not found: %s", e.ID)
}
