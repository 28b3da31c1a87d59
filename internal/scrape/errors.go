// Package scrape turns raw job board documents into posting records using
// ordered, data-driven selector strategies.
package scrape

import "fmt"

// ExtractionError represents a whole-document parse failure. Individual
// field misses inside a card are never errors; they fall back to defaults.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
