// Package store provides the deduplicating persistence boundary for
// postings. The dedup identity is the posting's source URL: at most one
// live record exists per URL, and re-sightings only refresh the scrape
// timestamp.
package store

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobscout/internal/types"
)

// DefaultRetention is the posting retention window: postings expire 30
// days after first sighting unless deactivated earlier.
const DefaultRetention = 30 * 24 * time.Hour

// UpsertOutcome reports what an upsert did.
type UpsertOutcome string

// Upsert outcomes.
const (
	OutcomeCreated   UpsertOutcome = "created"
	OutcomeDuplicate UpsertOutcome = "duplicate"
)

// SaveReport summarizes a batch ingestion. Failures are counted, never
// aborting: one bad posting does not sink the batch.
type SaveReport struct {
	Saved      int `json:"saved"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// QueryResult is a page of postings plus pagination metadata.
type QueryResult struct {
	Items []types.Posting `json:"items"`
	Page  types.Page      `json:"pagination"`
}

// Store is the persistence contract consumed by the scheduler and query
// paths. Upserts must be atomic per source URL: concurrent ingestion of
// the same URL must not create two live records.
type Store interface {
	Upsert(ctx context.Context, posting *types.Posting) (UpsertOutcome, error)
	SaveMany(ctx context.Context, postings []types.Posting) (SaveReport, error)
	Query(ctx context.Context, filters types.Filters) (QueryResult, error)
	FindByID(ctx context.Context, id string) (*types.Posting, error)
	Deactivate(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context) (int, error)
}

var validate = validator.New()

// validatePosting checks the fields every stored posting must carry.
func validatePosting(p *types.Posting) error {
	if err := validate.Struct(p); err != nil {
		return &ValidationError{Message: "posting missing required fields", Cause: err}
	}
	return nil
}

// normalizeFilters applies pagination defaults.
func normalizeFilters(f types.Filters) types.Filters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	return f
}
