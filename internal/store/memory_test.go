package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscout/internal/types"
)

func samplePosting(url string) types.Posting {
	return types.Posting{
		Title:       "Backend Developer",
		Company:     "Acme Corp",
		Location:    types.Location{City: "Mumbai", State: "Maharashtra", Country: "India"},
		Description: "Build services",
		Skills:      []string{"node", "mongodb"},
		Salary:      &types.Salary{Min: 300000, Max: 500000, Currency: "INR"},
		Source: types.Source{
			Name:      "Indeed",
			URL:       url,
			ScrapedAt: time.Now(),
		},
	}
}

func TestUpsert_CreatesThenDeduplicates(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	first := samplePosting("https://example.com/job/1")
	outcome, err := s.Upsert(ctx, &first)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	// Re-sighting the same URL is a duplicate, not a second record.
	second := samplePosting("https://example.com/job/1")
	second.Title = "Totally Different Title"
	second.Source.ScrapedAt = time.Now().Add(time.Hour)
	outcome, err = s.Upsert(ctx, &second)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)

	result, err := s.Query(ctx, types.Filters{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	// scraped_at advanced, other fields unchanged.
	stored := result.Items[0]
	assert.Equal(t, "Backend Developer", stored.Title)
	assert.Equal(t, second.Source.ScrapedAt, stored.Source.ScrapedAt)
}

func TestUpsert_SetsLifecycleFields(t *testing.T) {
	s := NewMemoryStore(0)

	p := samplePosting("https://example.com/job/2")
	_, err := s.Upsert(context.Background(), &p)
	require.NoError(t, err)

	result, err := s.Query(context.Background(), types.Filters{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	stored := result.Items[0]
	assert.NotEmpty(t, stored.ID)
	assert.True(t, stored.IsActive)
	assert.False(t, stored.PostedDate.IsZero())
	assert.InDelta(t, DefaultRetention.Hours(), stored.ExpiresAt.Sub(stored.PostedDate).Hours(), 1)
}

func TestUpsert_RejectsInvalidPosting(t *testing.T) {
	s := NewMemoryStore(0)

	missing := types.Posting{Title: "Role"} // no company, no source URL
	_, err := s.Upsert(context.Background(), &missing)
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSaveMany_CountsOutcomes(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	existing := samplePosting("https://example.com/job/dup")
	_, err := s.Upsert(ctx, &existing)
	require.NoError(t, err)

	batch := []types.Posting{
		samplePosting("https://example.com/job/a"),
		samplePosting("https://example.com/job/dup"),
		samplePosting("https://example.com/job/b"),
	}

	report, err := s.SaveMany(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, SaveReport{Saved: 2, Duplicates: 1, Errors: 0}, report)
}

func TestSaveMany_BadPostingDoesNotAbortBatch(t *testing.T) {
	s := NewMemoryStore(0)

	batch := []types.Posting{
		samplePosting("https://example.com/job/x"),
		{Title: "No company"},
		samplePosting("https://example.com/job/y"),
	}

	report, err := s.SaveMany(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, SaveReport{Saved: 2, Duplicates: 0, Errors: 1}, report)
}

func TestQuery_Filters(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	remote := samplePosting("https://example.com/job/remote")
	remote.Title = "React Developer"
	remote.Location = types.Location{City: "Delhi", Country: "India", Remote: true}
	remote.Skills = []string{"react", "javascript"}

	pune := samplePosting("https://example.com/job/pune")
	pune.Title = "Data Engineer"
	pune.Location = types.Location{City: "Pune", State: "Maharashtra", Country: "India"}
	pune.Skills = []string{"python", "sql"}
	pune.Salary = &types.Salary{Min: 800000, Max: 1200000, Currency: "INR"}

	for _, p := range []types.Posting{remote, pune} {
		posting := p
		_, err := s.Upsert(ctx, &posting)
		require.NoError(t, err)
	}

	// Keyword over title
	result, err := s.Query(ctx, types.Filters{Keywords: "react"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "React Developer", result.Items[0].Title)

	// Location substring, case-insensitive
	result, err = s.Query(ctx, types.Filters{Location: "maha"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Data Engineer", result.Items[0].Title)

	// Skill intersection
	result, err = s.Query(ctx, types.Filters{Skills: []string{"SQL", "rust"}})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Data Engineer", result.Items[0].Title)

	// Remote flag
	yes := true
	result, err = s.Query(ctx, types.Filters{Remote: &yes})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].Location.Remote)

	// Salary bounds
	result, err = s.Query(ctx, types.Filters{MinSalary: 600000})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Data Engineer", result.Items[0].Title)
}

func TestQuery_Pagination(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		p := samplePosting(fmt.Sprintf("https://example.com/job/%d", i))
		_, err := s.Upsert(ctx, &p)
		require.NoError(t, err)
	}

	result, err := s.Query(ctx, types.Filters{Page: 2, Limit: 2})
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Equal(t, types.Page{Page: 2, Limit: 2, Total: 5, Pages: 3}, result.Page)
}

func TestFindByID(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	p := samplePosting("https://example.com/job/find")
	_, err := s.Upsert(ctx, &p)
	require.NoError(t, err)

	result, err := s.Query(ctx, types.Filters{})
	require.NoError(t, err)
	id := result.Items[0].ID

	found, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Backend Developer", found.Title)

	_, err = s.FindByID(ctx, "no-such-id")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeactivate_HidesFromQueries(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	p := samplePosting("https://example.com/job/deactivate")
	_, err := s.Upsert(ctx, &p)
	require.NoError(t, err)

	result, err := s.Query(ctx, types.Filters{})
	require.NoError(t, err)
	id := result.Items[0].ID

	require.NoError(t, s.Deactivate(ctx, id))

	result, err = s.Query(ctx, types.Filters{})
	require.NoError(t, err)
	assert.Empty(t, result.Items)

	var notFound *NotFoundError
	assert.ErrorAs(t, s.Deactivate(ctx, "missing"), &notFound)
}

func TestPurgeExpired(t *testing.T) {
	s := NewMemoryStore(50 * time.Millisecond)
	ctx := context.Background()

	p := samplePosting("https://example.com/job/expiring")
	_, err := s.Upsert(ctx, &p)
	require.NoError(t, err)

	// Nothing expired yet: the sweep is a no-op.
	count, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	time.Sleep(60 * time.Millisecond)

	count, err = s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Idempotent: a second sweep finds nothing.
	count, err = s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
