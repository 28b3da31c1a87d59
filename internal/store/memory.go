package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobscout/internal/types"
)

// MemoryStore is an in-process Store used by tests and database-less runs.
// All operations take the store lock, giving the same per-URL atomicity the
// Postgres unique constraint provides.
type MemoryStore struct {
	mu        sync.Mutex
	byURL     map[string]*types.Posting
	byID      map[string]*types.Posting
	retention time.Duration
}

// NewMemoryStore constructs an empty in-memory store. retention <= 0 uses
// the default 30-day window.
func NewMemoryStore(retention time.Duration) *MemoryStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &MemoryStore{
		byURL:     make(map[string]*types.Posting),
		byID:      make(map[string]*types.Posting),
		retention: retention,
	}
}

// Upsert creates a posting or refreshes the scrape timestamp of an
// existing one. Only scraped_at changes on a re-sighting; the stored
// title, description and the rest stay as first seen.
func (s *MemoryStore) Upsert(_ context.Context, posting *types.Posting) (UpsertOutcome, error) {
	if err := validatePosting(posting); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byURL[posting.Source.URL]; ok {
		existing.Source.ScrapedAt = posting.Source.ScrapedAt
		if existing.Source.ScrapedAt.IsZero() {
			existing.Source.ScrapedAt = time.Now()
		}
		return OutcomeDuplicate, nil
	}

	now := time.Now()
	stored := *posting
	stored.ID = uuid.NewString()
	stored.IsActive = true
	stored.PostedDate = now
	stored.ExpiresAt = now.Add(s.retention)
	if stored.Source.ScrapedAt.IsZero() {
		stored.Source.ScrapedAt = now
	}

	s.byURL[stored.Source.URL] = &stored
	s.byID[stored.ID] = &stored

	return OutcomeCreated, nil
}

// SaveMany upserts each posting independently. A validation failure on one
// posting is counted and the batch continues.
func (s *MemoryStore) SaveMany(ctx context.Context, postings []types.Posting) (SaveReport, error) {
	var report SaveReport
	for i := range postings {
		outcome, err := s.Upsert(ctx, &postings[i])
		switch {
		case err != nil:
			report.Errors++
		case outcome == OutcomeDuplicate:
			report.Duplicates++
		default:
			report.Saved++
		}
	}
	return report, nil
}

// Query filters live postings and paginates the result, newest first.
func (s *MemoryStore) Query(_ context.Context, filters types.Filters) (QueryResult, error) {
	filters = normalizeFilters(filters)

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]types.Posting, 0)
	for _, p := range s.byURL {
		if !p.IsActive || p.IsExpired() {
			continue
		}
		if matchesFilters(p, filters) {
			matched = append(matched, *p)
		}
	}

	sortPostings(matched, filters.SortBy)

	total := len(matched)
	start := (filters.Page - 1) * filters.Limit
	if start > total {
		start = total
	}
	end := start + filters.Limit
	if end > total {
		end = total
	}

	return QueryResult{
		Items: matched[start:end],
		Page:  types.NewPage(filters.Page, filters.Limit, total),
	}, nil
}

// FindByID retrieves one posting or a NotFoundError.
func (s *MemoryStore) FindByID(_ context.Context, id string) (*types.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	copied := *p
	return &copied, nil
}

// Deactivate flips a posting inactive without deleting it.
func (s *MemoryStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	p.IsActive = false
	return nil
}

// PurgeExpired drops postings past their retention window. Idempotent:
// a sweep with nothing expired is a no-op returning zero.
func (s *MemoryStore) PurgeExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for url, p := range s.byURL {
		if p.IsExpired() {
			delete(s.byURL, url)
			delete(s.byID, p.ID)
			purged++
		}
	}
	return purged, nil
}

func matchesFilters(p *types.Posting, f types.Filters) bool {
	if f.Keywords != "" && !matchesKeywords(p, f.Keywords) {
		return false
	}
	if f.Location != "" && !matchesLocation(p, f.Location) {
		return false
	}
	if len(f.Skills) > 0 && !intersects(p.Skills, f.Skills) {
		return false
	}
	if f.Remote != nil && p.Location.Remote != *f.Remote {
		return false
	}
	if f.MinSalary > 0 && (p.Salary == nil || p.Salary.Min < f.MinSalary) {
		return false
	}
	if f.MaxSalary > 0 && (p.Salary == nil || p.Salary.Max > f.MaxSalary) {
		return false
	}
	return true
}

func matchesKeywords(p *types.Posting, keywords string) bool {
	needle := strings.ToLower(keywords)
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, skill := range p.Skills {
		if strings.ToLower(skill) == needle {
			return true
		}
	}
	return false
}

func matchesLocation(p *types.Posting, location string) bool {
	needle := strings.ToLower(location)
	return strings.Contains(strings.ToLower(p.Location.City), needle) ||
		strings.Contains(strings.ToLower(p.Location.State), needle)
}

func intersects(postingSkills, wanted []string) bool {
	set := make(map[string]bool, len(postingSkills))
	for _, s := range postingSkills {
		set[strings.ToLower(s)] = true
	}
	for _, w := range wanted {
		if set[strings.ToLower(w)] {
			return true
		}
	}
	return false
}

func sortPostings(postings []types.Posting, sortBy string) {
	switch sortBy {
	case "title":
		sort.Slice(postings, func(i, j int) bool { return postings[i].Title < postings[j].Title })
	case "company":
		sort.Slice(postings, func(i, j int) bool { return postings[i].Company < postings[j].Company })
	case "scraped_at":
		sort.Slice(postings, func(i, j int) bool {
			return postings[i].Source.ScrapedAt.After(postings[j].Source.ScrapedAt)
		})
	default:
		// Newest first
		sort.Slice(postings, func(i, j int) bool {
			return postings[i].PostedDate.After(postings[j].PostedDate)
		})
	}
}
