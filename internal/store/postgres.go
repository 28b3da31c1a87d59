package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/jobscout/internal/types"
)

// PostgresStore is the production Store backed by a pgx pool. The unique
// constraint on source_url makes the upsert atomic per dedup identity.
type PostgresStore struct {
	pool      *pgxpool.Pool
	retention time.Duration
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string, retention time.Duration) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if retention <= 0 {
		retention = DefaultRetention
	}

	return &PostgresStore{pool: pool, retention: retention}, nil
}

// Pool exposes the underlying pool so other components can share the
// connection set instead of opening their own.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the postings table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS postings (
			id          UUID PRIMARY KEY,
			title       TEXT NOT NULL,
			company     TEXT NOT NULL,
			city        TEXT NOT NULL DEFAULT '',
			state       TEXT NOT NULL DEFAULT '',
			country     TEXT NOT NULL DEFAULT '',
			remote      BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT NOT NULL DEFAULT '',
			skills      TEXT[] NOT NULL DEFAULT '{}',
			salary_min  BIGINT,
			salary_max  BIGINT,
			currency    TEXT,
			source_name TEXT NOT NULL,
			source_url  TEXT NOT NULL UNIQUE,
			scraped_at  TIMESTAMPTZ NOT NULL,
			is_active   BOOLEAN NOT NULL DEFAULT TRUE,
			posted_date TIMESTAMPTZ NOT NULL,
			expires_at  TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure postings schema: %w", err)
	}
	return nil
}

// Upsert inserts a posting or, when the source URL is already live,
// refreshes only its scraped_at. The (xmax = 0) test distinguishes a fresh
// insert from a conflict-update inside one atomic statement.
func (s *PostgresStore) Upsert(ctx context.Context, posting *types.Posting) (UpsertOutcome, error) {
	if err := validatePosting(posting); err != nil {
		return "", err
	}

	now := time.Now()
	scrapedAt := posting.Source.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = now
	}

	var salaryMin, salaryMax *int
	var currency *string
	if posting.Salary != nil {
		salaryMin = &posting.Salary.Min
		salaryMax = &posting.Salary.Max
		currency = &posting.Salary.Currency
	}

	var created bool
	err := s.pool.QueryRow(ctx,
		`INSERT INTO postings (id, title, company, city, state, country, remote,
		                       description, skills, salary_min, salary_max, currency,
		                       source_name, source_url, scraped_at, is_active,
		                       posted_date, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, TRUE, $16, $17)
		 ON CONFLICT (source_url) DO UPDATE SET scraped_at = EXCLUDED.scraped_at
		 RETURNING (xmax = 0)`,
		uuid.NewString(), posting.Title, posting.Company,
		posting.Location.City, posting.Location.State, posting.Location.Country,
		posting.Location.Remote, posting.Description, posting.Skills,
		salaryMin, salaryMax, currency,
		posting.Source.Name, posting.Source.URL, scrapedAt,
		now, now.Add(s.retention),
	).Scan(&created)
	if err != nil {
		return "", fmt.Errorf("failed to upsert posting: %w", err)
	}

	if created {
		return OutcomeCreated, nil
	}
	return OutcomeDuplicate, nil
}

// SaveMany upserts each posting independently, counting outcomes.
func (s *PostgresStore) SaveMany(ctx context.Context, postings []types.Posting) (SaveReport, error) {
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

// Query returns live postings matching the filters, paginated.
func (s *PostgresStore) Query(ctx context.Context, filters types.Filters) (QueryResult, error) {
	filters = normalizeFilters(filters)

	where, args := buildWhere(filters)

	var total int
	countSQL := "SELECT COUNT(*) FROM postings " + where
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return QueryResult{}, fmt.Errorf("failed to count postings: %w", err)
	}

	orderBy := orderClause(filters.SortBy)
	offset := (filters.Page - 1) * filters.Limit
	pageSQL := fmt.Sprintf(
		"SELECT %s FROM postings %s %s LIMIT $%d OFFSET $%d",
		postingColumns, where, orderBy, len(args)+1, len(args)+2)
	args = append(args, filters.Limit, offset)

	rows, err := s.pool.Query(ctx, pageSQL, args...)
	if err != nil {
		return QueryResult{}, fmt.Errorf("failed to query postings: %w", err)
	}
	defer rows.Close()

	items := make([]types.Posting, 0, filters.Limit)
	for rows.Next() {
		posting, err := scanPosting(rows)
		if err != nil {
			return QueryResult{}, err
		}
		items = append(items, *posting)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{}, fmt.Errorf("failed to read postings: %w", err)
	}

	return QueryResult{
		Items: items,
		Page:  types.NewPage(filters.Page, filters.Limit, total),
	}, nil
}

// FindByID retrieves one posting by its UUID.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*types.Posting, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+postingColumns+" FROM postings WHERE id = $1", id)

	posting, err := scanPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}
	return posting, nil
}

// Deactivate flips a posting inactive.
func (s *PostgresStore) Deactivate(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE postings SET is_active = FALSE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate posting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// PurgeExpired removes postings past their retention window.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM postings WHERE expires_at < NOW()")
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired postings: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

const postingColumns = `id, title, company, city, state, country, remote,
	description, skills, salary_min, salary_max, currency,
	source_name, source_url, scraped_at, is_active, posted_date, expires_at`

// buildWhere translates filters into a WHERE clause with numbered args.
func buildWhere(f types.Filters) (string, []any) {
	clauses := []string{"is_active = TRUE", "expires_at > NOW()"}
	args := make([]any, 0, 6)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Keywords != "" {
		like := arg("%" + f.Keywords + "%")
		exact := arg(strings.ToLower(f.Keywords))
		clauses = append(clauses, fmt.Sprintf(
			"(title ILIKE %s OR description ILIKE %s OR %s = ANY(skills))", like, like, exact))
	}
	if f.Location != "" {
		like := arg("%" + f.Location + "%")
		clauses = append(clauses, fmt.Sprintf("(city ILIKE %s OR state ILIKE %s)", like, like))
	}
	if len(f.Skills) > 0 {
		lowered := make([]string, len(f.Skills))
		for i, skill := range f.Skills {
			lowered[i] = strings.ToLower(skill)
		}
		clauses = append(clauses, fmt.Sprintf("skills && %s", arg(lowered)))
	}
	if f.Remote != nil {
		clauses = append(clauses, fmt.Sprintf("remote = %s", arg(*f.Remote)))
	}
	if f.MinSalary > 0 {
		clauses = append(clauses, fmt.Sprintf("salary_min >= %s", arg(f.MinSalary)))
	}
	if f.MaxSalary > 0 {
		clauses = append(clauses, fmt.Sprintf("salary_max <= %s", arg(f.MaxSalary)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// orderClause maps a sort key onto an allowlisted ORDER BY.
func orderClause(sortBy string) string {
	switch sortBy {
	case "title":
		return "ORDER BY title ASC"
	case "company":
		return "ORDER BY company ASC"
	case "scraped_at":
		return "ORDER BY scraped_at DESC"
	default:
		return "ORDER BY posted_date DESC"
	}
}

func scanPosting(row pgx.Row) (*types.Posting, error) {
	var p types.Posting
	var salaryMin, salaryMax *int
	var currency *string

	err := row.Scan(&p.ID, &p.Title, &p.Company,
		&p.Location.City, &p.Location.State, &p.Location.Country, &p.Location.Remote,
		&p.Description, &p.Skills, &salaryMin, &salaryMax, &currency,
		&p.Source.Name, &p.Source.URL, &p.Source.ScrapedAt,
		&p.IsActive, &p.PostedDate, &p.ExpiresAt)
	if err != nil {
		return nil, err
	}

	if salaryMin != nil || salaryMax != nil {
		p.Salary = &types.Salary{}
		if salaryMin != nil {
			p.Salary.Min = *salaryMin
		}
		if salaryMax != nil {
			p.Salary.Max = *salaryMax
		}
		if currency != nil {
			p.Salary.Currency = *currency
		}
	}

	return &p, nil
}
