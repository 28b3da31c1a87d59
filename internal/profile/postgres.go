package profile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/jobscout/internal/types"
)

// PostgresProvider reads profiles from the users and user_skills tables.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider wraps an existing connection pool.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

// EnsureSchema creates the profile tables if they do not exist.
func (p *PostgresProvider) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id          UUID PRIMARY KEY,
			city        TEXT NOT NULL DEFAULT '',
			state       TEXT NOT NULL DEFAULT '',
			country     TEXT NOT NULL DEFAULT '',
			remote      BOOLEAN NOT NULL DEFAULT FALSE,
			experience  INT,
			salary_min  BIGINT,
			salary_max  BIGINT,
			job_types   TEXT[] NOT NULL DEFAULT '{}'
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure users schema: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_skills (
			user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			skill       TEXT NOT NULL,
			category    TEXT NOT NULL DEFAULT '',
			confidence  DOUBLE PRECISION NOT NULL DEFAULT 0,
			proficiency INT NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, skill)
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure user_skills schema: %w", err)
	}
	return nil
}

// Profile loads a user row plus their skill tags.
func (p *PostgresProvider) Profile(ctx context.Context, userID string) (*types.UserProfile, error) {
	profile := types.UserProfile{ID: userID}

	var city, state, country string
	var remote bool
	var experience *int
	var salaryMin, salaryMax *int
	err := p.pool.QueryRow(ctx,
		`SELECT city, state, country, remote, experience, salary_min, salary_max, job_types
		 FROM users WHERE id = $1`, userID).
		Scan(&city, &state, &country, &remote, &experience,
			&salaryMin, &salaryMax, &profile.Preferences.JobTypes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &NotFoundError{UserID: userID}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if city != "" || state != "" || country != "" || remote {
		profile.Profile.Location = &types.Location{
			City: city, State: state, Country: country, Remote: remote,
		}
	}
	profile.Profile.Experience = experience
	if salaryMin != nil || salaryMax != nil {
		rng := &types.SalaryRange{}
		if salaryMin != nil {
			rng.Min = *salaryMin
		}
		if salaryMax != nil {
			rng.Max = *salaryMax
		}
		profile.Preferences.SalaryRange = rng
	}

	rows, err := p.pool.Query(ctx,
		`SELECT skill, category, confidence, proficiency
		 FROM user_skills WHERE user_id = $1 ORDER BY skill`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tag types.SkillTag
		var category string
		if err := rows.Scan(&tag.Name, &category, &tag.Confidence, &tag.Proficiency); err != nil {
			return nil, fmt.Errorf("failed to read user skill: %w", err)
		}
		tag.Category = types.SkillCategory(category)
		profile.Skills = append(profile.Skills, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user skills: %w", err)
	}

	return &profile, nil
}

// TopSkills counts distinct users per skill across the whole user base.
func (p *PostgresProvider) TopSkills(ctx context.Context, limit int) ([]SkillDemand, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT skill, COUNT(DISTINCT user_id) AS users
		 FROM user_skills
		 GROUP BY skill
		 ORDER BY users DESC, skill ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate skill demand: %w", err)
	}
	defer rows.Close()

	demand := make([]SkillDemand, 0, limit)
	for rows.Next() {
		var d SkillDemand
		if err := rows.Scan(&d.Skill, &d.Users); err != nil {
			return nil, fmt.Errorf("failed to read skill demand: %w", err)
		}
		demand = append(demand, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skill demand: %w", err)
	}
	return demand, nil
}
