// Package types provides type definitions for structured data used throughout the jobscout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Posting represents a single job posting ingested from an external source.
type Posting struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Company     string    `json:"company" validate:"required"`
	Location    Location  `json:"location"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"` // canonical lowercase skill names
	Salary      *Salary   `json:"salary,omitempty"`
	Source      Source    `json:"source"`
	IsActive    bool      `json:"is_active"`
	PostedDate  time.Time `json:"posted_date"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Location describes where a posting is based. Remote postings may still
// carry a city (e.g. "Remote in Mumbai").
type Location struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Remote  bool   `json:"remote"`
}

// Salary is a parsed compensation range. Nil on a Posting means the source
// published no usable salary text.
type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Source identifies where and when a posting was scraped. URL is the dedup
// identity: at most one live Posting exists per source URL.
type Source struct {
	Name      string    `json:"name"`
	URL       string    `json:"url" validate:"required"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// IsExpired reports whether the posting's retention window has passed.
func (p *Posting) IsExpired() bool {
	return !p.ExpiresAt.IsZero() && time.Now().After(p.ExpiresAt)
}
